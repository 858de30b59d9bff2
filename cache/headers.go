// MIT License
//
// Copyright (c) 2023 kache.io
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)


// ResponseHeaders projects the stored response's headers for the given
// instant: hop-by-hop headers stripped, an unparseable Expires dropped,
// Age recomputed from the current age, and every Warning entry with a
// 1xx code dropped. A Warning 113 is then appended when the freshness
// lifetime came from neither max-age/s-maxage nor Expires and the
// response is older than a day (RFC 7234 §5.5.4).
func (p *Policy) ResponseHeaders(now time.Time) Header {
	out := stripHopByHop(p.resHeaders)

	if e := out.Get("expires"); e != "" {
		if _, ok := parseHTTPDate(e); !ok {
			out.Del("expires")
		}
	}

	age := p.CurrentAge(now)
	out.Set("age", strconv.FormatInt(int64(age.Seconds()), 10))

	if w := out.Get("warning"); w != "" {
		if filtered := dropWarning1xx(w); filtered == "" {
			out.Del("warning")
		} else {
			out.Set("warning", filtered)
		}
	}

	if p.needsHeuristicWarning(age) {
		out.Set("warning", addWarning113(out.Get("warning")))
	}

	return out
}

// needsHeuristicWarning reports whether the response's freshness did not
// come from an explicit max-age/s-maxage, the response carries no Expires
// header, and its age already exceeds 24 hours, per RFC 7234 §5.5.4.
// Whether a Last-Modified header was present is not checked.
func (p *Policy) needsHeuristicWarning(age time.Duration) bool {
	if p.freshness.explicit {
		return false
	}
	if p.resHeaders.Get("expires") != "" {
		return false
	}
	return age > 24*time.Hour
}

// dropWarning1xx removes Warning entries with a 1xx code. Those describe
// cache behavior at serve time and must not survive being served back
// out of the cache a second time (RFC 7234 §5.5); 2xx entries persist.
func dropWarning1xx(value string) string {
	var kept []string
	for _, entry := range splitCommaList(value) {
		if isWarning1xx(entry) {
			continue
		}
		kept = append(kept, entry)
	}
	return strings.Join(kept, ", ")
}

func isWarning1xx(entry string) bool {
	if len(entry) < 3 || entry[0] != '1' {
		return false
	}
	return entry[1] >= '0' && entry[1] <= '9' && entry[2] >= '0' && entry[2] <= '9'
}

func addWarning113(existing string) string {
	const warning = `113 - "Heuristic Expiration"`
	if existing == "" {
		return warning
	}
	return fmt.Sprintf("%s, %s", existing, warning)
}

// IsCachedResponseValid handles the outcome of a revalidation request:
// given the newRes it received, confirms at least one validator still
// matches the stored response, merges newRes's headers over it, and
// refreshes the response time. This is the engine's only mutating
// operation; callers sharing a Policy across goroutines must serialize
// calls to it externally.
func (p *Policy) IsCachedResponseValid(newRes *Response, now time.Time) bool {
	if newRes.Status != 304 {
		return false
	}
	if !validatorsMatch(p.resHeaders, newRes.Headers) {
		return false
	}

	merged := p.resHeaders.Clone()
	for k, v := range newRes.Headers {
		if _, excluded := revalidationExcludedHeaders[k]; excluded {
			continue
		}
		merged.Set(k, v)
	}

	p.resHeaders = merged
	p.resCC = parseDirectives(merged.Get("cache-control"))
	p.responseTime = now
	p.requestTime = now
	p.srvDate = serverDate(merged, now, p.opts.TrustServerDate)
	p.mustRevalidate = p.resCC.has("must-revalidate")
	p.proxyRevalidate = p.resCC.has("proxy-revalidate")
	p.freshness = computeMaxAge(p.reqCC, p.resCC, merged, p.status, p.srvDate, p.shared, p.opts)

	if p.metrics != nil {
		p.metrics.RecordTimeToLive(p.TimeToLive(now).Seconds())
	}

	return true
}

// validatorsMatch is the 304 confirmation check: strong ETag equality
// when both sides carry one, otherwise Last-Modified equality when
// neither side carries an ETag at all.
func validatorsMatch(stored, incoming Header) bool {
	storedETag := stored.Get("etag")
	incomingETag := incoming.Get("etag")

	if storedETag != "" && incomingETag != "" {
		return strongETagsEqual(storedETag, incomingETag)
	}
	if storedETag == "" && incomingETag == "" {
		storedLM := stored.Get("last-modified")
		incomingLM := incoming.Get("last-modified")
		return storedLM != "" && storedLM == incomingLM
	}
	return false
}

// strongETagsEqual compares two entity tags for strong equality (RFC 7232
// §2.3.2): weak validators (W/"...") never compare equal under strong
// comparison, even to themselves.
func strongETagsEqual(a, b string) bool {
	if strings.HasPrefix(a, "W/") || strings.HasPrefix(b, "W/") {
		return false
	}
	return a == b
}
