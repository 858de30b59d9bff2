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
	"math"
	"time"
)

// freshnessResult is the outcome of computing a response's server-side
// freshness lifetime, along with whether it came from an explicit
// max-age/s-maxage directive (which the immutable floor must never
// raise above).
type freshnessResult struct {
	maxAge   time.Duration
	explicit bool
}

// computeMaxAge resolves the freshness lifetime (RFC 7234 §4.2.1), in
// precedence order:
//  1. response no-cache/no-store -> 0
//  2. request no-cache -> 0
//  3. shared && s-maxage -> that value
//  4. max-age -> that value
//  5. Expires -> max(0, Expires - server_date)
//  6. Last-Modified (status understood) -> heuristic floor(0, (date-lastmod)*fraction)
//  7. otherwise 0
//
// then clamps the result from below by ImmutableMinTTL when the response
// carries Cache-Control: immutable, unless the result already came from
// an explicit max-age/s-maxage (an explicit "immutable, max-age=0" stays
// at zero).
func computeMaxAge(
	reqCC, resCC directiveSet, resHeaders Header,
	status int, srvDate time.Time, shared bool, opts Options,
) freshnessResult {
	if resCC.has("no-cache") || resCC.has("no-store") {
		return freshnessResult{0, false}
	}
	if reqCC.has("no-cache") {
		return freshnessResult{0, false}
	}

	if shared {
		if s, ok := resCC.seconds("s-maxage"); ok {
			return clampImmutable(freshnessResult{time.Duration(s) * time.Second, true}, resCC, opts)
		}
	}
	if s, ok := resCC.seconds("max-age"); ok {
		return clampImmutable(freshnessResult{time.Duration(s) * time.Second, true}, resCC, opts)
	}

	if expiresRaw := resHeaders.Get("expires"); expiresRaw != "" {
		if expires, ok := parseHTTPDate(expiresRaw); ok {
			lifetime := expires.Sub(srvDate)
			if lifetime < 0 {
				lifetime = 0
			}
			return clampImmutable(freshnessResult{lifetime, false}, resCC, opts)
		}
		// Unparseable Expires: no usable expiration data from this header.
		return clampImmutable(freshnessResult{0, false}, resCC, opts)
	}

	if _, ok := understoodStatuses[status]; ok {
		if lastModRaw := resHeaders.Get("last-modified"); lastModRaw != "" {
			if lastMod, ok := parseHTTPDate(lastModRaw); ok {
				age := srvDate.Sub(lastMod).Seconds()
				if age < 0 {
					age = 0
				}
				heuristic := math.Floor(age * opts.heuristicFraction())
				return clampImmutable(freshnessResult{
					time.Duration(heuristic) * time.Second, false,
				}, resCC, opts)
			}
		}
	}

	return clampImmutable(freshnessResult{0, false}, resCC, opts)
}

func clampImmutable(r freshnessResult, resCC directiveSet, opts Options) freshnessResult {
	if r.explicit || !resCC.has("immutable") {
		return r
	}
	floor := time.Duration(opts.ImmutableMinTTL) * time.Second
	if r.maxAge < floor {
		r.maxAge = floor
	}
	return r
}
