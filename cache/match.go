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
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

const (
	varySeparator   = "<varied>\n"
	varyFieldSep    = "\r"
	varyHeaderSep   = "\n"
	varyWildcardTag = "*"
)

// varySelection is the parsed Vary header of a stored response: the
// lowercased field names it selects on, whether it was "Vary: *" (which
// disqualifies any future match), and a precomputed identifier/hash of
// the selected fields' values from the original request that produced
// the stored response.
type varySelection struct {
	fields     []string
	wildcard   bool
	identifier string
	hash       uint64
}

// newVarySelection parses a response's Vary header and captures the
// corresponding values from the request that produced it.
func newVarySelection(resHeaders, reqHeaders Header) varySelection {
	raw := resHeaders.Get("vary")
	if raw == "" {
		return varySelection{}
	}

	var fields []string
	for _, f := range splitCommaList(raw) {
		f = strings.ToLower(f)
		if f == varyWildcardTag {
			return varySelection{wildcard: true}
		}
		fields = append(fields, f)
	}

	ident, hash := varyIdentifier(fields, reqHeaders)
	return varySelection{fields: fields, identifier: ident, hash: hash}
}

// varyIdentifier renders a stable string (and its xxhash) of the values
// that headers hold for each of fields, in field order. Two requests
// produce equal identifiers iff they agree on every Vary-selected
// header, including simultaneous absence. The separator bytes cannot
// appear in header values, so distinct value sets never collide on the
// string form.
func varyIdentifier(fields []string, headers Header) (string, uint64) {
	var b strings.Builder
	b.WriteString(varySeparator)
	for _, f := range fields {
		b.WriteString(f)
		b.WriteString(varyFieldSep)
		b.WriteString(headers.Get(f))
		b.WriteString(varyHeaderSep)
	}
	s := b.String()
	return s, xxhash.Sum64String(s)
}

// matches reports whether newHeaders agrees with the stored request on
// every Vary-selected field.
func (v varySelection) matches(newHeaders Header) bool {
	if v.wildcard {
		return false
	}
	if len(v.fields) == 0 {
		return true
	}
	ident, hash := varyIdentifier(v.fields, newHeaders)
	if hash != v.hash {
		return false
	}
	// Hash equality is the expected fast path; the string compare below
	// is the correctness guarantee against the (astronomically unlikely)
	// 64-bit collision.
	return ident == v.identifier
}

// methodMatches requires the stored and new request methods to agree,
// except that a new HEAD may reuse a response stored under GET.
func methodMatches(storedMethod, newMethod string) bool {
	if storedMethod == newMethod {
		return true
	}
	return storedMethod == "GET" && newMethod == "HEAD"
}

// hostsMatch requires identical Host headers only when both requests
// carry one.
func hostsMatch(storedHeaders, newHeaders Header) bool {
	a, aok := storedHeaders["host"]
	b, bok := newHeaders["host"]
	if !aok || !bok {
		return true
	}
	return a == b
}

// matchPreconditions are the structural preconditions shared by
// IsCachedResponseFresh and the decision of whether RevalidationHeaders
// may emit validators: method, URI, Host, and Vary must all agree,
// independent of any client directive.
func (p *Policy) matchPreconditions(newReq *Request) bool {
	if !methodMatches(p.reqMethod, newReq.Method) {
		return false
	}
	if p.reqURI != newReq.URI {
		return false
	}
	if !hostsMatch(p.reqHeaders, newReq.Headers) {
		return false
	}
	return p.vary.matches(newReq.Headers)
}

// IsCachedResponseFresh reports whether the stored response may be
// reused to satisfy newReq without contacting the origin (RFC 7234 §4).
func (p *Policy) IsCachedResponseFresh(newReq *Request, now time.Time) bool {
	if p.metrics != nil {
		p.metrics.RecordFreshnessCheck()
	}

	if !p.matchPreconditions(newReq) {
		return false
	}

	reqCC := parseDirectives(newReq.Headers.Get("cache-control"))
	if requestHasNoCacheSignal(newReq.Headers, reqCC) {
		return false
	}

	if d, ok := reqCC.seconds("min-fresh"); ok {
		if p.TimeToLive(now) < time.Duration(d)*time.Second {
			return false
		}
	}
	if d, ok := reqCC.seconds("max-age"); ok {
		if p.CurrentAge(now) > time.Duration(d)*time.Second {
			return false
		}
	}

	allowStale := false
	if dv, ok := reqCC["max-stale"]; ok {
		if !dv.hasValue || dv.value == "" {
			allowStale = true
		} else if n, ok := parseSeconds(dv.value); ok {
			if p.CurrentAge(now)-p.MaxAge() <= time.Duration(n)*time.Second {
				allowStale = true
			}
		}
	}

	mustRevalidate := p.mustRevalidate || (p.proxyRevalidate && p.shared)
	if mustRevalidate {
		allowStale = false
		if p.IsStale(now) {
			return false
		}
	}

	if !allowStale && p.IsStale(now) {
		return false
	}
	return true
}
