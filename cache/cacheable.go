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

// cacheableByDefaultStatuses are cacheable even without explicit
// freshness information (RFC 7231 §6.1).
var cacheableByDefaultStatuses = map[int]struct{}{
	200: {}, 203: {}, 204: {}, 206: {}, 300: {}, 301: {},
	404: {}, 405: {}, 410: {}, 414: {}, 501: {},
}

// understoodStatuses are eligible for heuristic freshness. This is a
// superset of cacheableByDefaultStatuses (e.g. 302/303/307/308 are
// understood but have no default expiration), minus 206 which is never
// stored here.
var understoodStatuses = map[int]struct{}{
	200: {}, 203: {}, 204: {}, 300: {}, 301: {}, 302: {}, 303: {},
	307: {}, 308: {}, 404: {}, 405: {}, 410: {}, 414: {}, 501: {},
}

// cargoCultStrip is the set of directives removed from the engine's
// effective view of a response when the cargo-cult exception fires.
var cargoCultStrip = map[string]struct{}{
	"pre-check": {}, "post-check": {}, "no-cache": {}, "no-store": {},
}

// applyCargoCultException neutralizes the IE5-era "pre-check/post-check"
// cargo cult. When opts.IgnoreCargoCult is set and the response's
// Cache-Control carries both pre-check and post-check (any values), it
// returns a rewritten Header with pre-check, post-check, no-cache, and
// no-store stripped from Cache-Control and Pragma removed outright, plus
// whether the exception fired. The Cache-Control header is dropped
// entirely if stripping empties it.
func applyCargoCultException(resHeaders Header, opts Options) (Header, bool) {
	if !opts.IgnoreCargoCult {
		return resHeaders, false
	}
	cc := parseDirectives(resHeaders.Get("cache-control"))
	if !cc.has("pre-check") || !cc.has("post-check") {
		return resHeaders, false
	}

	out := resHeaders.Clone()
	stripped := withoutDirectives(resHeaders.Get("cache-control"), cargoCultStrip)
	if stripped == "" {
		out.Del("cache-control")
	} else {
		out.Set("cache-control", stripped)
	}
	out.Del("pragma")
	return out, true
}

// requestHasNoCacheSignal reports whether the request forbids serving
// from cache without revalidation, via either Cache-Control: no-cache or
// the legacy Pragma: no-cache fallback (RFC 7234 §5.4).
func requestHasNoCacheSignal(reqHeaders Header, reqCC directiveSet) bool {
	if reqCC.has("no-cache") {
		return true
	}
	return parseDirectives(reqHeaders.Get("pragma")).has("no-cache")
}

// hasExplicitFreshness reports whether a response declares a freshness
// lifetime explicitly, via Expires, max-age, s-maxage, or public (used by
// the storability evaluator's POST and default-cacheable-status checks).
func hasExplicitFreshness(resHeaders Header, resCC directiveSet) bool {
	if resHeaders.Get("expires") != "" {
		return true
	}
	if _, ok := resCC.value("max-age"); ok {
		return true
	}
	if _, ok := resCC.value("s-maxage"); ok {
		return true
	}
	return resCC.has("public")
}

// isStorable decides whether a (request, response) pair may be cached at
// all (RFC 7234 §3).
func isStorable(
	reqMethod string, reqHeaders Header, reqCC directiveSet,
	status int, resHeaders Header, resCC directiveSet,
	shared bool,
) bool {
	switch reqMethod {
	case "GET", "HEAD":
		// always eligible, subject to the checks below.
	case "POST":
		if !hasExplicitFreshness(resHeaders, resCC) {
			return false
		}
	default:
		return false
	}

	if reqCC.has("no-store") {
		return false
	}
	if resCC.has("no-store") {
		return false
	}

	if shared && resCC.has("private") {
		return false
	}

	if shared && reqHeaders.Get("authorization") != "" {
		allowed := resCC.has("public") || resCC.has("must-revalidate")
		if _, ok := resCC.value("s-maxage"); ok {
			allowed = true
		}
		if !allowed {
			return false
		}
	}

	if status == 206 {
		return false
	}

	if _, ok := cacheableByDefaultStatuses[status]; !ok {
		if !hasExplicitFreshness(resHeaders, resCC) {
			return false
		}
	}

	if shared && resHeaders.Get("set-cookie") != "" {
		if !resCC.has("public") && !resCC.has("immutable") {
			return false
		}
	}

	return true
}
