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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStorableBasicGet(t *testing.T) {
	reqCC := parseDirectives("")
	resCC := parseDirectives("max-age=300")
	ok := isStorable("GET", Header{}, reqCC, 200, Header{"cache-control": "max-age=300"}, resCC, true)
	assert.True(t, ok)
}

func TestIsStorablePostRequiresExplicitFreshness(t *testing.T) {
	reqCC := parseDirectives("")

	resCC := parseDirectives("")
	ok := isStorable("POST", Header{}, reqCC, 200, Header{}, resCC, true)
	assert.False(t, ok)

	resCC = parseDirectives("max-age=60")
	ok = isStorable("POST", Header{}, reqCC, 200, Header{"cache-control": "max-age=60"}, resCC, true)
	assert.True(t, ok)
}

func TestIsStorableRejectsOtherMethods(t *testing.T) {
	reqCC := parseDirectives("")
	resCC := parseDirectives("max-age=60")
	ok := isStorable("PUT", Header{}, reqCC, 200, Header{}, resCC, true)
	assert.False(t, ok)
}

func TestIsStorableNoStore(t *testing.T) {
	reqCC := parseDirectives("no-store")
	resCC := parseDirectives("max-age=60")
	assert.False(t, isStorable("GET", Header{}, reqCC, 200, Header{}, resCC, true))

	reqCC = parseDirectives("")
	resCC = parseDirectives("no-store")
	assert.False(t, isStorable("GET", Header{}, reqCC, 200, Header{}, resCC, true))
}

func TestIsStorablePrivateInSharedCache(t *testing.T) {
	reqCC := parseDirectives("")
	resCC := parseDirectives("private")
	assert.False(t, isStorable("GET", Header{}, reqCC, 200, Header{}, resCC, true))
	assert.True(t, isStorable("GET", Header{}, reqCC, 200, Header{}, resCC, false))
}

func TestIsStorableAuthorizedRequest(t *testing.T) {
	reqCC := parseDirectives("")
	reqHeaders := Header{"authorization": "Bearer token"}

	resCC := parseDirectives("")
	assert.False(t, isStorable("GET", reqHeaders, reqCC, 200, Header{}, resCC, true))

	resCC = parseDirectives("public")
	assert.True(t, isStorable("GET", reqHeaders, reqCC, 200, Header{}, resCC, true))

	resCC = parseDirectives("s-maxage=60")
	assert.True(t, isStorable("GET", reqHeaders, reqCC, 200, Header{}, resCC, true))
}

func TestIsStorable206Rejected(t *testing.T) {
	reqCC := parseDirectives("")
	resCC := parseDirectives("max-age=60")
	assert.False(t, isStorable("GET", Header{}, reqCC, 206, Header{}, resCC, true))
}

func TestIsStorableUncacheableStatusNeedsExplicitFreshness(t *testing.T) {
	reqCC := parseDirectives("")

	resCC := parseDirectives("")
	assert.False(t, isStorable("GET", Header{}, reqCC, 403, Header{}, resCC, true))

	resCC = parseDirectives("max-age=60")
	assert.True(t, isStorable("GET", Header{}, reqCC, 403, Header{"cache-control": "max-age=60"}, resCC, true))
}

func TestIsStorableSetCookieInSharedCache(t *testing.T) {
	reqCC := parseDirectives("")
	resCC := parseDirectives("max-age=60")
	resHeaders := Header{"set-cookie": "sid=abc", "cache-control": "max-age=60"}

	assert.False(t, isStorable("GET", Header{}, reqCC, 200, resHeaders, resCC, true))

	resCC = parseDirectives("max-age=60, public")
	resHeaders["cache-control"] = "max-age=60, public"
	assert.True(t, isStorable("GET", Header{}, reqCC, 200, resHeaders, resCC, true))
}

func TestApplyCargoCultException(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreCargoCult = true

	resHeaders := Header{
		"cache-control": "no-cache, no-store, pre-check=0, post-check=0, max-age=300",
		"pragma":        "no-cache",
	}

	out, fired := applyCargoCultException(resHeaders, opts)
	assert.True(t, fired)
	assert.Equal(t, "max-age=300", out.Get("cache-control"))
	assert.Equal(t, "", out.Get("pragma"))
}

func TestApplyCargoCultExceptionUndefinedHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreCargoCult = true

	resHeaders := Header{
		"cache-control": "no-cache, no-store, pre-check=0, post-check=0",
	}

	out, fired := applyCargoCultException(resHeaders, opts)
	assert.True(t, fired)
	assert.False(t, out.Has("cache-control"))
}

func TestApplyCargoCultExceptionDisabledByDefault(t *testing.T) {
	opts := DefaultOptions()
	resHeaders := Header{"cache-control": "no-cache, pre-check=0, post-check=0"}

	out, fired := applyCargoCultException(resHeaders, opts)
	assert.False(t, fired)
	assert.Equal(t, resHeaders.Get("cache-control"), out.Get("cache-control"))
}

func TestRequestHasNoCacheSignal(t *testing.T) {
	reqCC := parseDirectives("no-cache")
	assert.True(t, requestHasNoCacheSignal(Header{}, reqCC))

	reqCC = parseDirectives("")
	assert.True(t, requestHasNoCacheSignal(Header{"pragma": "no-cache"}, reqCC))

	assert.False(t, requestHasNoCacheSignal(Header{"pragma": "x-custom"}, reqCC))
	assert.False(t, requestHasNoCacheSignal(Header{}, reqCC))
}
