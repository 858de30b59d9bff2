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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeEntityTags(t *testing.T) {
	merged := mergeEntityTags(`"a"`, `"b", "a"`)
	assert.Equal(t, []string{`"b"`, `"a"`}, merged)
}

func TestDropWeakEntityTags(t *testing.T) {
	out := dropWeakEntityTags([]string{`W/"a"`, `"b"`})
	assert.Equal(t, []string{`"b"`}, out)
}

func TestRevalidationHeadersEmitsValidators(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	req := &Request{Method: "GET", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	res := &Response{Status: 200, Headers: Header{
		"date":          now.Format(time.RFC1123),
		"cache-control": "max-age=300",
		"etag":          `"v1"`,
		"last-modified": now.Add(-time.Hour).Format(time.RFC1123),
	}}
	p := NewPolicy(req, res, DefaultOptions(), now, WithRequestTime(now))

	replay := &Request{Method: "GET", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	out := p.RevalidationHeaders(replay)

	assert.Equal(t, `"v1"`, out.Get("if-none-match"))
	assert.Equal(t, res.Headers.Get("last-modified"), out.Get("if-modified-since"))
}

func TestRevalidationHeadersDropsWeakEtagForUnsafeMethod(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	req := &Request{Method: "POST", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	res := &Response{Status: 200, Headers: Header{
		"date":          now.Format(time.RFC1123),
		"cache-control": "max-age=300",
		"etag":          `W/"v1"`,
		"last-modified": now.Add(-time.Hour).Format(time.RFC1123),
	}}
	p := NewPolicy(req, res, DefaultOptions(), now, WithRequestTime(now))

	replay := &Request{Method: "POST", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	out := p.RevalidationHeaders(replay)

	assert.False(t, out.Has("if-none-match"))
	assert.False(t, out.Has("if-modified-since"))
}

func TestRevalidationHeadersMergesRequestEntityTags(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	req := &Request{Method: "POST", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	res := &Response{Status: 200, Headers: Header{
		"date":          now.Format(time.RFC1123),
		"cache-control": "max-age=300",
		"etag":          `"123456789"`,
		"last-modified": now.Add(-time.Hour).Format(time.RFC1123),
	}}
	p := NewPolicy(req, res, DefaultOptions(), now, WithRequestTime(now))

	replay := &Request{Method: "POST", URI: "https://example.com/a", Headers: Header{
		"host":          "example.com",
		"if-none-match": `W/"weak", "strong", W/"weak2"`,
	}}
	out := p.RevalidationHeaders(replay)

	assert.Equal(t, `"strong", "123456789"`, out.Get("if-none-match"))
	assert.False(t, out.Has("if-modified-since"))
}

func TestRevalidationHeadersNoValidatorsWhenPreconditionsFail(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	req := &Request{Method: "GET", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	res := &Response{Status: 200, Headers: Header{
		"date":          now.Format(time.RFC1123),
		"cache-control": "max-age=300",
		"etag":          `"v1"`,
	}}
	p := NewPolicy(req, res, DefaultOptions(), now, WithRequestTime(now))

	replay := &Request{Method: "GET", URI: "https://example.com/other", Headers: Header{"host": "example.com"}}
	out := p.RevalidationHeaders(replay)

	assert.Equal(t, "", out.Get("if-none-match"))
}

func TestRevalidationHeadersStripsHopByHop(t *testing.T) {
	now := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	req := &Request{Method: "GET", URI: "https://example.com/a", Headers: Header{"host": "example.com"}}
	res := &Response{Status: 200, Headers: Header{
		"date":          now.Format(time.RFC1123),
		"cache-control": "max-age=300",
	}}
	p := NewPolicy(req, res, DefaultOptions(), now, WithRequestTime(now))

	replay := &Request{Method: "GET", URI: "https://example.com/a", Headers: Header{
		"host": "example.com", "connection": "keep-alive",
	}}
	out := p.RevalidationHeaders(replay)
	assert.False(t, out.Has("connection"))
}
