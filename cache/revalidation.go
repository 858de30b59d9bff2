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
)

var unsafeMethods = map[string]struct{}{
	"POST": {}, "PUT": {}, "DELETE": {}, "PATCH": {},
}

// RevalidationHeaders builds the headers to attach to the outbound
// request that revalidates the stored response with the origin: the new
// request's headers minus hop-by-hop fields, plus If-None-Match /
// If-Modified-Since when the stored entry's validators apply to it.
func (p *Policy) RevalidationHeaders(newReq *Request) Header {
	out := stripHopByHop(newReq.Headers)

	if !p.matchPreconditions(newReq) {
		return out
	}

	storedETag := p.resHeaders.Get("etag")
	merged := mergeEntityTags(storedETag, newReq.Headers.Get("if-none-match"))
	if _, unsafe := unsafeMethods[newReq.Method]; unsafe {
		merged = dropWeakEntityTags(merged)
	}
	if len(merged) > 0 {
		out.Set("if-none-match", joinTokens(merged))
	} else {
		out.Del("if-none-match")
	}

	lastModified := p.resHeaders.Get("last-modified")
	isRangeLike := newReq.Headers.Get("accept-ranges") != "" || newReq.Headers.Get("range") != ""
	if lastModified != "" && newReq.Method != "POST" && !isRangeLike {
		out.Set("if-modified-since", lastModified)
	}

	return out
}

// mergeEntityTags combines the stored response's ETag (if any) with the
// entity tags already present in the new request's If-None-Match,
// de-duplicating exact matches.
func mergeEntityTags(storedETag, ifNoneMatch string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	for _, tag := range splitCommaList(ifNoneMatch) {
		add(tag)
	}
	add(storedETag)
	return out
}

// dropWeakEntityTags removes weak validators (W/"...") from tags, since
// unsafe methods must not rely on weak comparison (RFC 7232 §2.1).
func dropWeakEntityTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if strings.HasPrefix(t, "W/") {
			continue
		}
		out = append(out, t)
	}
	return out
}
