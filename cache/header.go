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

import "strings"

// Header is a case-insensitive snapshot of HTTP header fields. Names are
// stored lowercased; a value with multiple occurrences on the wire is
// expected to already be joined with ", " by the caller, since the HTTP
// parser and transport layer live outside this engine.
type Header map[string]string

// NewHeader creates an empty header map.
func NewHeader() Header {
	return make(Header)
}

// Get returns the value for name, or "" if absent.
func (h Header) Get(name string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(name)]
}

// Has reports whether name is present, regardless of value.
func (h Header) Has(name string) bool {
	if h == nil {
		return false
	}
	_, ok := h[strings.ToLower(name)]
	return ok
}

// Set assigns value for name, lowercasing the key.
func (h Header) Set(name, value string) {
	h[strings.ToLower(name)] = value
}

// Del removes name from the header.
func (h Header) Del(name string) {
	delete(h, strings.ToLower(name))
}

// Clone returns an owned copy of h. Headers returned by this package
// never alias caller-supplied maps.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// hopByHopHeaders never appear in projected responses or outbound
// revalidation requests (RFC 7230 §6.1). Date is stripped from both, but
// the engine keeps its own copy of the response's Date for age math
// before the projection step runs.
var hopByHopHeaders = map[string]struct{}{
	"date":                {},
	"connection":          {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailer":             {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

// stripHopByHop returns a copy of h with hop-by-hop headers removed.
func stripHopByHop(h Header) Header {
	out := make(Header, len(h))
	for k, v := range h {
		if _, hop := hopByHopHeaders[k]; hop {
			continue
		}
		out[k] = v
	}
	return out
}

// revalidationExcludedHeaders are never copied from a 304 onto the stored
// response during the header merge; they describe the (absent) 304 body,
// not the cached one.
var revalidationExcludedHeaders = map[string]struct{}{
	"content-length":    {},
	"content-encoding":  {},
	"transfer-encoding": {},
	"content-range":     {},
}

// splitCommaList splits a comma-separated header value into trimmed,
// non-empty tokens. Used for Vary, Warning, and If-None-Match parsing.
func splitCommaList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
