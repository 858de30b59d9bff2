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
	"net/http"
	"strings"
)

// Response is the subset of an HTTP response the policy engine reasons
// about. See Request for why this isn't *http.Response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Headers holds a lowercased snapshot of the response headers.
	Headers Header
}

// FromHTTPResponse builds a Response from a *http.Response.
func FromHTTPResponse(res *http.Response) *Response {
	return &Response{
		Status:  res.StatusCode,
		Headers: flattenHTTPHeader(res.Header),
	}
}

// ToHTTPHeader converts a Header snapshot back into a net/http.Header,
// for callers that want to apply the result of ResponseHeaders or
// RevalidationHeaders to a real request/response.
func (h Header) ToHTTPHeader() http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		out[http.CanonicalHeaderKey(k)] = []string{v}
	}
	return out
}

// joinTokens re-joins a token slice the way a single header line would
// present them, e.g. merged If-None-Match entity tags.
func joinTokens(tokens []string) string {
	return strings.Join(tokens, ", ")
}
