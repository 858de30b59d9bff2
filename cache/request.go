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

// Request is the subset of an HTTP request the policy engine reasons
// about. It intentionally does not embed *http.Request: the HTTP parser
// and transport are external collaborators, so the engine's core types
// stay decoupled from net/http. Use FromHTTPRequest to build one from
// real traffic.
type Request struct {
	// Method is the request method, uppercased.
	Method string

	// URI is the request target: scheme+authority+path+query, normalized
	// by the caller. Compared byte-for-byte by the match evaluator.
	URI string

	// Headers holds a lowercased snapshot of the request headers.
	Headers Header
}

// FromHTTPRequest builds a Request from a *http.Request. Multi-valued
// headers are flattened with ", ".
func FromHTTPRequest(req *http.Request) *Request {
	uri := req.URL.Path
	if req.URL.RawQuery != "" {
		uri += "?" + req.URL.RawQuery
	}
	scheme := req.URL.Scheme
	if scheme == "" {
		if req.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	host := req.Host
	if host == "" {
		host = req.URL.Host
	}

	r := &Request{
		Method:  strings.ToUpper(req.Method),
		URI:     scheme + "://" + host + uri,
		Headers: flattenHTTPHeader(req.Header),
	}
	if host != "" {
		r.Headers.Set("host", host)
	}
	return r
}

// flattenHTTPHeader converts a net/http.Header into an owned Header
// snapshot, joining repeated header lines with ", " as RFC 7230 §3.2.2
// permits.
func flattenHTTPHeader(h http.Header) Header {
	out := make(Header, len(h))
	for k, vv := range h {
		out[strings.ToLower(k)] = strings.Join(vv, ", ")
	}
	return out
}
