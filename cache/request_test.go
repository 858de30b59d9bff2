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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHTTPRequest(t *testing.T) {
	req, err := http.NewRequest("get", "https://example.com/articles?id=1", nil)
	assert.NoError(t, err)
	req.Header.Add("Accept", "text/html")
	req.Header.Add("Accept", "application/json")

	got := FromHTTPRequest(req)

	assert.Equal(t, "GET", got.Method)
	assert.Equal(t, "https://example.com/articles?id=1", got.URI)
	assert.Equal(t, "text/html, application/json", got.Headers.Get("accept"))
	assert.Equal(t, "example.com", got.Headers.Get("host"))
}

func TestFromHTTPRequestNoQuery(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.com/path", nil)
	assert.NoError(t, err)

	got := FromHTTPRequest(req)
	assert.Equal(t, "http://example.com/path", got.URI)
}
