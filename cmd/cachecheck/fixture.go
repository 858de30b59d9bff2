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

package main

import (
	"os"
	"time"

	"github.com/cachepolicy/cachepolicy/cache"
	"gopkg.in/yaml.v3"
)

// fixture is a recorded (request, response) exchange plus an optional
// follow-up request, read from a YAML file. It exercises the engine the
// same way a real caller would, without performing any network I/O
// itself.
type fixture struct {
	Request  fixtureRequest  `yaml:"request"`
	Response fixtureResponse `yaml:"response"`

	// ResponseTime is when the response was considered received, RFC3339.
	// Defaults to now when absent.
	ResponseTime string `yaml:"response_time,omitempty"`

	// Replay, if present, is evaluated against the Policy built from
	// Request/Response to demonstrate freshness/revalidation decisions.
	Replay *fixtureRequest `yaml:"replay,omitempty"`
}

type fixtureRequest struct {
	Method  string            `yaml:"method"`
	URI     string            `yaml:"uri"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

type fixtureResponse struct {
	Status  int               `yaml:"status"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

func loadFixture(path string) (*fixture, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &fixture{}
	if err := yaml.Unmarshal(buf, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r fixtureRequest) toRequest() *cache.Request {
	h := cache.NewHeader()
	for k, v := range r.Headers {
		h.Set(k, v)
	}
	return &cache.Request{Method: r.Method, URI: r.URI, Headers: h}
}

func (r fixtureResponse) toResponse() *cache.Response {
	h := cache.NewHeader()
	for k, v := range r.Headers {
		h.Set(k, v)
	}
	return &cache.Response{Status: r.Status, Headers: h}
}

func (f *fixture) responseTime(now time.Time) time.Time {
	if f.ResponseTime == "" {
		return now
	}
	t, err := time.Parse(time.RFC3339, f.ResponseTime)
	if err != nil {
		return now
	}
	return t
}
