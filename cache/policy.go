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

// Package cache implements an RFC 7234 HTTP cache policy engine: a pure,
// deterministic decision layer that tells a caller whether a response may
// be stored, whether a stored response is still fresh, and what headers
// to send when it isn't. It does no I/O and holds no cache storage of its
// own; callers own the transport and the store.
package cache

import (
	"time"

	"github.com/cachepolicy/cachepolicy/cache/cachemetrics"
)

// Policy is the decision built from a single (request, response) pair:
// whether it may be stored, its freshness lifetime, and the state needed
// to later judge new requests against it. A Policy is immutable except
// through IsCachedResponseValid, which the caller must serialize
// externally if shared across goroutines.
type Policy struct {
	reqMethod string
	reqURI    string
	reqHeaders Header
	reqCC     directiveSet

	status     int
	resHeaders Header
	resCC      directiveSet

	responseTime time.Time
	requestTime  time.Time
	srvDate      time.Time

	shared bool
	opts   Options

	vary            varySelection
	mustRevalidate  bool
	proxyRevalidate bool
	cargoCulted     bool

	storable  bool
	freshness freshnessResult

	metrics *cachemetrics.Recorder
}

// PolicyOption customizes Policy construction beyond the (request,
// response, Options) triple.
type PolicyOption func(*Policy)

// WithRequestTime records when the request was issued, used by the
// current-age calculation's response-delay term (RFC 7234 §4.2.3). Omit
// it when the request time isn't tracked; it's treated as equal to the
// response time.
func WithRequestTime(t time.Time) PolicyOption {
	return func(p *Policy) { p.requestTime = t }
}

// NewPolicy evaluates a (request, response) pair and builds the Policy
// that governs its future caching decisions. responseTime is when the
// response was received, the clock origin for Age/Date resolution.
func NewPolicy(req *Request, res *Response, opts Options, responseTime time.Time, policyOpts ...PolicyOption) *Policy {
	p := &Policy{
		reqMethod:    req.Method,
		reqURI:       req.URI,
		reqHeaders:   req.Headers,
		status:       res.Status,
		responseTime: responseTime,
		requestTime:  responseTime,
		shared:       opts.Shared,
		opts:         opts,
	}
	for _, o := range policyOpts {
		o(p)
	}

	effective, cargoCulted := applyCargoCultException(res.Headers, opts)
	p.resHeaders = effective
	p.cargoCulted = cargoCulted

	p.reqCC = parseDirectives(req.Headers.Get("cache-control"))
	p.resCC = parseDirectives(effective.Get("cache-control"))
	p.srvDate = serverDate(effective, responseTime, opts.TrustServerDate)
	p.vary = newVarySelection(effective, req.Headers)
	p.mustRevalidate = p.resCC.has("must-revalidate")
	p.proxyRevalidate = p.resCC.has("proxy-revalidate")

	p.storable = isStorable(p.reqMethod, req.Headers, p.reqCC, res.Status, effective, p.resCC, opts.Shared)
	p.freshness = computeMaxAge(p.reqCC, p.resCC, effective, res.Status, p.srvDate, opts.Shared, opts)

	if opts.Metrics != nil {
		opts.Metrics.RecordStorable(p.storable)
		opts.Metrics.RecordTimeToLive(p.TimeToLive(responseTime).Seconds())
	}
	p.metrics = opts.Metrics

	return p
}

// IsStorable reports whether this response may be cached at all
// (RFC 7234 §3). A false result means the caller must not retain the
// response for reuse by later requests.
func (p *Policy) IsStorable() bool {
	return p.storable
}

// MaxAge returns the response's freshness lifetime as computed at
// construction time, or at the last successful IsCachedResponseValid
// (RFC 7234 §4.2.1).
func (p *Policy) MaxAge() time.Duration {
	return p.freshness.maxAge
}

// CurrentAge returns the response's current age at instant now
// (RFC 7234 §4.2.3).
func (p *Policy) CurrentAge(now time.Time) time.Duration {
	return currentAge(p.resHeaders, p.srvDate, p.responseTime, p.requestTime, now)
}

// TimeToLive returns how much longer the response remains fresh at
// instant now. Zero once it has gone stale, never negative.
func (p *Policy) TimeToLive(now time.Time) time.Duration {
	ttl := p.freshness.maxAge - p.CurrentAge(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// IsStale reports whether the response's age has exceeded its freshness
// lifetime at instant now.
func (p *Policy) IsStale(now time.Time) bool {
	return p.TimeToLive(now) == 0
}
