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

import "github.com/cachepolicy/cachepolicy/cache/cachemetrics"

// Options holds configuration that controls the policy engine's behavior
// and is independent of any specific request or response.
type Options struct {
	// Shared selects shared-cache semantics (honor s-maxage, reject
	// private and unauthorized Set-Cookie responses) when true. When
	// false the policy is evaluated for a private, single-user cache.
	Shared bool

	// IgnoreCargoCult enables the pre-check/post-check exception:
	// responses carrying both non-standard directives have no-cache,
	// no-store, pre-check, post-check, and Pragma: no-cache stripped
	// before storability and freshness are evaluated.
	IgnoreCargoCult bool

	// TrustServerDate controls whether the response's Date header is
	// used as the basis for age math. When false, response_time is
	// used in its place for all age calculations.
	TrustServerDate bool

	// CacheHeuristic is the fraction of the interval between
	// Last-Modified and the resolved server Date used as a fallback
	// freshness lifetime when no
	// explicit expiration is present. Bounded to [0, 1].
	CacheHeuristic float64

	// ImmutableMinTTL is the floor applied to freshness lifetime when
	// Cache-Control: immutable is present and no explicit max-age/
	// s-maxage lower than this floor was given.
	ImmutableMinTTL int64 // seconds

	// Metrics, if non-nil, receives decision counts and freshness
	// observations made while constructing and serving a Policy. NewPolicy,
	// IsCachedResponseFresh and IsCachedResponseValid report to it, but
	// only write to it and never read from it, so it cannot affect the
	// engine's boolean/duration results.
	Metrics *cachemetrics.Recorder

	// _ blocks unkeyed struct literals from outside the package so new
	// fields can be added later without breaking callers.
	_ struct{}
}

// DefaultOptions returns the RFC 7234 defaults: shared cache, cargo-cult
// directives honored literally, server Date trusted, a 10% heuristic
// (matching historical IE/Firefox behavior), and a 24h immutable floor.
func DefaultOptions() Options {
	return Options{
		Shared:          true,
		IgnoreCargoCult: false,
		TrustServerDate: true,
		CacheHeuristic:  0.1,
		ImmutableMinTTL: 86400,
	}
}

func (o Options) heuristicFraction() float64 {
	switch {
	case o.CacheHeuristic < 0:
		return 0
	case o.CacheHeuristic > 1:
		return 1
	default:
		return o.CacheHeuristic
	}
}
