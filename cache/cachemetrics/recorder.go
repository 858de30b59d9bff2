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

// Package cachemetrics exposes optional Prometheus instrumentation for
// the policy engine. A Recorder is created once by the caller against a
// prometheus.Registerer and handed to the engine through its options; the
// engine only writes counts and observations to it and never reads them
// back, so decisions do not depend on it.
package cachemetrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder counts policy decisions. A nil *Recorder is valid and all of
// its methods are no-ops, so wiring it in is always optional.
type Recorder struct {
	storable       *prometheus.CounterVec
	freshnessCalls prometheus.Counter
	timeToLive     prometheus.Histogram
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// Pass prometheus.NewRegistry() or prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		storable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cachepolicy_storable_total",
			Help: "Count of is_storable decisions by outcome.",
		}, []string{"storable"}),
		freshnessCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cachepolicy_freshness_checks_total",
			Help: "Count of is_cached_response_fresh evaluations.",
		}),
		timeToLive: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cachepolicy_time_to_live_seconds",
			Help:    "Observed time_to_live() at policy construction.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(r.storable, r.freshnessCalls, r.timeToLive)
	}
	return r
}

// RecordStorable records an is_storable() decision.
func (r *Recorder) RecordStorable(storable bool) {
	if r == nil {
		return
	}
	label := "false"
	if storable {
		label = "true"
	}
	r.storable.WithLabelValues(label).Inc()
}

// RecordTimeToLive observes a freshness lifetime in seconds.
func (r *Recorder) RecordTimeToLive(seconds float64) {
	if r == nil {
		return
	}
	r.timeToLive.Observe(seconds)
}

// RecordFreshnessCheck counts an is_cached_response_fresh call.
func (r *Recorder) RecordFreshnessCheck() {
	if r == nil {
		return
	}
	r.freshnessCalls.Inc()
}
