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

// Command cachecheck evaluates a recorded (request, response) fixture
// against the cache policy engine and reports its storability,
// freshness, and revalidation decisions. It performs no network I/O of
// its own; it only exercises the engine the way a caching proxy would.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cachepolicy/cachepolicy/cache"
	"github.com/cachepolicy/cachepolicy/cache/cachemetrics"
	"github.com/cachepolicy/cachepolicy/internal/clock"
	"github.com/cachepolicy/cachepolicy/internal/config"
	"github.com/cachepolicy/cachepolicy/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	configFileOption   = "config.file"
	fixtureFileOption  = "fixture.file"
	defaultConfigFile  = "cachecheck.yml"
	defaultFixtureFile = "testdata/basic.yml"
)

func main() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	var configFile string
	flag.StringVar(&configFile, configFileOption, defaultConfigFile, "path to the engine/log configuration file")

	var fixtureFile string
	flag.StringVar(&fixtureFile, fixtureFileOption, defaultFixtureFile, "path to the request/response fixture to evaluate")

	flag.Parse()

	ldr, err := config.NewLoader(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config from %s: %v\n", configFile, err)
		os.Exit(1)
	}
	cfg := ldr.Config()

	logger := logging.New(&cfg.Log)
	logger.Debug().Str("config", configFile).Str("checksum", ldr.Checksum()).Msg("config loaded")

	reg := prometheus.NewRegistry()
	metrics := cachemetrics.NewRecorder(reg)

	opts := cfg.Engine.Options()
	opts.Metrics = metrics

	logger.Info().Str("fixture", fixtureFile).Msg("cachecheck evaluating fixture")

	f, err := loadFixture(fixtureFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading fixture")
	}

	ts := clock.NewSystemTimeSource()
	now := ts.Now()

	req := f.Request.toRequest()
	res := f.Response.toResponse()
	responseTime := f.responseTime(now)

	policy := cache.NewPolicy(req, res, opts, responseTime, cache.WithRequestTime(responseTime))

	fmt.Printf("storable:        %v\n", policy.IsStorable())
	fmt.Printf("max-age:         %s\n", policy.MaxAge())
	fmt.Printf("current-age:     %s\n", policy.CurrentAge(now))
	fmt.Printf("time-to-live:    %s\n", policy.TimeToLive(now))
	fmt.Printf("stale:           %v\n", policy.IsStale(now))

	if f.Replay == nil {
		return
	}

	replay := f.Replay.toRequest()
	fmt.Printf("\nreplay %s %s:\n", replay.Method, replay.URI)
	fmt.Printf("  fresh:               %v\n", policy.IsCachedResponseFresh(replay, now))

	revHeaders := policy.RevalidationHeaders(replay)
	fmt.Printf("  revalidation headers: %v\n", revHeaders)
}
