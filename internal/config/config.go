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

// Package config loads the YAML configuration for the cachecheck demo
// command: the engine Options plus logging setup.
package config

import "github.com/cachepolicy/cachepolicy/cache"

// Configuration is the root of the YAML document loaded by Loader.
type Configuration struct {
	Engine Engine `yaml:"engine,omitempty"`
	Log    Log    `yaml:"log,omitempty"`
}

// Engine mirrors cache.Options in YAML-friendly form. Metrics is never
// part of the file; callers wire a *cachemetrics.Recorder in code.
type Engine struct {
	Shared          bool    `yaml:"shared,omitempty"`
	IgnoreCargoCult bool    `yaml:"ignore_cargo_cult,omitempty"`
	TrustServerDate *bool   `yaml:"trust_server_date,omitempty"`
	CacheHeuristic  float64 `yaml:"cache_heuristic,omitempty"`
	ImmutableMinTTL int64   `yaml:"immutable_min_ttl,omitempty"`
}

// Options converts the loaded Engine block into cache.Options, starting
// from cache.DefaultOptions(). Shared and IgnoreCargoCult are copied as
// given. TrustServerDate is a pointer, so an explicit false is told apart
// from an absent key. A zero CacheHeuristic or ImmutableMinTTL keeps the
// default, so neither can be set to zero from the file.
func (e Engine) Options() cache.Options {
	o := cache.DefaultOptions()
	o.Shared = e.Shared
	o.IgnoreCargoCult = e.IgnoreCargoCult
	if e.TrustServerDate != nil {
		o.TrustServerDate = *e.TrustServerDate
	}
	if e.CacheHeuristic != 0 {
		o.CacheHeuristic = e.CacheHeuristic
	}
	if e.ImmutableMinTTL != 0 {
		o.ImmutableMinTTL = e.ImmutableMinTTL
	}
	return o
}

// Log configures the zerolog/lumberjack logging stack.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	Color  bool   `yaml:"color,omitempty"`

	FilePath   string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"max_size,omitempty"`
	MaxAge     int    `yaml:"max_age,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}
