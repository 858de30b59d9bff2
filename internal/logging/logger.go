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

// Package logging builds the zerolog logger used by the cachecheck
// command. Package cache never logs; policy decisions stay pure.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/cachepolicy/cachepolicy/internal/config"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// New builds a logger from cfg. A nil cfg yields an info-level console
// logger on stderr.
func New(cfg *config.Log) zerolog.Logger {
	return zerolog.New(writer(cfg)).
		Level(level(cfg)).
		With().Timestamp().
		Logger()
}

// writer selects the log destination: a rotated file when cfg.FilePath
// is set, stderr otherwise. Unless the json format was requested, the
// destination is wrapped in a console writer; file output is always
// uncolored.
func writer(cfg *config.Log) io.Writer {
	var w io.Writer = os.Stderr
	toFile := cfg != nil && cfg.FilePath != ""
	if toFile {
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
	}

	if cfg != nil && cfg.Format == "json" {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    cfg == nil || !cfg.Color || toFile,
	}
}

// level parses cfg.Level, defaulting to info when unset or unparseable.
func level(cfg *config.Log) zerolog.Level {
	if cfg == nil || cfg.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
