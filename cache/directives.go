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
	"strconv"
	"strings"
)

// directive holds one parsed Cache-Control (or Pragma) token: whether it
// carried an explicit "=value" / "="quoted"" argument, and the argument
// itself.
type directive struct {
	value    string
	hasValue bool
}

// directiveSet is a lowercased directive-name -> directive mapping.
// Parsing never fails; malformed entries are simply dropped.
type directiveSet map[string]directive

// parseDirectives tokenizes a Cache-Control/Pragma header value. Rules:
// split on ',', trim whitespace from each token, split at the first '=',
// strip one layer of surrounding double quotes from the value, lowercase
// the directive name, and drop empty tokens produced by stray/adjacent
// commas. Unknown directives are preserved verbatim.
func parseDirectives(header string) directiveSet {
	set := make(directiveSet)
	if header == "" {
		return set
	}
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		name := token
		var d directive
		if eq := strings.IndexByte(token, '='); eq >= 0 {
			name = strings.TrimSpace(token[:eq])
			val := strings.TrimSpace(token[eq+1:])
			val = strings.TrimPrefix(val, `"`)
			val = strings.TrimSuffix(val, `"`)
			d.value = val
			d.hasValue = true
		}
		name = strings.ToLower(name)
		if name == "" {
			continue
		}
		set[name] = d
	}
	return set
}

// has reports whether name is present at all (with or without a value).
func (s directiveSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// value returns the raw argument for name and whether it had one.
func (s directiveSet) value(name string) (string, bool) {
	d, ok := s[name]
	if !ok || !d.hasValue {
		return "", false
	}
	return d.value, true
}

// seconds parses name's argument as a non-negative delta-seconds value.
// Returns ok=false for missing, non-numeric, or negative values, so a
// malformed numeric directive behaves as if absent.
func (s directiveSet) seconds(name string) (int64, bool) {
	raw, ok := s.value(name)
	if !ok {
		return 0, false
	}
	return parseSeconds(raw)
}

// parseSeconds parses a delta-seconds token, rejecting non-numeric or
// negative input.
func parseSeconds(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// withoutDirectives re-renders a Cache-Control header value with the
// named directives removed, preserving the remaining directives
// (including unknown/custom ones) in their original textual form and
// order. Used by the cargo-cult exception and nowhere else, since that
// is the only place the engine rewrites a header value rather than just
// reading it.
func withoutDirectives(header string, remove map[string]struct{}) string {
	if header == "" {
		return ""
	}
	var kept []string
	for _, token := range strings.Split(header, ",") {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		name := trimmed
		if eq := strings.IndexByte(trimmed, '='); eq >= 0 {
			name = strings.TrimSpace(trimmed[:eq])
		}
		if _, drop := remove[strings.ToLower(name)]; drop {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, ", ")
}
