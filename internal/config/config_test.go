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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineOptionsAppliesDefaults(t *testing.T) {
	e := Engine{}
	o := e.Options()

	assert.False(t, o.Shared)
	assert.True(t, o.TrustServerDate)
	assert.Equal(t, 0.1, o.CacheHeuristic)
	assert.Equal(t, int64(86400), o.ImmutableMinTTL)
}

func TestEngineOptionsHonorsOverrides(t *testing.T) {
	no := false
	e := Engine{
		Shared:          true,
		TrustServerDate: &no,
		CacheHeuristic:  0.25,
		ImmutableMinTTL: 3600,
	}
	o := e.Options()

	assert.True(t, o.Shared)
	assert.False(t, o.TrustServerDate)
	assert.Equal(t, 0.25, o.CacheHeuristic)
	assert.Equal(t, int64(3600), o.ImmutableMinTTL)
}
