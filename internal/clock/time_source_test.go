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

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventTimeUpdate(t *testing.T) {
	ts := NewEventTimeSource()
	mark := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	ts.Update(mark)

	assert.Equal(t, mark, ts.Now())
}

func TestEventTimeSince(t *testing.T) {
	ts := NewEventTimeSource()
	start := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
	ts.Update(start.Add(5 * time.Second))

	assert.Equal(t, 5*time.Second, ts.Since(start))
}

func TestSystemTimeSourceIsUTC(t *testing.T) {
	ts := NewSystemTimeSource()
	assert.Equal(t, time.UTC, ts.Now().Location())
}
