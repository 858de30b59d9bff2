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
	"net/http"
	"time"
)

// clockSkewTolerance is how far a parsed Date header may diverge from the
// locally observed response time before the engine treats the server
// clock as skewed and prefers the earlier of the two timestamps for age
// math. Matches the historical Firefox handling of wildly wrong origin
// clocks.
const clockSkewTolerance = 8 * time.Hour

// httpDateLayouts are tried in order when parsing a Date/Expires/
// Last-Modified/If-Modified-Since header. http.ParseTime already covers
// the three RFC 7231 formats (IMF-fixdate, RFC 850, asctime); RFC3339
// timestamps and "UTC"-zoned RFC1123 variants seen from misconfigured
// origins are tolerated on top.
var httpDateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
}

// parseHTTPDate parses an HTTP-date or RFC3339 header value. Returns
// ok=false for empty or unparseable input; callers fall back to their
// documented defaults instead of erroring.
func parseHTTPDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := http.ParseTime(value); err == nil {
		return t.UTC(), true
	}
	for _, layout := range httpDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// serverDate resolves the Date instant used as the base for all age and
// heuristic-freshness math. Falls back to responseTime when Date is
// absent, malformed, or trust is disabled, and prefers the earlier of
// Date/responseTime when they diverge by more than clockSkewTolerance.
func serverDate(resHeaders Header, responseTime time.Time, trustServerDate bool) time.Time {
	if !trustServerDate {
		return responseTime
	}
	parsed, ok := parseHTTPDate(resHeaders.Get("date"))
	if !ok {
		return responseTime
	}
	if d := responseTime.Sub(parsed); d > clockSkewTolerance || d < -clockSkewTolerance {
		if parsed.Before(responseTime) {
			return parsed
		}
		return responseTime
	}
	return parsed
}

// ageValue parses the Age response header as a non-negative integer
// number of seconds. Non-numeric or negative values are treated as zero.
func ageValue(resHeaders Header) time.Duration {
	raw := resHeaders.Get("age")
	if raw == "" {
		return 0
	}
	n, ok := parseSeconds(raw)
	if !ok {
		return 0
	}
	return time.Duration(n) * time.Second
}

// currentAge implements the RFC 7234 §4.2.3 age calculation:
//
//	apparent_age   = max(0, response_time - server_date)
//	response_delay = response_time - request_time (0 if request_time unknown)
//	corrected_age  = age_value + response_delay
//	initial_age    = max(apparent_age, corrected_age)
//	resident_time  = now - response_time
//	return initial_age + resident_time
func currentAge(resHeaders Header, srvDate, responseTime, requestTime, now time.Time) time.Duration {
	apparentAge := responseTime.Sub(srvDate)
	if apparentAge < 0 {
		apparentAge = 0
	}

	var responseDelay time.Duration
	if !requestTime.IsZero() {
		responseDelay = responseTime.Sub(requestTime)
		if responseDelay < 0 {
			responseDelay = 0
		}
	}

	correctedAge := ageValue(resHeaders) + responseDelay
	initialAge := apparentAge
	if correctedAge > initialAge {
		initialAge = correctedAge
	}

	residentTime := now.Sub(responseTime)
	if residentTime < 0 {
		residentTime = 0
	}

	return initialAge + residentTime
}
