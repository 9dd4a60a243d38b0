// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package dateutil contains the pure date helpers used throughout the
// console. The backend stores instants in UTC; the reservation desk runs
// on Beijing wall-clock time (a fixed UTC+8, never the host timezone),
// so conversion is a constant offset rather than a zone lookup.
//
// Every function is total: unparseable input yields a sentinel (zero
// time, empty string, false or 0) instead of an error.
package dateutil // import "github.com/resvlab/resv/internal/dateutil"

import (
	"strconv"
	"strings"
	"time"
)

// beijingOffset is the fixed +8h shift applied to UTC instants.
const beijingOffset = 8 * time.Hour

// beijingZone renders shifted instants without a misleading zone name.
var beijingZone = time.FixedZone("UTC+8", 8*60*60)

// parseLayouts are the timestamp shapes the backend emits, most
// specific first.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseAny interprets a date supplied as time.Time, a string in one of
// the backend's formats, or a unix-milliseconds integer. The boolean
// result is false when the value cannot be read as a date.
func ParseAny(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return *d, true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range parseLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		// Bare numbers are unix milliseconds, matching Date.getTime().
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
		return time.Time{}, false
	case int64:
		return time.UnixMilli(d).UTC(), true
	case int:
		return time.UnixMilli(int64(d)).UTC(), true
	case float64:
		return time.UnixMilli(int64(d)).UTC(), true
	default:
		return time.Time{}, false
	}
}

// ConvertToBeijingTime shifts a UTC instant by exactly +8h. The host
// timezone is never consulted. Unparseable input returns the zero time.
func ConvertToBeijingTime(v any) time.Time {
	t, ok := ParseAny(v)
	if !ok {
		return time.Time{}
	}
	return t.Add(beijingOffset).In(beijingZone)
}

// FormatDate renders a date by substituting the YYYY/MM/DD/HH/mm/ss
// tokens in format with zero-padded components. When toBeijingTime is
// set the instant is shifted to UTC+8 first. Unparseable input returns
// the empty string.
func FormatDate(v any, format string, toBeijingTime bool) string {
	t, ok := ParseAny(v)
	if !ok {
		return ""
	}
	if toBeijingTime {
		t = t.Add(beijingOffset).In(beijingZone)
	}
	pad2 := func(n int) string {
		if n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	}
	r := strings.NewReplacer(
		"YYYY", strconv.Itoa(t.Year()),
		"MM", pad2(int(t.Month())),
		"DD", pad2(t.Day()),
		"HH", pad2(t.Hour()),
		"mm", pad2(t.Minute()),
		"ss", pad2(t.Second()),
	)
	return r.Replace(format)
}

// IsTimeOverlap reports whether two half-open intervals intersect:
// max(s1,s2) < min(e1,e2). Intervals that only share a boundary do not
// overlap. Any unparseable endpoint yields false.
func IsTimeOverlap(start1, end1, start2, end2 any) bool {
	s1, ok1 := ParseAny(start1)
	e1, ok2 := ParseAny(end1)
	s2, ok3 := ParseAny(start2)
	e2, ok4 := ParseAny(end2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	latestStart := s1
	if s2.After(s1) {
		latestStart = s2
	}
	earliestEnd := e1
	if e2.Before(e1) {
		earliestEnd = e2
	}
	return latestStart.Before(earliestEnd)
}

// IsReservationExpired reports whether the current instant is strictly
// after the reservation's end. Unparseable input is never expired.
func IsReservationExpired(end any) bool {
	t, ok := ParseAny(end)
	if !ok {
		return false
	}
	return time.Now().After(t)
}

// GetDaysBetween returns the whole-calendar-day distance between two
// dates: both endpoints are truncated to midnight first and the
// absolute difference is rounded up. Symmetric under argument swap;
// unparseable input yields 0.
func GetDaysBetween(start, end any) int {
	s, ok1 := ParseAny(start)
	e, ok2 := ParseAny(end)
	if !ok1 || !ok2 {
		return 0
	}
	s = StartOfDay(s)
	e = StartOfDay(e)
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	const day = 24 * time.Hour
	days := diff / day
	if diff%day != 0 {
		days++
	}
	return int(days)
}

// GetDateRange lists every calendar day from start through end,
// inclusive, at midnight. An unparseable or inverted range is empty.
func GetDateRange(start, end any) []time.Time {
	s, ok1 := ParseAny(start)
	e, ok2 := ParseAny(end)
	if !ok1 || !ok2 {
		return nil
	}
	s = StartOfDay(s)
	e = StartOfDay(e)
	var out []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// IsDateInRange reports whether date falls within [start, end],
// boundaries included. Unparseable input yields false.
func IsDateInRange(date, start, end any) bool {
	d, ok1 := ParseAny(date)
	s, ok2 := ParseAny(start)
	e, ok3 := ParseAny(end)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	return !d.Before(s) && !d.After(e)
}

// StartOfDay truncates a time to 00:00:00 in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay moves a time to 23:59:59.999 in its own location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
