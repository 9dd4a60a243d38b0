// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package dateutil

import (
	"testing"
	"time"
)

func TestConvertToBeijingTime_FixedOffset(t *testing.T) {
	cases := []string{
		"2024-01-01T00:00:00Z",
		"2024-06-15T23:30:00Z",
		"1999-12-31T16:00:00Z",
	}
	for _, in := range cases {
		utc, err := time.Parse(time.RFC3339, in)
		if err != nil {
			t.Fatalf("bad test input %q: %v", in, err)
		}
		got := ConvertToBeijingTime(in)
		if diff := got.Sub(utc); diff != 8*time.Hour {
			t.Errorf("ConvertToBeijingTime(%q) shifted by %v, want 8h", in, diff)
		}
	}
}

func TestConvertToBeijingTime_Unparseable(t *testing.T) {
	if got := ConvertToBeijingTime("not a date"); !got.IsZero() {
		t.Errorf("expected zero time for garbage input, got %v", got)
	}
	if got := ConvertToBeijingTime(nil); !got.IsZero() {
		t.Errorf("expected zero time for nil input, got %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		format  string
		beijing bool
		want    string
	}{
		{
			name:   "zero padding on minutes and seconds",
			in:     "2024-03-07T09:05:03Z",
			format: "YYYY-MM-DD HH:mm:ss",
			want:   "2024-03-07 09:05:03",
		},
		{
			name:    "beijing shift crosses midnight",
			in:      "2024-03-07T20:30:00Z",
			format:  "YYYY-MM-DD HH:mm",
			beijing: true,
			want:    "2024-03-08 04:30",
		},
		{
			name:   "unix milliseconds input",
			in:     int64(1704067200000), // 2024-01-01T00:00:00Z
			format: "YYYY/MM/DD",
			want:   "2024/01/01",
		},
		{
			name:   "unparseable yields empty",
			in:     "bogus",
			format: "YYYY-MM-DD",
			want:   "",
		},
		{
			name:   "partial token set",
			in:     "2024-12-05T00:00:00Z",
			format: "DD.MM.YYYY",
			want:   "05.12.2024",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDate(tc.in, tc.format, tc.beijing); got != tc.want {
				t.Errorf("FormatDate(%v, %q, %v) = %q, want %q", tc.in, tc.format, tc.beijing, got, tc.want)
			}
		})
	}
}

func TestIsTimeOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"proper overlap", "2024-01-01T08:00:00Z", "2024-01-01T12:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T14:00:00Z", true},
		{"boundary touch is not overlap", "2024-01-01T08:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T12:00:00Z", false},
		{"disjoint", "2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z", false},
		{"containment", "2024-01-01T08:00:00Z", "2024-01-01T18:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z", true},
		{"unparseable endpoint", "garbage", "2024-01-01T18:00:00Z", "2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsTimeOverlap(tc.s1, tc.e1, tc.s2, tc.e2)
			if got != tc.want {
				t.Errorf("IsTimeOverlap = %v, want %v", got, tc.want)
			}
			// Swapping the interval pair must never change the answer.
			if sym := IsTimeOverlap(tc.s2, tc.e2, tc.s1, tc.e1); sym != got {
				t.Errorf("IsTimeOverlap not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestIsReservationExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)

	if !IsReservationExpired(past) {
		t.Error("reservation ending an hour ago should be expired")
	}
	if IsReservationExpired(future) {
		t.Error("reservation ending in an hour should not be expired")
	}
	if IsReservationExpired("???") {
		t.Error("unparseable end must not be treated as expired")
	}
}

func TestGetDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"two days apart", "2024-01-01", "2024-01-03", 2},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"time of day is ignored", "2024-01-01T23:59:00Z", "2024-01-02T00:01:00Z", 1},
		{"unparseable", "x", "2024-01-03", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GetDaysBetween(tc.start, tc.end)
			if got != tc.want {
				t.Errorf("GetDaysBetween(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
			if swapped := GetDaysBetween(tc.end, tc.start); swapped != got {
				t.Errorf("GetDaysBetween not symmetric: %d vs %d", got, swapped)
			}
		})
	}
}

func TestGetDateRange(t *testing.T) {
	got := GetDateRange("2024-02-27", "2024-03-01")
	if len(got) != 4 {
		t.Fatalf("expected 4 days across the leap boundary, got %d", len(got))
	}
	if got[2].Day() != 29 {
		t.Errorf("expected Feb 29 in range, got %v", got[2])
	}
	if r := GetDateRange("2024-03-02", "2024-03-01"); len(r) != 0 {
		t.Errorf("inverted range should be empty, got %d entries", len(r))
	}
}

func TestIsDateInRange(t *testing.T) {
	if !IsDateInRange("2024-01-02", "2024-01-01", "2024-01-03") {
		t.Error("interior date should be in range")
	}
	if !IsDateInRange("2024-01-03", "2024-01-01", "2024-01-03") {
		t.Error("range boundaries are inclusive")
	}
	if IsDateInRange("2024-01-04", "2024-01-01", "2024-01-03") {
		t.Error("date after range should be out")
	}
}

func TestStartEndOfDay(t *testing.T) {
	in := time.Date(2024, 5, 6, 13, 14, 15, 16, time.UTC)
	s := StartOfDay(in)
	if s.Hour() != 0 || s.Minute() != 0 || s.Second() != 0 || s.Nanosecond() != 0 {
		t.Errorf("StartOfDay left time-of-day: %v", s)
	}
	e := EndOfDay(in)
	if e.Hour() != 23 || e.Minute() != 59 || e.Second() != 59 {
		t.Errorf("EndOfDay wrong: %v", e)
	}
	if s.Day() != in.Day() || e.Day() != in.Day() {
		t.Error("day boundary helpers must not change the calendar day")
	}
}
