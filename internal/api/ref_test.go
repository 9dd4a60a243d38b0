// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import "testing"

func TestByNumber(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"RN-123", true},
		{"RN-2024-00017", true},
		{"ABC-123", true}, // uppercase alphanumeric with dashes
		{"A1B2C3", true},
		{"rn-123", false}, // lowercase prefix fails both shapes
		{"abc", false},
		{"", false},
		{"RN-abc", true}, // the RN- prefix alone is accepted
		{"has space", false},
		{"{\"reservation_number\":\"RN-1\"}", false}, // serialized JSON is not a number
	}
	for _, tc := range tests {
		ref := ByNumber(tc.in)
		if got := ref.Kind() == RefNumber; got != tc.valid {
			t.Errorf("ByNumber(%q) valid=%v, want %v", tc.in, got, tc.valid)
		}
		if tc.valid && ref.Value() != tc.in {
			t.Errorf("ByNumber(%q) kept %q", tc.in, ref.Value())
		}
	}
}

func TestNumberFromValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string // "" means absent
	}{
		{"plain string", "RN-123", "RN-123"},
		{"object with field", map[string]any{"reservation_number": "RN-123"}, "RN-123"},
		{"object without field is absent", map[string]any{"foo": 1}, ""},
		{"object with wrong-typed field", map[string]any{"reservation_number": 7}, ""},
		{"string map", map[string]string{"reservation_number": "RN-9"}, "RN-9"},
		{"unrelated type", 42, ""},
		{"nil", nil, ""},
		{"malformed number inside object", map[string]any{"reservation_number": "not valid!"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref := NumberFromValue(tc.in)
			if tc.want == "" {
				if !ref.IsZero() {
					t.Errorf("expected absent ref, got %v", ref)
				}
				return
			}
			if ref.Kind() != RefNumber || ref.Value() != tc.want {
				t.Errorf("got %v, want number:%s", ref, tc.want)
			}
		})
	}
}

func TestByCode(t *testing.T) {
	if ref := ByCode(""); !ref.IsZero() {
		t.Error("empty code must yield the zero Ref")
	}
	ref := ByCode("xK29dQ")
	if ref.Kind() != RefCode || ref.Value() != "xK29dQ" {
		t.Errorf("unexpected ref %v", ref)
	}
}
