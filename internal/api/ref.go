// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import "regexp"

// A reservation is addressed by one of two keys: the opaque reservation
// code used in URLs, or the human-oriented reservation number
// ("RN-..."). Earlier revisions of the web client accepted "whatever
// the view happened to hold" here and once serialized an unrelated
// object into the query string; Ref replaces that with a tagged union
// built by a validating parser at the call boundary, so nothing deeper
// in the call chain inspects shapes.

// RefKind says which identifier a Ref carries.
type RefKind int

const (
	// RefNone is the zero Ref: no identifier present.
	RefNone RefKind = iota
	// RefCode addresses a reservation by its opaque code.
	RefCode
	// RefNumber addresses a reservation by its "RN-..." number.
	RefNumber
)

// Ref is a validated reservation identifier.
type Ref struct {
	kind  RefKind
	value string
}

var (
	numberPrefixRe = regexp.MustCompile(`^RN-`)
	numberShapeRe  = regexp.MustCompile(`^[A-Z0-9-]+$`)
)

// ByCode wraps an opaque reservation code. Empty codes yield the zero
// Ref.
func ByCode(code string) Ref {
	if code == "" {
		return Ref{}
	}
	return Ref{kind: RefCode, value: code}
}

// ByNumber validates and wraps a reservation number. A value that is
// neither "RN-" prefixed nor uppercase-alphanumeric-with-dashes yields
// the zero Ref: a malformed filter degrades to "absent" rather than
// failing the whole lookup.
func ByNumber(number string) Ref {
	if !IsReservationNumber(number) {
		return Ref{}
	}
	return Ref{kind: RefNumber, value: number}
}

// IsReservationNumber reports whether s has a valid reservation-number
// shape.
func IsReservationNumber(s string) bool {
	if s == "" {
		return false
	}
	return numberPrefixRe.MatchString(s) || numberShapeRe.MatchString(s)
}

// NumberFromValue normalizes the polymorphic "reservation number"
// parameter the backend tolerates: a plain string, or a map carrying a
// "reservation_number" field (a decoded JSON object from a deep link).
// Anything else is treated as absent.
func NumberFromValue(v any) Ref {
	switch n := v.(type) {
	case string:
		return ByNumber(n)
	case Ref:
		if n.kind == RefNumber {
			return n
		}
		return Ref{}
	case map[string]any:
		if inner, ok := n["reservation_number"].(string); ok {
			return ByNumber(inner)
		}
		return Ref{}
	case map[string]string:
		if inner, ok := n["reservation_number"]; ok {
			return ByNumber(inner)
		}
		return Ref{}
	default:
		return Ref{}
	}
}

// Kind returns which identifier the Ref carries.
func (r Ref) Kind() RefKind { return r.kind }

// Value returns the raw identifier, or "" for the zero Ref.
func (r Ref) Value() string { return r.value }

// IsZero reports whether the Ref carries no identifier.
func (r Ref) IsZero() bool { return r.kind == RefNone }

func (r Ref) String() string {
	switch r.kind {
	case RefCode:
		return "code:" + r.value
	case RefNumber:
		return "number:" + r.value
	default:
		return "none"
	}
}
