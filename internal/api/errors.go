// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request by what the caller can do about it.
type Kind int

const (
	// KindValidation is a 400: the server rejected the parameters and
	// supplied a human-readable detail to surface.
	KindValidation Kind = iota
	// KindAuthExpired is a 401: the bearer token is missing or stale.
	KindAuthExpired
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is a 500.
	KindServer
	// KindNetwork means no response was received at all.
	KindNetwork
	// KindTransport is any other unexpected transport-level failure.
	KindTransport
)

// String returns the kind's name for logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthExpired:
		return "auth-expired"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "transport"
	}
}

// MessageID returns the i18n key for the user-facing notification.
// Translation happens at the presentation boundary, not here.
func (k Kind) MessageID() string {
	switch k {
	case KindValidation:
		return "error.validation"
	case KindAuthExpired:
		return "error.auth_expired"
	case KindForbidden:
		return "error.forbidden"
	case KindNotFound:
		return "error.not_found"
	case KindServer:
		return "error.server"
	case KindNetwork:
		return "error.network"
	default:
		return "error.request_failed"
	}
}

// Error is the classified failure the pipeline hands to callers after
// performing its boundary side effects (notification, forced logout).
// Callers may still inspect it for local recovery, e.g. rendering an
// empty list.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, 0 when no response arrived
	Detail string // server-supplied detail, set for validation errors
	URL    string
	// Silenced marks a failure whose user-visible notification was
	// deliberately suppressed (dashboard/statistics polling).
	Silenced bool

	err error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.Status)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.err }

// classify maps an HTTP status to the taxonomy. detail is only kept for
// validation errors, where the server's explanation is the message.
func classify(status int, detail string, cause error) *Error {
	e := &Error{Status: status, err: cause}
	switch status {
	case 0:
		e.Kind = KindNetwork
	case 400:
		e.Kind = KindValidation
		e.Detail = detail
	case 401:
		e.Kind = KindAuthExpired
	case 403:
		e.Kind = KindForbidden
	case 404:
		e.Kind = KindNotFound
	case 500:
		e.Kind = KindServer
	default:
		e.Kind = KindTransport
	}
	return e
}

// AsError extracts the classified *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsAuthExpired reports whether err is a classified 401.
func IsAuthExpired(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindAuthExpired
}

// IsNotFound reports whether err is a classified 404.
func IsNotFound(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindNotFound
}

// IsSilenced reports whether err's notification was suppressed.
func IsSilenced(err error) bool {
	e, ok := AsError(err)
	return ok && e.Silenced
}
