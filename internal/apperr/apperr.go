// Package apperr classifies client and backend failures into a small taxonomy.
//
// FromStatus is the only place HTTP status codes are interpreted. Everything
// above the backend client switches on Kind.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the class of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is a client-side form error; it never reaches the network.
	KindValidation
	// KindUnauthenticated is the client-side "not logged in" pre-check.
	KindUnauthenticated
	// KindUnauthorized is a 401 from the backend (credentials rejected).
	KindUnauthorized
	KindBadRequest
	KindNotFound
	KindConflict
	KindRateLimited
	KindServer
	// KindNetwork covers connectivity failures and timeouts.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad request"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate limited"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Status is the HTTP status code, 0 for client-side and network errors.
	Status int
	// Message is the backend's message, if it sent one.
	Message string
	// Fields holds per-field messages (backend 400 bodies, client validation).
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// ErrUnauthenticated is returned by client-side guards.
var ErrUnauthenticated = &Error{Kind: KindUnauthenticated}

// KindOf returns the Kind of err, KindUnknown if it is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// MessageOf returns the backend message carried by err, or "".
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// FieldsOf returns the per-field messages carried by err.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// Validation builds a client-side validation error.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// Network wraps a transport failure.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// errorBody is the error envelope the backend sends. message may be a string
// or a list of strings.
type errorBody struct {
	Message json.RawMessage   `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// FromStatus classifies a non-2xx response.
func FromStatus(status int, body []byte) *Error {
	e := &Error{Status: status}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Message = decodeMessage(eb.Message)
		e.Fields = eb.Errors
	}

	switch {
	case status == http.StatusBadRequest:
		e.Kind = KindBadRequest
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusConflict:
		e.Kind = KindConflict
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindUnknown
	}
	return e
}

func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
