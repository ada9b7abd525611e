// Package apperr is the error taxonomy shared by the movie and comment services
// and its mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the class of a service failure; the zero value means success.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindServer:
		return "server"
	}
	return "ok"
}

// Reason tells NotFound causes apart. Callers over HTTP only ever see 404.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMalformedID
	ReasonNoSuchRecord
	ReasonMovieAbsent
)

// ServerMessage is the only text a caller sees for persistence failures.
const ServerMessage = "Server Error"

// Error is a classified service failure.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	// Fields names the offending input fields of a validation failure.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports invalid input, naming the offending fields.
func Validation(msg string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// NotFound reports a malformed or unresolvable identifier.
func NotFound(reason Reason, msg string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Message: msg}
}

// Forbidden reports a failed ownership check.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Server wraps a persistence failure. The wrapped error is kept for logs only.
func Server(err error) *Error {
	return &Error{Kind: KindServer, Message: ServerMessage, Err: err}
}

// KindOf classifies err. Errors outside the taxonomy count as server errors.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// ReasonOf returns the NotFound reason carried by err, or ReasonNone.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ReasonNone
}

// Is reports whether err is of kind k.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// Label is the metrics outcome for err ("ok" when nil).
func Label(err error) string { return KindOf(err).String() }

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case 0:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the caller-facing text for err without internal detail.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindServer {
		return e.Message
	}
	return ServerMessage
}
