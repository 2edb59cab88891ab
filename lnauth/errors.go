package lnauth

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is reported by SessionRepo implementations when no
// session exists for a challenge.
var ErrSessionNotFound = errors.New("session not found")

// ErrorCode is the closed taxonomy of protocol failures. Every error leaving
// the engine carries exactly one of these codes; internal detail travels in
// the Log field and is never shown to end users.
type ErrorCode string

const (
	// CodeForbidden: an auth endpoint was called while already logged in.
	CodeForbidden ErrorCode = "Forbidden"

	// CodeNotFound: a request was made to a non existent lnauth path.
	CodeNotFound ErrorCode = "NotFound"

	// CodeUnauthorized: the signature, pubkey or session was invalid or
	// the login attempt was not successful.
	CodeUnauthorized ErrorCode = "Unauthorized"

	// CodeGone: the session expired or was deleted; the client must
	// restart with a fresh challenge.
	CodeGone ErrorCode = "Gone"

	// CodeBadRequest: a required query or body argument was missing or
	// malformed. Reported before any store access.
	CodeBadRequest ErrorCode = "BadRequest"

	// CodeDefault: generic catch-all for store, generator and other
	// internal failures.
	CodeDefault ErrorCode = "Default"
)

var errorMessages = map[ErrorCode]string{
	CodeForbidden:    "You are already logged in.",
	CodeNotFound:     "Path not found.",
	CodeUnauthorized: "You could not be signed in.",
	CodeGone:         "Session not found.",
	CodeBadRequest:   "Missing required query or body arguments.",
	CodeDefault:      "Unable to sign in.",
}

var errorStatuses = map[ErrorCode]int{
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeGone:         http.StatusGone,
	CodeBadRequest:   http.StatusBadRequest,
	CodeDefault:      http.StatusInternalServerError,
}

// Message returns the user-safe message for the code.
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return errorMessages[CodeDefault]
}

// HTTPStatus returns the HTTP status the code maps to.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := errorStatuses[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is the tagged failure result of a protocol operation: a taxonomy
// code, an optional status override and an internal diagnostic.
type Error struct {
	Code   ErrorCode
	Status int    // optional override; zero means use Code.HTTPStatus()
	Log    string // internal diagnostic, never shown to end users
	cause  error
}

func (e *Error) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Log)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a taxonomy error with an internal diagnostic.
func NewError(code ErrorCode, log string) *Error {
	return &Error{Code: code, Log: log}
}

// WrapError creates a taxonomy error wrapping an underlying cause.
func WrapError(code ErrorCode, cause error, context string) *Error {
	log := context
	if cause != nil {
		log = fmt.Sprintf("%s: %s", context, cause.Error())
	}
	return &Error{Code: code, Log: log, cause: cause}
}

// AsError coerces any error into a taxonomy error, defaulting unrecognized
// failures to CodeDefault so internal detail never leaks to callers.
func AsError(err error) *Error {
	var protoErr *Error
	if errors.As(err, &protoErr) {
		return protoErr
	}
	return WrapError(CodeDefault, err, "unexpected failure")
}
