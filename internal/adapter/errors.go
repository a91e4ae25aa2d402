package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by [*RemoteError] according to its HTTP status.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

var (
	// ErrRequestFailed wraps errors raised before a response was received
	// (connection refused, DNS failure, timeout...).
	ErrRequestFailed = errors.New("request to backend failed")

	// ErrDecodeResponse is returned when a 2xx body cannot be decoded.
	ErrDecodeResponse = errors.New("failed to decode backend response")

	// ErrMultipleRows is returned by single-row lookups that match more than
	// one record.
	ErrMultipleRows = errors.New("query returned more than one row")

	// ErrEmptySlug is returned when a slug lookup is attempted with "".
	ErrEmptySlug = errors.New("empty slug")
)

// Structured error codes reported by the credential service.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidGrant       = "invalid_grant"
	CodeUserAlreadyExists  = "user_already_exists"
	CodeEmailExists        = "email_exists"
	CodeWeakPassword       = "weak_password"
	CodeEmailNotConfirmed  = "email_not_confirmed"
	CodeSessionNotFound    = "session_not_found"
	CodeRefreshNotFound    = "refresh_token_not_found"
)

// RemoteError is a non-2xx answer of the backend.
type RemoteError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the machine-readable error code, empty when the backend sent
	// none.
	Code string
	// Message is the human-readable message of the backend.
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Is reports whether target is the sentinel of e.Status.
func (e *RemoteError) Is(target error) bool {
	sentinel := statusSentinel(e.Status)
	return sentinel != nil && sentinel == target
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}
