package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures to reach the backend at all. It is wrapped
	// together with the underlying adapter error.
	ErrTransport = errors.New("backend unreachable")

	// ErrSessionExpired is returned by a refresh the backend rejected. The
	// manager signs out locally before returning it.
	ErrSessionExpired = errors.New("session expired")

	errNoSessionIssued = errors.New("backend issued no session")
)

// FetchError is returned by catalog reads when the data service fails.
type FetchError struct {
	// Op names the failed read ("load writeups", "get writeup").
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthCode classifies credential failures reported by the backend.
type AuthCode string

const (
	AuthInvalidCredentials AuthCode = "INVALID_CREDENTIALS"
	AuthAlreadyRegistered  AuthCode = "ALREADY_REGISTERED"
	AuthUnknown            AuthCode = "UNKNOWN"
)

// AuthError is a sign-in or sign-up failure. Message is ready to be shown to
// the user and is empty when the failure did not come from the backend's
// answer; see [UserMessage].
type AuthError struct {
	Code    AuthCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Code)
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
