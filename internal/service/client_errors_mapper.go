// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/app"
	"github.com/MKhiriev/go-writeups/internal/validators"
)

// isTransportError reports whether err means the backend was never reached.
func isTransportError(err error) bool {
	return errors.Is(err, adapter.ErrRequestFailed)
}

func wrapTransport(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// mapFetchError translates a data service failure into a *FetchError.
func mapFetchError(op string, err error) error {
	if err == nil {
		return nil
	}

	if isTransportError(err) {
		err = wrapTransport(err)
	}

	return &FetchError{Op: op, Err: err}
}

// mapSignInError translates a sign-in failure of the adapter into a service
// error: ErrTransport (wrapped) or *AuthError.
func mapSignInError(err error) error {
	if err == nil {
		return nil
	}
	if isTransportError(err) {
		return wrapTransport(err)
	}

	var remoteErr *adapter.RemoteError
	if !errors.As(err, &remoteErr) {
		return &AuthError{Code: AuthUnknown, Err: err}
	}

	switch {
	case remoteErr.Code == adapter.CodeInvalidCredentials,
		strings.Contains(remoteErr.Message, app.BackendMsgInvalidLogin):
		return &AuthError{Code: AuthInvalidCredentials, Message: app.MsgInvalidEmailOrPassword, Err: err}
	default:
		return &AuthError{Code: AuthUnknown, Message: remoteErr.Message, Err: err}
	}
}

// mapSignUpError translates a sign-up failure of the adapter into a service
// error. The structured error code wins; the message fragment is a fallback
// for backends that send none.
func mapSignUpError(err error) error {
	if err == nil {
		return nil
	}
	if isTransportError(err) {
		return wrapTransport(err)
	}

	var remoteErr *adapter.RemoteError
	if !errors.As(err, &remoteErr) {
		return &AuthError{Code: AuthUnknown, Err: err}
	}

	switch {
	case remoteErr.Code == adapter.CodeUserAlreadyExists,
		remoteErr.Code == adapter.CodeEmailExists,
		strings.Contains(remoteErr.Message, app.BackendMsgAlreadyRegistered):
		return &AuthError{Code: AuthAlreadyRegistered, Message: app.MsgAlreadyRegistered, Err: err}
	default:
		return &AuthError{Code: AuthUnknown, Message: remoteErr.Message, Err: err}
	}
}

// isAuthRejection reports whether err is the backend refusing a token, as
// opposed to the backend being unreachable or failing internally.
func isAuthRejection(err error) bool {
	var remoteErr *adapter.RemoteError
	if !errors.As(err, &remoteErr) {
		return false
	}
	return remoteErr.Status >= 400 && remoteErr.Status < 500 && remoteErr.Status != 429
}

// UserMessage turns a SignIn/SignUp failure into the line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	if errors.Is(err, ErrTransport) {
		return app.MsgServiceUnavailable
	}

	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}

	return app.MsgUnexpectedError
}
