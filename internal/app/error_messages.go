// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-writeups service layer and the terminal views.
//
// All Msg* constants are human-readable strings shown to the user or matched
// against backend messages. Keeping them in one place ensures consistent
// wording throughout the client.
package app

const (
	// MsgInvalidEmailOrPassword is shown when the backend rejects a sign-in.
	MsgInvalidEmailOrPassword = "Invalid email or password"

	// MsgAlreadyRegistered is shown when a sign-up targets an existing
	// account.
	MsgAlreadyRegistered = "This email is already registered"

	// MsgUnexpectedError is shown for failures the user cannot act upon.
	MsgUnexpectedError = "An unexpected error occurred"

	// MsgServiceUnavailable is shown when the backend cannot be reached.
	MsgServiceUnavailable = "Service unavailable. Check your connection and try again."

	// MsgConfirmationPending is shown after a sign-up that needs the email
	// address confirmed before the first sign-in.
	MsgConfirmationPending = "Account created. Check your inbox to confirm the email address."

	// MsgWriteupNotFound is shown when a slug matches no writeup.
	MsgWriteupNotFound = "Writeup not found"
)

// Backend message fragments used when no structured error code is present.
const (
	// BackendMsgInvalidLogin is the credential service message for a bad
	// email/password pair.
	BackendMsgInvalidLogin = "Invalid login credentials"

	// BackendMsgAlreadyRegistered is the fragment of the credential service
	// message for an existing account.
	BackendMsgAlreadyRegistered = "already registered"
)
