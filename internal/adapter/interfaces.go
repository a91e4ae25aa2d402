// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote backend that owns the writeup records and user accounts.
//
// The primary abstraction is [DataService], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPDataService]) speaking the PostgREST record API under /rest/v1 and
// the GoTrue credential API under /auth/v1.
//
// Non-2xx responses are returned as [*RemoteError]. A RemoteError matches the
// sentinel of its status code via [errors.Is] (e.g. [ErrUnauthorized] for 401),
// so callers can stay transport-agnostic. Failures to reach the backend at all
// wrap [ErrRequestFailed].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-writeups/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/data_service_mock.go -package=mock

// DataService defines communication with the remote data and credential
// service. Implementations are stateless with respect to the signed-in user:
// tokens are passed explicitly on every authenticated call.
type DataService interface {
	// ListWriteups returns every writeup visible to the caller, newest first
	// (ordered by created_at descending).
	ListWriteups(ctx context.Context) ([]models.Writeup, error)

	// GetWriteupBySlug returns the writeup whose slug equals slug, or
	// (nil, nil) if there is none. More than one match is an error.
	GetWriteupBySlug(ctx context.Context, slug string) (*models.Writeup, error)

	// SignIn exchanges an email and password for a session.
	SignIn(ctx context.Context, creds models.Credentials) (models.Session, error)

	// SignUp registers a new account with creds.DisplayName stored in the user
	// metadata. When the backend requires email confirmation the returned
	// Session has no tokens, only the User.
	SignUp(ctx context.Context, creds models.Credentials) (models.Session, error)

	// SignOut revokes the session identified by accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser returns the account the access token belongs to. It is used to
	// verify that a restored session is still valid.
	GetUser(ctx context.Context, accessToken string) (models.User, error)

	// RefreshSession exchanges a refresh token for a new session.
	RefreshSession(ctx context.Context, refreshToken string) (models.Session, error)
}
