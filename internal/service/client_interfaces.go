package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-writeups/models"
)

// CatalogStore serves the writeup catalog. Reads go through a request cache,
// so repeated calls within the cache TTL do not reach the backend.
type CatalogStore interface {
	// Load returns every writeup, newest first. A failure of the data service
	// is returned as *FetchError.
	Load(ctx context.Context) ([]models.Writeup, error)

	// Get returns the writeup with the given slug, or (nil, nil) if there is
	// none. An empty slug is absent without a backend call. A failure of the
	// data service is returned as *FetchError.
	Get(ctx context.Context, slug string) (*models.Writeup, error)

	// Filter narrows list down to the writeups matching sel. It is pure and
	// never touches the backend.
	Filter(list []models.Writeup, sel models.FilterSelection) []models.Writeup

	// Refresh drops every cached response so the next read refetches.
	Refresh()
}

// SessionManager owns the authentication state of the client and notifies
// subscribers on every transition.
//
// Callers must not submit overlapping SignIn/SignUp calls; the manager does
// not serialise them.
type SessionManager interface {
	// Init restores a persisted session, refreshing and verifying it with the
	// backend, and leaves the manager SignedIn or SignedOut. It never fails:
	// problems are logged and end in SignedOut.
	Init(ctx context.Context)

	// Dispose stops background work and drops every subscriber.
	Dispose()

	// SignIn validates the credentials locally and signs in. Errors are a
	// *validators.ValidationError, an *AuthError or a wrapped ErrTransport.
	SignIn(ctx context.Context, email, password string) error

	// SignUp validates the credentials locally and registers a new account.
	// When the backend requires email confirmation it returns nil and the
	// manager stays SignedOut.
	SignUp(ctx context.Context, email, password, displayName string) error

	// SignOut drops the session locally and revokes it remotely. It always
	// returns nil and is a no-op remotely when there is no session.
	SignOut(ctx context.Context) error

	// RefreshIfExpiring renews the session when it expires within leeway.
	RefreshIfExpiring(ctx context.Context, leeway time.Duration) error

	// Snapshot returns the current state.
	Snapshot() SessionState

	// Subscribe registers fn for state changes and returns a function that
	// removes it.
	Subscribe(fn func(SessionState)) (unsubscribe func())
}

// SessionRefresher is the part of the manager used by the refresh job.
type SessionRefresher interface {
	RefreshIfExpiring(ctx context.Context, leeway time.Duration) error
}
