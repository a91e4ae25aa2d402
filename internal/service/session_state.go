package service

import (
	"time"

	"github.com/MKhiriev/go-writeups/models"
)

// SessionStatus is the authentication state of the client.
type SessionStatus int

const (
	// StatusUnknown is the state before Init has finished.
	StatusUnknown SessionStatus = iota
	StatusSignedOut
	StatusSignedIn
)

func (s SessionStatus) String() string {
	switch s {
	case StatusSignedOut:
		return "signed out"
	case StatusSignedIn:
		return "signed in"
	default:
		return "unknown"
	}
}

// SessionState is the snapshot handed to subscribers. It never carries
// tokens.
type SessionState struct {
	Status SessionStatus
	// User is set only when Status is StatusSignedIn.
	User models.User
	// ExpiresAt is the access token expiry, zero when unknown or signed out.
	ExpiresAt time.Time
}

// SignedIn reports whether the state has an authenticated user.
func (s SessionState) SignedIn() bool {
	return s.Status == StatusSignedIn
}

func signedOutState() SessionState {
	return SessionState{Status: StatusSignedOut}
}

func signedInState(session models.Session) SessionState {
	return SessionState{Status: StatusSignedIn, User: session.User, ExpiresAt: session.ExpiresAt}
}
