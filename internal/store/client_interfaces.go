package store

import (
	"context"

	"github.com/MKhiriev/go-writeups/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository persists the single current session of the client.
type SessionRepository interface {
	// Save stores session, replacing any previous one.
	Save(ctx context.Context, session models.Session) error
	// Load returns the stored session or ErrLocalSessionNotFound.
	Load(ctx context.Context) (models.Session, error)
	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
