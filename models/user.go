package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity returned by the remote credential service.
type User struct {
	// ID is the remote identifier of the account.
	ID uuid.UUID `json:"id"`

	// Email is the address used to sign in.
	Email string `json:"email"`

	// Metadata holds the optional profile values attached at sign-up.
	Metadata UserMetadata `json:"user_metadata"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// UserMetadata is the free-form profile attached to an account. Only the
// display name is used by the client.
type UserMetadata struct {
	DisplayName string `json:"display_name,omitempty"`
}

// DisplayName returns the profile name, falling back to the email address.
func (u User) DisplayName() string {
	if u.Metadata.DisplayName != "" {
		return u.Metadata.DisplayName
	}
	return u.Email
}
