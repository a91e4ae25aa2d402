package models

// Credentials is the input of sign-in and sign-up submissions.
type Credentials struct {
	Email    string
	Password string
	// DisplayName is optional metadata used by sign-up only.
	DisplayName string
}
