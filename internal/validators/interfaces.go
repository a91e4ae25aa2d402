// Package validators holds the local checks run on credentials before a
// sign-in or sign-up request leaves the client. Failures are
// *ValidationError values whose Message is shown to the user as is.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are checked,
// in the given order, and the first failure is returned.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
