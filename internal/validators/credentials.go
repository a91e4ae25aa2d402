// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-writeups/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// MinPasswordLen is the shortest accepted password, counted in characters.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]+@([A-Za-z0-9]([A-Za-z0-9\-]*[A-Za-z0-9])?\.)+[A-Za-z]{2,}$`)

// CredentialsValidator implements the Validator interface for
// [models.Credentials].
type CredentialsValidator struct {
}

// NewCredentialsValidator constructs a new CredentialsValidator and returns it
// as the Validator interface.
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate checks obj, which must be models.Credentials or a pointer to it.
// Without fields, the email is checked first and then the password; the first
// failure is returned.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateCredentials(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(creds.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(creds.Password) < MinPasswordLen {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateCredentials checks an email and password pair with the default
// field order.
func ValidateCredentials(email, password string) error {
	return NewCredentialsValidator().Validate(context.Background(), models.Credentials{Email: email, Password: password})
}

// IsEmail reports whether s looks like a mail address.
func IsEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	local, _, ok := strings.Cut(s, "@")
	if !ok || strings.HasSuffix(local, ".") {
		return false
	}
	return emailPattern.MatchString(s)
}
