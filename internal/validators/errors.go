package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Code identifies which credential rule failed.
type Code string

const (
	CodeInvalidEmail Code = "INVALID_EMAIL"
	CodeWeakPassword Code = "WEAK_PASSWORD"
)

// ValidationError is returned when credentials fail a local check. Message is
// ready to be shown to the user.
type ValidationError struct {
	Code    Code
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any *ValidationError with the same Code.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidEmail = &ValidationError{Code: CodeInvalidEmail, Message: "Invalid email format"}
	ErrWeakPassword = &ValidationError{Code: CodeWeakPassword, Message: "Password must be at least 6 characters"}
)
