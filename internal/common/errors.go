package common

import (
	"errors"
	"fmt"
)

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("insufficient permissions")

	// token-specific errors
	ErrorInvalidToken = errors.New("invalid token")
	ErrorTokenExpired = errors.New("token expired")

	// registration-specific errors
	ErrorEmailTaken    = errors.New("email already registered")
	ErrorUsernameTaken = errors.New("username already in use")
)

// ValidationError reports a missing or empty required field in an
// incoming payload. The message names the field so the API layer can
// surface it verbatim in a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError in the canonical
// "<entity> does not have <field>" form.
func NewValidationError(entity, field string) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf("%s does not have %s", entity, field)}
}
