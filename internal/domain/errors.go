package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("not found")
)

// ValidationError marks input the caller must fix.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
