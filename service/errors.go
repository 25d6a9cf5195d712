package service

import (
	"errors"
	"fmt"

	"github.com/abcretail/retail/store"
)

// ErrNotFound is returned when the addressed entity does not exist.
// It is the store's sentinel, re-exported so callers need not import
// the storage layer.
var ErrNotFound = store.ErrNotFound

// ValidationError reports a violated business rule with a human-readable
// reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// validationf builds a ValidationError from a format string.
func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
