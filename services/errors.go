package services

import (
	"errors"
	"fmt"

	"laundrypro-backend/store"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicatePhone = errors.New("phone number already registered")
	ErrReference      = errors.New("referenced customer or time slot does not exist")
	ErrNotFound       = errors.New("not found")
	ErrStorage        = errors.New("storage failure")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// classify maps persistence errors onto the service taxonomy. Anything the
// store does not recognize is a storage failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrDuplicateKey):
		return ErrDuplicatePhone
	case errors.Is(err, store.ErrForeignKey):
		return ErrReference
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
