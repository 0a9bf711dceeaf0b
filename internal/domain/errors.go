package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for caller supplied values outside the
	// recognized enumerations (propulsion, size, transport kind).
	ErrInvalidInput = errors.New("invalid input")

	// ErrContractViolation marks a broken integration assumption: an unknown
	// provider vehicle type, a transit trip without any classifiable step or
	// reading the emission factor of an unresolved transit transport.
	// It is fatal for the current operation and must not be retried.
	ErrContractViolation = errors.New("integration contract violation")
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func contractViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}

// IsContractViolation reports whether err is (or wraps) ErrContractViolation.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}
