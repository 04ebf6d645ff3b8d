package property

import (
	"errors"

	"github.com/zeusync/property/pkg/property/internal/errs"
)

var (
	// ErrConfiguration is the root of every configuration error: duplicate
	// registrations, incomplete builders and similar programming mistakes.
	ErrConfiguration = errs.Configuration

	// ErrNotFound is the root of lookup failures.
	ErrNotFound = errors.New("property: not found")

	ErrReadOnly     = errors.New("property: read-only")
	ErrTypeMismatch = errors.New("property: type mismatch")
	ErrOutOfRange   = errors.New("property: index out of range")
)

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotFound reports whether err is a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
