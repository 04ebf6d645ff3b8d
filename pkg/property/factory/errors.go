package factory

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zeusync/property/pkg/property"
)

var (
	ErrDuplicateFactory = fmt.Errorf("%w: duplicate factory", property.ErrConfiguration)
	ErrFrozen           = fmt.Errorf("%w: registry is frozen", property.ErrConfiguration)
	ErrInvalidFactory   = fmt.Errorf("%w: invalid factory", property.ErrConfiguration)

	// ErrFactoryNotFound is wrapped by every NotFoundError.
	ErrFactoryNotFound = fmt.Errorf("%w: no property factory", property.ErrNotFound)
)

// NotFoundError is returned when no factory matches a required lookup.
type NotFoundError struct {
	PropertyType reflect.Type
	ValueType    reflect.Type
}

// Type returns the requested type: the property type when one was given,
// the value type otherwise.
func (e *NotFoundError) Type() reflect.Type {
	if e.PropertyType != nil {
		return e.PropertyType
	}
	return e.ValueType
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s for %v", ErrFactoryNotFound, e.Type())
}

func (e *NotFoundError) Unwrap() error {
	return ErrFactoryNotFound
}

// IsNotFound reports whether err is a factory lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFactoryNotFound)
}
