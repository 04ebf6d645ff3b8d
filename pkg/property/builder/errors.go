package builder

import (
	"fmt"

	"github.com/zeusync/property/pkg/property"
)

var (
	ErrAlreadyBuilt         = fmt.Errorf("%w: builder already built", property.ErrConfiguration)
	ErrMissingName          = fmt.Errorf("%w: property name is empty", property.ErrConfiguration)
	ErrMissingValueProperty = fmt.Errorf("%w: container has no value property", property.ErrConfiguration)
	ErrMissingKeyProperty   = fmt.Errorf("%w: map has no key property", property.ErrConfiguration)
	ErrDuplicateProperty    = fmt.Errorf("%w: duplicate property name", property.ErrConfiguration)
	ErrMissingParent        = fmt.Errorf("%w: builder has no parent builders", property.ErrConfiguration)
)
