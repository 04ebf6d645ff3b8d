package property

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"
)

// validateElement checks one element against the validator of the prototype
// property describing it.
func validateElement[E any](prototype Readable[E], label string, element E) error {
	if prototype == nil {
		return nil
	}
	if err := prototype.Metadata().Validator().Validate(element); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return nil
}

func componentType[E any](prototype Readable[E]) reflect.Type {
	if prototype == nil {
		return reflect.TypeFor[E]()
	}
	return prototype.ValueType()
}

// validateContainer combines the container's own validation with the
// per-element errors.
func validateContainer(name string, own error, elements error) error {
	if elements != nil {
		elements = fmt.Errorf("property %s: %w", name, elements)
	}
	return multierr.Append(own, elements)
}
