package factory

import (
	"reflect"
)

// Lookup is the keyed read side of a registry.
type Lookup interface {
	ForPropertyType(propertyType reflect.Type) (Factory, bool)
	ForValueType(valueType reflect.Type) (Factory, bool)
}

// Outcome tells which key produced a resolution.
type Outcome string

const (
	OutcomePropertyType Outcome = "property_type"
	OutcomeValueType    Outcome = "value_type"
	OutcomeMiss         Outcome = "miss"
)

// Resolve finds the factory for the given property type and value type, either
// of which may be nil.
//
// The property type lookup wins. The value type is consulted only when the
// property type is missing or maps to a parametric factory, and its factory is
// accepted only if its implementation satisfies the requested property type.
func Resolve(l Lookup, propertyType, valueType reflect.Type) (Factory, bool) {
	f, outcome := resolve(l, propertyType, valueType)
	return f, outcome != OutcomeMiss
}

func resolve(l Lookup, propertyType, valueType reflect.Type) (Factory, Outcome) {
	var byType Factory
	if propertyType != nil {
		byType, _ = l.ForPropertyType(propertyType)
	}

	if valueType != nil && (byType == nil || byType.ValueType() == nil) {
		if byValue, ok := l.ForValueType(valueType); ok && satisfies(byValue, propertyType) {
			return byValue, OutcomeValueType
		}
	}

	if byType != nil {
		return byType, OutcomePropertyType
	}
	return nil, OutcomeMiss
}

// satisfies reports whether properties created by f can be used as
// propertyType. A nil propertyType is satisfied by every factory.
func satisfies(f Factory, propertyType reflect.Type) bool {
	return propertyType == nil || f.ImplementationType().AssignableTo(propertyType)
}
