package validation

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/zeusync/property/pkg/property/internal/errs"
)

var (
	// ErrInvalid is the root of every validation failure.
	ErrInvalid = errors.New("validation: invalid value")

	// ErrSealed is raised when rules are added to a builder after its
	// validator has been compiled. It is a configuration error.
	ErrSealed = fmt.Errorf("%w: validation builder already compiled", errs.Configuration)
)

// Validator checks a single value of type V. Validate returns nil when the
// value is accepted.
type Validator[V any] interface {
	ID() string
	Validate(value V) error
}

// Failure describes a value rejected by one rule.
type Failure struct {
	Rule    string
	Value   any
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", f.Rule, f.Message, f.Value)
}

func (f *Failure) Unwrap() error {
	return ErrInvalid
}

// Fail creates a Failure for rule.
func Fail(rule string, value any, format string, args ...any) error {
	return &Failure{Rule: rule, Value: value, Message: fmt.Sprintf(format, args...)}
}

// Failures flattens err into the individual rule failures it carries.
func Failures(err error) []*Failure {
	var out []*Failure
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if f, ok := err.(*Failure); ok {
			out = append(out, f)
			return
		}
		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(e.Unwrap())
		}
	}
	walk(err)
	return out
}

type funcValidator[V any] struct {
	id string
	fn func(V) error
}

// Func adapts fn into a Validator identified by id.
func Func[V any](id string, fn func(value V) error) Validator[V] {
	return funcValidator[V]{id: id, fn: fn}
}

func (v funcValidator[V]) ID() string { return v.id }

func (v funcValidator[V]) Validate(value V) error { return v.fn(value) }

// Predicate accepts the values for which ok returns true.
func Predicate[V any](id, message string, ok func(V) bool) Validator[V] {
	return Func(id, func(value V) error {
		if ok(value) {
			return nil
		}
		return Fail(id, value, "%s", message)
	})
}

type noneValidator[V any] struct{}

// None returns the validator that accepts every value.
func None[V any]() Validator[V] {
	return noneValidator[V]{}
}

func (noneValidator[V]) ID() string { return "none" }

func (noneValidator[V]) Validate(V) error { return nil }

// IsNone reports whether v is nil or the accept-all validator.
func IsNone[V any](v Validator[V]) bool {
	if v == nil {
		return true
	}
	_, ok := v.(noneValidator[V])
	return ok
}

// Composite is the conjunction of its validators: a value is valid only if
// every validator accepts it. All validators run in order and every failure is
// reported.
type Composite[V any] struct {
	validators []Validator[V]
}

// Compose combines validators into one. Nested composites are flattened and
// accept-all validators dropped; a single remaining validator is returned as is.
func Compose[V any](validators ...Validator[V]) Validator[V] {
	flat := make([]Validator[V], 0, len(validators))
	for _, v := range validators {
		if IsNone(v) {
			continue
		}
		if c, ok := v.(*Composite[V]); ok {
			flat = append(flat, c.validators...)
			continue
		}
		flat = append(flat, v)
	}

	switch len(flat) {
	case 0:
		return None[V]()
	case 1:
		return flat[0]
	default:
		return &Composite[V]{validators: flat}
	}
}

func (c *Composite[V]) ID() string { return "composite" }

func (c *Composite[V]) Validate(value V) error {
	var err error
	for _, v := range c.validators {
		err = multierr.Append(err, v.Validate(value))
	}
	return err
}

// Validators returns the composed validators in evaluation order.
func (c *Composite[V]) Validators() []Validator[V] {
	out := make([]Validator[V], len(c.validators))
	copy(out, c.validators)
	return out
}
