package validation

import (
	"cmp"
	"fmt"
	"regexp"
	"time"
)

// Source is implemented by every validator builder flavour. Property builders
// use it to feed raw rules and to compile the final validator.
type Source[V any] interface {
	Add(v Validator[V])
	Validator() Validator[V]
}

// Builder accumulates the rules for values of type V. P is the owner returned
// by And and S the concrete flavour returned by fluent calls.
//
// A Builder is single-owner and not safe for concurrent use.
type Builder[V any, P any, S any] struct {
	parent   P
	self     S
	rules    []Validator[V]
	compiled Validator[V]
}

func (b *Builder[V, P, S]) init(parent P, self S) {
	b.parent = parent
	b.self = self
}

// Add appends v to the rules. Nil validators are ignored.
func (b *Builder[V, P, S]) Add(v Validator[V]) {
	if v == nil {
		return
	}
	if b.compiled != nil {
		panic(fmt.Errorf("%w: cannot add rule %q", ErrSealed, v.ID()))
	}
	b.rules = append(b.rules, v)
}

func (b *Builder[V, P, S]) Rule(v Validator[V]) S {
	b.Add(v)
	return b.self
}

func (b *Builder[V, P, S]) Func(id string, fn func(value V) error) S {
	b.Add(Func(id, fn))
	return b.self
}

// Predicate adds a rule accepting the values for which ok returns true.
func (b *Builder[V, P, S]) Predicate(id, message string, ok func(V) bool) S {
	b.Add(Predicate(id, message, ok))
	return b.self
}

func (b *Builder[V, P, S]) Mandatory() S {
	b.Add(Mandatory[V]())
	return b.self
}

// And ends the validator chain and returns to the owning builder.
func (b *Builder[V, P, S]) And() P {
	return b.parent
}

// Len returns the number of accumulated rules.
func (b *Builder[V, P, S]) Len() int {
	return len(b.rules)
}

// Validator compiles the accumulated rules into a single validator. The result
// is computed once; later calls return the same validator.
func (b *Builder[V, P, S]) Validator() Validator[V] {
	if b.compiled == nil {
		b.compiled = Compose(b.rules...)
	}
	return b.compiled
}

// Object is the validator builder for values without domain specific rules.
type Object[V any, P any] struct {
	Builder[V, P, *Object[V, P]]
}

func NewObject[V any, P any](parent P) *Object[V, P] {
	b := &Object[V, P]{}
	b.init(parent, b)
	return b
}

// Comparable adds range rules for ordered values.
type Comparable[V cmp.Ordered, P any] struct {
	Builder[V, P, *Comparable[V, P]]
}

func NewComparable[V cmp.Ordered, P any](parent P) *Comparable[V, P] {
	b := &Comparable[V, P]{}
	b.init(parent, b)
	return b
}

func (b *Comparable[V, P]) Range(minimum, maximum V) *Comparable[V, P] {
	b.Add(Range(minimum, maximum))
	return b
}

func (b *Comparable[V, P]) Min(minimum V) *Comparable[V, P] {
	b.Add(Min(minimum))
	return b
}

func (b *Comparable[V, P]) Max(maximum V) *Comparable[V, P] {
	b.Add(Max(maximum))
	return b
}

// Number adds range and sign rules for numeric values.
type Number[V Numeric, P any] struct {
	Builder[V, P, *Number[V, P]]
}

func NewNumber[V Numeric, P any](parent P) *Number[V, P] {
	b := &Number[V, P]{}
	b.init(parent, b)
	return b
}

func (b *Number[V, P]) Range(minimum, maximum V) *Number[V, P] {
	b.Add(Range(minimum, maximum))
	return b
}

func (b *Number[V, P]) Min(minimum V) *Number[V, P] {
	b.Add(Min(minimum))
	return b
}

func (b *Number[V, P]) Max(maximum V) *Number[V, P] {
	b.Add(Max(maximum))
	return b
}

func (b *Number[V, P]) Positive() *Number[V, P] {
	b.Add(Positive[V]())
	return b
}

func (b *Number[V, P]) NonNegative() *Number[V, P] {
	b.Add(NonNegative[V]())
	return b
}

// String adds length and pattern rules.
type String[P any] struct {
	Builder[string, P, *String[P]]
}

func NewString[P any](parent P) *String[P] {
	b := &String[P]{}
	b.init(parent, b)
	return b
}

func (b *String[P]) NotEmpty() *String[P] {
	b.Add(NotBlank())
	return b
}

func (b *String[P]) Length(minimum, maximum int) *String[P] {
	b.Add(Length(minimum, maximum))
	return b
}

func (b *String[P]) MaxLength(maximum int) *String[P] {
	b.Add(Length(0, maximum))
	return b
}

func (b *String[P]) Pattern(re *regexp.Regexp) *String[P] {
	b.Add(Pattern(re))
	return b
}

// Matches compiles expr and adds it as a pattern rule. It panics if expr is
// not a valid regular expression.
func (b *String[P]) Matches(expr string) *String[P] {
	return b.Pattern(regexp.MustCompile(expr))
}

func (b *String[P]) Range(minimum, maximum string) *String[P] {
	b.Add(Range(minimum, maximum))
	return b
}

// Time adds temporal rules for time.Time values.
type Time[P any] struct {
	Builder[time.Time, P, *Time[P]]
	clock func() time.Time
}

func NewTime[P any](parent P) *Time[P] {
	b := &Time[P]{clock: time.Now}
	b.init(parent, b)
	return b
}

// Clock replaces the time source used by Past and Future rules added
// afterwards.
func (b *Time[P]) Clock(clock func() time.Time) *Time[P] {
	b.clock = clock
	return b
}

func (b *Time[P]) Before(limit time.Time) *Time[P] {
	b.Add(Before(limit))
	return b
}

func (b *Time[P]) After(limit time.Time) *Time[P] {
	b.Add(After(limit))
	return b
}

func (b *Time[P]) Between(start, end time.Time) *Time[P] {
	b.Add(Between(start, end))
	return b
}

func (b *Time[P]) Past() *Time[P] {
	b.Add(Past(b.clock))
	return b
}

func (b *Time[P]) Future() *Time[P] {
	b.Add(Future(b.clock))
	return b
}

// Collection adds size rules for lists, sets and maps.
type Collection[V any, P any] struct {
	Builder[V, P, *Collection[V, P]]
	size func(V) int
}

func NewCollection[V any, P any](parent P, size func(V) int) *Collection[V, P] {
	b := &Collection[V, P]{size: size}
	b.init(parent, b)
	return b
}

func (b *Collection[V, P]) NotEmpty() *Collection[V, P] {
	b.Add(NotEmpty(b.size))
	return b
}

func (b *Collection[V, P]) Size(minimum, maximum int) *Collection[V, P] {
	b.Add(Size(b.size, minimum, maximum))
	return b
}
