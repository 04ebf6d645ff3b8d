package property

import (
	"cmp"
)

var (
	_ WritableNumber[int]     = (*NumberProperty[int])(nil)
	_ WritableNumber[float64] = (*NumberProperty[float64])(nil)
	_ Comparable[int64]       = (*NumberProperty[int64])(nil)
)

type ReadableNumber[N Numeric] interface {
	Readable[N]
	Sign() int
}

type WritableNumber[N Numeric] interface {
	ReadableNumber[N]
	Writable[N]
	Add(delta N) error
}

// NumberProperty holds a number of type N.
type NumberProperty[N Numeric] struct {
	*Base[N]
}

func NewNumberProperty[N Numeric](name string, metadata Metadata[N]) *NumberProperty[N] {
	return &NumberProperty[N]{Base: New(name, metadata)}
}

func (p *NumberProperty[N]) Sign() int {
	return cmp.Compare(p.Get(), 0)
}

func (p *NumberProperty[N]) Compare(other N) int {
	return cmp.Compare(p.Get(), other)
}

// Add adds delta to the value atomically.
func (p *NumberProperty[N]) Add(delta N) error {
	return p.update(func(current N) (N, error) { return current + delta, nil })
}
