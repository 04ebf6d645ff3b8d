package property

import (
	"strings"
)

var (
	_ WritableString     = (*StringProperty)(nil)
	_ Comparable[string] = (*StringProperty)(nil)
)

type ReadableString interface {
	Readable[string]
	IsEmpty() bool
}

type WritableString interface {
	ReadableString
	Writable[string]
}

// StringProperty holds a string.
type StringProperty struct {
	*Base[string]
}

func NewStringProperty(name string, metadata Metadata[string]) *StringProperty {
	return &StringProperty{Base: New(name, metadata)}
}

func (p *StringProperty) IsEmpty() bool {
	return p.Get() == ""
}

func (p *StringProperty) Compare(other string) int {
	return strings.Compare(p.Get(), other)
}
