package property

var _ WritableBoolean = (*BooleanProperty)(nil)

type ReadableBoolean interface {
	Readable[bool]
	IsTrue() bool
}

type WritableBoolean interface {
	ReadableBoolean
	Writable[bool]
	Toggle() error
}

// BooleanProperty holds a bool.
type BooleanProperty struct {
	*Base[bool]
}

func NewBooleanProperty(name string, metadata Metadata[bool]) *BooleanProperty {
	return &BooleanProperty{Base: New(name, metadata)}
}

func (p *BooleanProperty) IsTrue() bool {
	return p.Get()
}

// Toggle inverts the value atomically.
func (p *BooleanProperty) Toggle() error {
	return p.update(func(current bool) (bool, error) { return !current, nil })
}
