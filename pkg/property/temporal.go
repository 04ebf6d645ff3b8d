package property

import (
	"cmp"
	"time"
)

var (
	_ WritableTime              = (*TimeProperty)(nil)
	_ WritableDuration          = (*DurationProperty)(nil)
	_ Comparable[time.Time]     = (*TimeProperty)(nil)
	_ Comparable[time.Duration] = (*DurationProperty)(nil)
)

type ReadableTime interface {
	Readable[time.Time]
	IsZero() bool
}

type WritableTime interface {
	ReadableTime
	Writable[time.Time]
}

// TimeProperty holds an instant.
type TimeProperty struct {
	*Base[time.Time]
}

func NewTimeProperty(name string, metadata Metadata[time.Time]) *TimeProperty {
	return &TimeProperty{Base: New(name, metadata)}
}

func (p *TimeProperty) IsZero() bool {
	return p.Get().IsZero()
}

func (p *TimeProperty) Compare(other time.Time) int {
	return p.Get().Compare(other)
}

type ReadableDuration interface {
	Readable[time.Duration]
	Seconds() float64
}

type WritableDuration interface {
	ReadableDuration
	Writable[time.Duration]
	Add(delta time.Duration) error
}

// DurationProperty holds a time.Duration.
type DurationProperty struct {
	*Base[time.Duration]
}

func NewDurationProperty(name string, metadata Metadata[time.Duration]) *DurationProperty {
	return &DurationProperty{Base: New(name, metadata)}
}

func (p *DurationProperty) Seconds() float64 {
	return p.Get().Seconds()
}

func (p *DurationProperty) Compare(other time.Duration) int {
	return cmp.Compare(p.Get(), other)
}

func (p *DurationProperty) Add(delta time.Duration) error {
	return p.update(func(current time.Duration) (time.Duration, error) { return current + delta, nil })
}
