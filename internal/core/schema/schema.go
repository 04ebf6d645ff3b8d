// Package schema describes property sets in YAML or JSON documents and builds
// them through the property builders.
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/property/pkg/property"
)

var ErrInvalidDocument = fmt.Errorf("%w: invalid schema document", property.ErrConfiguration)

type Kind string

const (
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindInt64    Kind = "int64"
	KindFloat64  Kind = "float64"
	KindTime     Kind = "time"
	KindDuration Kind = "duration"
	KindObject   Kind = "object"
	KindList     Kind = "list"
	KindSet      Kind = "set"
	KindMap      Kind = "map"
)

func (k Kind) scalar() bool {
	switch k {
	case KindString, KindBool, KindInt, KindInt64, KindFloat64, KindTime, KindDuration:
		return true
	}
	return false
}

// Document is a set of property definitions.
type Document struct {
	Properties []Definition `json:"properties" yaml:"properties"`
}

// Definition describes one property. Element describes the elements of lists
// and sets and the values of maps; Key describes map keys and defaults to a
// string key resolved from the factory registry.
type Definition struct {
	Name       string         `json:"name" yaml:"name"`
	Kind       Kind           `json:"kind" yaml:"kind"`
	ReadOnly   bool           `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	Value      any            `json:"value,omitempty" yaml:"value,omitempty"`
	Rules      Rules          `json:"rules,omitempty" yaml:"rules,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Key        *Definition    `json:"key,omitempty" yaml:"key,omitempty"`
	Element    *Definition    `json:"element,omitempty" yaml:"element,omitempty"`
}

// Rules are the validation rules a definition may carry. Rules that do not
// apply to the kind of the definition are ignored.
type Rules struct {
	Mandatory bool     `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	NotEmpty  bool     `json:"not_empty,omitempty" yaml:"not_empty,omitempty"`
	MinSize   *int     `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	MaxSize   *int     `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	Past      bool     `json:"past,omitempty" yaml:"past,omitempty"`
	Future    bool     `json:"future,omitempty" yaml:"future,omitempty"`
}

// Load decodes a document. JSON input is accepted as YAML.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Validate checks the structure of the document: unique names, known kinds
// and element definitions where containers need them.
func (d *Document) Validate() error {
	var err error
	seen := make(map[string]struct{}, len(d.Properties))
	for i, def := range d.Properties {
		if def.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%w: properties[%d] has no name", ErrInvalidDocument, i))
		} else if _, ok := seen[def.Name]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: duplicate property %s", ErrInvalidDocument, def.Name))
		}
		seen[def.Name] = struct{}{}
		err = multierr.Append(err, def.validate())
	}
	return err
}

func (d *Definition) validate() error {
	switch {
	case d.Kind.scalar(), d.Kind == KindObject:
		return nil
	case d.Kind == KindList, d.Kind == KindSet:
		return d.requireElement()
	case d.Kind == KindMap:
		err := d.requireElement()
		if d.Key != nil && !d.Key.Kind.isKey() {
			err = multierr.Append(err, fmt.Errorf("%w: %s: unsupported key kind %q", ErrInvalidDocument, d.Name, d.Key.Kind))
		}
		return err
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDocument, d.Name, d.Kind)
	}
}

func (d *Definition) requireElement() error {
	if d.Element == nil {
		return fmt.Errorf("%w: %s: %s needs an element definition", ErrInvalidDocument, d.Name, d.Kind)
	}
	if !d.Element.Kind.scalar() {
		return fmt.Errorf("%w: %s: unsupported element kind %q", ErrInvalidDocument, d.Name, d.Element.Kind)
	}
	return nil
}

func (k Kind) isKey() bool {
	return k == KindString || k == KindInt || k == KindInt64
}
