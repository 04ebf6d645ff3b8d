package schema

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/builder"
	"github.com/zeusync/property/pkg/property/factory"
	"github.com/zeusync/property/pkg/property/validation"
)

const document = `
properties:
  - name: title
    kind: string
    value: Hello
    rules:
      not_empty: true
      max_length: 10
  - name: level
    kind: int
    value: 3
    rules:
      min: 0
      max: 10
  - name: ratio
    kind: float64
    read_only: true
    value: 0.5
  - name: enabled
    kind: bool
    value: true
    attributes:
      group: flags
  - name: timeout
    kind: duration
    value: 1m30s
  - name: created
    kind: time
    value: "2024-01-02T03:04:05Z"
    rules:
      past: true
  - name: tags
    kind: list
    element:
      kind: string
      rules:
        not_empty: true
    value: [a, b]
    rules:
      max_size: 3
  - name: ids
    kind: set
    element:
      kind: int64
    value: [1, 2, 2]
  - name: scores
    kind: map
    element:
      kind: int
      rules:
        min: 0
    value:
      alice: 3
  - name: ports
    kind: map
    key:
      kind: int
    element:
      kind: string
    value:
      80: http
  - name: payload
    kind: object
    value: {x: 1}
`

func newBuilders(t *testing.T) *builder.Builders {
	t.Helper()
	registry, err := factory.NewDefaultRegistry()
	require.NoError(t, err)
	return builder.New(builder.WithRegistry(registry))
}

func TestBuild(t *testing.T) {
	doc, err := Load(strings.NewReader(document))
	require.NoError(t, err)

	b := newBuilders(t)
	props, err := Build(context.Background(), b, doc)
	require.NoError(t, err)
	require.Len(t, props, len(doc.Properties))

	for i, def := range doc.Properties {
		assert.Equal(t, def.Name, props[i].Name(), "document order")
		assert.NoError(t, props[i].Validate(), def.Name)
	}
	assert.Equal(t, len(doc.Properties), b.Len())

	byName := func(name string) property.Property {
		p, ok := b.Property(name)
		require.True(t, ok, name)
		return p
	}

	assert.Equal(t, "Hello", byName("title").GetAny())
	assert.Equal(t, 3, byName("level").GetAny())
	assert.True(t, byName("ratio").IsReadOnly())
	assert.Equal(t, 90*time.Second, byName("timeout").GetAny())
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), byName("created").GetAny())
	assert.Equal(t, []string{"a", "b"}, byName("tags").GetAny())
	assert.Equal(t, map[int64]struct{}{1: {}, 2: {}}, byName("ids").GetAny())

	enabled := byName("enabled").(*property.BooleanProperty)
	group, ok := enabled.Metadata().Attribute("group")
	assert.True(t, ok)
	assert.Equal(t, "flags", group)

	scores := byName("scores").(*property.MapProperty[string, int])
	assert.Equal(t, reflect.TypeFor[string](), scores.KeyType())
	require.NoError(t, scores.Put("bob", -1))
	assert.ErrorIs(t, scores.Validate(), validation.ErrInvalid)

	ports := byName("ports").(*property.MapProperty[int, string])
	v, ok := ports.Lookup(80)
	assert.True(t, ok)
	assert.Equal(t, "http", v)

	payload := byName("payload")
	assert.Equal(t, map[string]any{"x": 1}, payload.GetAny())

	level := byName("level").(*property.NumberProperty[int])
	require.NoError(t, level.Set(11))
	assert.Error(t, level.Validate())
}

func TestLoad_JSON(t *testing.T) {
	doc, err := Load(strings.NewReader(`{"properties": [{"name": "n", "kind": "int64", "value": 7}]}`))
	require.NoError(t, err)

	props, err := Build(context.Background(), builder.New(), doc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), props[0].GetAny())
}

func TestDocument_Validate(t *testing.T) {
	doc := &Document{Properties: []Definition{
		{Name: "", Kind: KindString},
		{Name: "a", Kind: KindString},
		{Name: "a", Kind: KindInt},
		{Name: "b", Kind: "complex"},
		{Name: "c", Kind: KindList},
		{Name: "d", Kind: KindMap, Element: &Definition{Kind: KindInt}, Key: &Definition{Kind: KindBool}},
		{Name: "e", Kind: KindSet, Element: &Definition{Kind: KindList}},
	}}

	err := doc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.True(t, property.IsConfiguration(err))
	assert.Len(t, multierr.Errors(err), 6)

	_, err = Build(context.Background(), builder.New(), doc)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestBuild_Errors(t *testing.T) {
	t.Run("bad value", func(t *testing.T) {
		doc := &Document{Properties: []Definition{{Name: "n", Kind: KindInt, Value: "x"}}}
		_, err := Build(context.Background(), builder.New(), doc)
		assert.ErrorIs(t, err, property.ErrTypeMismatch)
		assert.Contains(t, err.Error(), "property n")
	})

	t.Run("bad pattern", func(t *testing.T) {
		doc := &Document{Properties: []Definition{{Name: "s", Kind: KindString, Rules: Rules{Pattern: "("}}}}
		_, err := Build(context.Background(), builder.New(), doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("map key without registry", func(t *testing.T) {
		doc := &Document{Properties: []Definition{{Name: "m", Kind: KindMap, Element: &Definition{Kind: KindBool}}}}
		_, err := Build(context.Background(), builder.New(), doc)
		assert.ErrorIs(t, err, builder.ErrMissingKeyProperty)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		doc := &Document{Properties: []Definition{{Name: "s", Kind: KindString}}}
		_, err := Build(ctx, builder.New(), doc)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoad_Empty(t *testing.T) {
	doc, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Properties)
}

func TestBuild_FailingDocumentRegistersNothing(t *testing.T) {
	b := builder.New()
	doc := &Document{Properties: []Definition{
		{Name: "a", Kind: KindString, Value: "ok"},
		{Name: "b", Kind: KindInt, Value: "notanumber"},
	}}

	_, err := Build(context.Background(), b, doc)
	require.ErrorIs(t, err, property.ErrTypeMismatch)
	assert.Equal(t, 0, b.Len())

	doc.Properties[1].Value = 4
	props, err := Build(context.Background(), b, doc)
	require.NoError(t, err, "names of a failed document stay free")
	require.Len(t, props, 2)
	assert.Equal(t, 2, b.Len())

	again := &Document{Properties: []Definition{
		{Name: "c", Kind: KindBool},
		{Name: "a", Kind: KindString},
	}}
	_, err = Build(context.Background(), b, again)
	assert.ErrorIs(t, err, builder.ErrDuplicateProperty)
	assert.Equal(t, 2, b.Len())
	_, ok := b.Property("c")
	assert.False(t, ok)
}

func TestBuild_IntegerKinds(t *testing.T) {
	build := func(def Definition) (property.Property, error) {
		props, err := Build(context.Background(), builder.New(), &Document{Properties: []Definition{def}})
		if err != nil {
			return nil, err
		}
		return props[0], nil
	}
	half := 0.5

	t.Run("fractional value", func(t *testing.T) {
		_, err := build(Definition{Name: "n", Kind: KindInt, Value: 2.9})
		assert.ErrorIs(t, err, property.ErrTypeMismatch)
	})

	t.Run("integral float", func(t *testing.T) {
		p, err := build(Definition{Name: "n", Kind: KindInt64, Value: 3.0})
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.GetAny())
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := build(Definition{Name: "n", Kind: KindInt64, Value: uint64(1 << 63)})
		assert.ErrorIs(t, err, property.ErrTypeMismatch)

		_, err = build(Definition{Name: "n", Kind: KindInt, Value: 1e20})
		assert.ErrorIs(t, err, property.ErrTypeMismatch)
	})

	t.Run("fractional rule", func(t *testing.T) {
		_, err := build(Definition{Name: "n", Kind: KindInt, Value: 2, Rules: Rules{Min: &half}})
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("fractional rule on float", func(t *testing.T) {
		p, err := build(Definition{Name: "n", Kind: KindFloat64, Value: 0.25, Rules: Rules{Min: &half}})
		require.NoError(t, err)
		assert.Error(t, p.Validate())
	})

	t.Run("yaml", func(t *testing.T) {
		doc, err := Load(strings.NewReader("properties:\n  - {name: n, kind: int, value: 2.9, rules: {min: 0.5}}\n"))
		require.NoError(t, err)
		_, err = Build(context.Background(), builder.New(), doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)

		doc, err = Load(strings.NewReader("properties:\n  - {name: n, kind: int, value: 2.9}\n"))
		require.NoError(t, err)
		_, err = Build(context.Background(), builder.New(), doc)
		assert.ErrorIs(t, err, property.ErrTypeMismatch)
	})
}

func TestToNumber(t *testing.T) {
	boxed := func(convert any) func(any) (any, error) {
		switch c := convert.(type) {
		case func(any) (int8, error):
			return func(v any) (any, error) { return c(v) }
		case func(any) (uint8, error):
			return func(v any) (any, error) { return c(v) }
		case func(any) (int32, error):
			return func(v any) (any, error) { return c(v) }
		case func(any) (uint64, error):
			return func(v any) (any, error) { return c(v) }
		case func(any) (float64, error):
			return func(v any) (any, error) { return c(v) }
		}
		panic("unsupported conversion")
	}
	int8s, uint8s := boxed(toNumber[int8]), boxed(toNumber[uint8])
	int32s, uint64s, floats := boxed(toNumber[int32]), boxed(toNumber[uint64]), boxed(toNumber[float64])

	tests := []struct {
		name    string
		convert func(any) (any, error)
		value   any
		want    any
	}{
		{"int8 in range", int8s, 127, int8(127)},
		{"int8 overflow", int8s, 128, nil},
		{"int8 underflow", int8s, -129, nil},
		{"uint8 negative", uint8s, -1, nil},
		{"uint8 max", uint8s, "255", uint8(255)},
		{"uint8 overflow", uint8s, 256.0, nil},
		{"int32 from string", int32s, "-7", int32(-7)},
		{"int32 fraction", int32s, "1.5", nil},
		{"uint64 max", uint64s, uint64(1<<64 - 1), uint64(1<<64 - 1)},
		{"uint64 from float", uint64s, 1e19, uint64(1e19)},
		{"float64 fraction", floats, 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.convert(tt.value)
			if tt.want == nil {
				assert.ErrorIs(t, err, property.ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
