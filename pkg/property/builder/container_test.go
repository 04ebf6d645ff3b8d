package builder

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/property/pkg/property"
	"github.com/zeusync/property/pkg/property/factory"
	"github.com/zeusync/property/pkg/property/validation"
)

func TestMapBuilder_MissingValueProperty(t *testing.T) {
	b := New()

	_, err := Map[string, int](b).Build("scores")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingValueProperty)
	assert.True(t, property.IsConfiguration(err))
	assert.Zero(t, b.Len())
}

func TestMapBuilder_Types(t *testing.T) {
	b := New()
	key := property.NewStringProperty("k", nil)
	value := property.NewNumberProperty[int]("v", nil)

	p, err := Map[string, int](b).KeyProperty(key).ValueProperty(value).Build("scores")
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[map[string]int](), p.ValueType())
	assert.Equal(t, reflect.TypeFor[string](), p.KeyType())
	assert.Equal(t, reflect.TypeFor[int](), p.ComponentType())
	assert.Same(t, key, p.KeyProperty())
	assert.Same(t, value, p.ValueProperty())
}

func TestMapBuilder_KeyFromRegistry(t *testing.T) {
	registry, err := factory.NewDefaultRegistry()
	require.NoError(t, err)

	t.Run("resolved by key type", func(t *testing.T) {
		b := New(WithRegistry(registry))
		p, err := Map[string, int](b).ValueBuilder(b.Int()).Build("scores")
		require.NoError(t, err)

		assert.IsType(t, &property.StringProperty{}, p.KeyProperty())
		assert.Equal(t, "scores.key", p.KeyProperty().Name())
		assert.Equal(t, "scores.value", p.ValueProperty().Name())
	})

	t.Run("unknown key type", func(t *testing.T) {
		type id struct{ n int }
		b := New(WithRegistry(registry))
		_, err := Map[id, int](b).ValueBuilder(b.Int()).Build("m")
		assert.ErrorIs(t, err, ErrMissingKeyProperty)
		assert.True(t, factory.IsNotFound(err))
	})

	t.Run("no registry", func(t *testing.T) {
		b := New()
		_, err := Map[string, int](b).ValueBuilder(b.Int()).Build("m")
		assert.ErrorIs(t, err, ErrMissingKeyProperty)
	})
}

func TestListBuilder_SubBuilder(t *testing.T) {
	b := New()

	p, err := List[string](b).
		ValueBuilder(b.String().WithValidator().NotEmpty().And()).
		WithValidator().Size(0, 2).And().
		Value([]string{"a", "b"}).
		Build("tags")
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[string](), p.ComponentType())
	assert.Equal(t, "tags.value", p.ValueProperty().Name())
	assert.NoError(t, p.Validate())

	require.NoError(t, p.Append(" "))
	failures := validation.Failures(p.Validate())
	require.Len(t, failures, 2)
	assert.Equal(t, "size", failures[0].Rule)
	assert.Equal(t, "not-blank", failures[1].Rule)

	_, ok := b.Property("tags.value")
	assert.False(t, ok, "prototypes are not registered")
	assert.Equal(t, 1, b.Len())
}

func TestListBuilder_LastPrototypeWins(t *testing.T) {
	b := New()
	ready := property.NewStringProperty("ready", nil)

	p, err := List[string](b).ValueBuilder(b.String()).ValueProperty(ready).Build("a")
	require.NoError(t, err)
	assert.Same(t, ready, p.ValueProperty())

	q, err := List[string](b).ValueProperty(ready).ValueBuilder(b.String()).Build("b")
	require.NoError(t, err)
	assert.NotSame(t, ready, q.ValueProperty())
	assert.Equal(t, "b.value", q.ValueProperty().Name())
}

func TestListBuilder_RetryAfterDuplicateName(t *testing.T) {
	b := New()
	b.String().MustBuild("tags")

	lb := List[string](b).ValueBuilder(b.String())
	_, err := lb.Build("tags")
	require.ErrorIs(t, err, ErrDuplicateProperty)

	p, err := lb.Build("labels")
	require.NoError(t, err)
	assert.Equal(t, "labels.value", p.ValueProperty().Name())
}

func TestBuilders_Register(t *testing.T) {
	b := New()
	b.String().MustBuild("taken")

	a, err := b.String().BuildPrototype("a")
	require.NoError(t, err)
	c, err := b.Int().BuildPrototype("c")
	require.NoError(t, err)
	dup, err := b.Boolean().BuildPrototype("taken")
	require.NoError(t, err)

	err = b.Register(a, c, dup)
	assert.ErrorIs(t, err, ErrDuplicateProperty)
	assert.Equal(t, 1, b.Len(), "nothing is registered when one name is taken")

	require.ErrorIs(t, b.Register(a, a), ErrDuplicateProperty)

	require.NoError(t, b.Register(a, c))
	names := make([]string, 0, b.Len())
	for _, p := range b.Properties() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"taken", "a", "c"}, names)
}

func TestBuilder_NilParent(t *testing.T) {
	_, err := Number[int](nil).Value(1).Build("n")
	assert.ErrorIs(t, err, ErrMissingParent)
	assert.True(t, property.IsConfiguration(err))

	_, err = List[int](nil).ValueBuilder(Number[int](nil)).Build("l")
	assert.ErrorIs(t, err, ErrMissingParent)

	_, err = Map[string, int](nil).ValueBuilder(Number[int](nil)).BuildPrototype("m")
	assert.ErrorIs(t, err, ErrMissingKeyProperty)

	p, err := Number[int](nil).Value(2).BuildPrototype("standalone")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Get())
	assert.Nil(t, p.Metadata().Owner())

	var none *Builders
	assert.Nil(t, none.Registry())
	assert.ErrorIs(t, none.Register(p), ErrMissingParent)
}

func TestListBuilder_MissingValueProperty(t *testing.T) {
	_, err := List[int](New()).Build("l")
	assert.ErrorIs(t, err, ErrMissingValueProperty)
}

func TestSetBuilder(t *testing.T) {
	b := New()
	p, err := Set[int](b).
		ValueBuilder(b.Int().WithValidator().Positive().And()).
		Value(map[int]struct{}{1: {}, 2: {}}).
		Build("ids")
	require.NoError(t, err)

	assert.True(t, p.Contains(2))
	assert.NoError(t, p.Validate())
	require.NoError(t, p.Add(-1))
	assert.Error(t, p.Validate())
}

func TestListBuilder_NestedContainers(t *testing.T) {
	b := New()
	p, err := List[[]string](b).
		ValueBuilder(List[string](b).ValueBuilder(b.String())).
		Build("matrix")
	require.NoError(t, err)

	inner, ok := p.ValueProperty().(*property.ListProperty[string])
	require.True(t, ok)
	assert.Equal(t, "matrix.value", inner.Name())
	assert.Equal(t, "matrix.value.value", inner.ValueProperty().Name())
}
