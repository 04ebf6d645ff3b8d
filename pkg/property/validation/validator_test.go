package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	t.Run("empty is none", func(t *testing.T) {
		v := Compose[int]()
		assert.True(t, IsNone(v))
		assert.NoError(t, v.Validate(42))
	})

	t.Run("single validator is returned as is", func(t *testing.T) {
		rule := Min(1)
		v := Compose(None[int](), rule, nil)
		assert.Equal(t, "min", v.ID())
		_, composite := v.(*Composite[int])
		assert.False(t, composite)
	})

	t.Run("nested composites are flattened", func(t *testing.T) {
		inner := Compose(Min(0), Max(10))
		v := Compose(inner, Positive[int]())
		c, ok := v.(*Composite[int])
		require.True(t, ok)
		assert.Len(t, c.Validators(), 3)
	})
}

func TestComposite_ReportsEveryFailureInOrder(t *testing.T) {
	var calls []string
	record := func(id string, fail bool) Validator[int] {
		return Func(id, func(value int) error {
			calls = append(calls, id)
			if fail {
				return Fail(id, value, "rejected")
			}
			return nil
		})
	}

	v := Compose(record("a", true), record("b", false), record("c", true))
	err := v.Validate(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	failures := Failures(err)
	require.Len(t, failures, 2)
	assert.Equal(t, "a", failures[0].Rule)
	assert.Equal(t, "c", failures[1].Rule)
}

func TestMandatory(t *testing.T) {
	t.Run("interface", func(t *testing.T) {
		v := Mandatory[any]()
		assert.Error(t, v.Validate(nil))
		assert.NoError(t, v.Validate(0))
	})

	t.Run("int", func(t *testing.T) {
		v := Mandatory[int]()
		assert.Error(t, v.Validate(0))
		assert.NoError(t, v.Validate(3))
	})

	t.Run("slice", func(t *testing.T) {
		v := Mandatory[[]string]()
		assert.Error(t, v.Validate(nil))
		assert.NoError(t, v.Validate([]string{}))
	})
}

func TestMandatoryAndRange(t *testing.T) {
	v := Compose(Mandatory[int](), Range(0, 10))

	assert.NoError(t, v.Validate(5))
	assert.NoError(t, v.Validate(10))

	err := v.Validate(11)
	require.Error(t, err)
	require.Len(t, Failures(err), 1)
	assert.Equal(t, "range", Failures(err)[0].Rule)

	err = v.Validate(0)
	require.Error(t, err)
	require.Len(t, Failures(err), 1)
	assert.Equal(t, "mandatory", Failures(err)[0].Rule)
}

func TestCompose_OrderDoesNotChangeVerdict(t *testing.T) {
	forward := Compose(Mandatory[int](), Range(0, 10))
	reversed := Compose(Range(0, 10), Mandatory[int]())

	for _, value := range []int{-1, 0, 1, 5, 10, 11} {
		assert.Equal(t, forward.Validate(value) == nil, reversed.Validate(value) == nil, "value %d", value)
	}
	assert.Error(t, reversed.Validate(0))
	assert.NoError(t, reversed.Validate(7))

	t.Run("null", func(t *testing.T) {
		bounded := Predicate("bounded", "must be within [0, 10]", func(p *int) bool {
			return p == nil || (*p >= 0 && *p <= 10)
		})
		forward := Compose(Mandatory[*int](), bounded)
		reversed := Compose(bounded, Mandatory[*int]())

		five, eleven := 5, 11
		for _, value := range []*int{nil, &five, &eleven} {
			assert.Equal(t, forward.Validate(value) == nil, reversed.Validate(value) == nil)
		}

		err := reversed.Validate(nil)
		require.Len(t, Failures(err), 1)
		assert.Equal(t, "mandatory", Failures(err)[0].Rule)
		assert.NoError(t, reversed.Validate(&five))
		assert.Error(t, reversed.Validate(&eleven))
	})
}
