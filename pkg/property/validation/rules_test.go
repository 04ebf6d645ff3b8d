package validation

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringRules(t *testing.T) {
	assert.Error(t, NotBlank().Validate("  \t"))
	assert.NoError(t, NotBlank().Validate(" x "))

	assert.NoError(t, Length(1, 3).Validate("héé"))
	assert.Error(t, Length(1, 3).Validate("four"))
	assert.NoError(t, Length(2, -1).Validate("a long string"))
	assert.Error(t, Length(2, -1).Validate("a"))

	re := regexp.MustCompile(`^[a-z]+$`)
	assert.NoError(t, Pattern(re).Validate("abc"))
	assert.Error(t, Pattern(re).Validate("ABC"))
}

func TestNumberRules(t *testing.T) {
	assert.Error(t, Positive[float64]().Validate(0))
	assert.NoError(t, Positive[float64]().Validate(0.1))
	assert.NoError(t, NonNegative[int64]().Validate(0))
	assert.Error(t, NonNegative[int64]().Validate(-1))
	assert.Error(t, Min(3).Validate(2))
	assert.Error(t, Max(3).Validate(4))
}

func TestTimeRules(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	assert.NoError(t, Past(clock).Validate(now.Add(-time.Hour)))
	assert.Error(t, Past(clock).Validate(now.Add(time.Hour)))
	assert.NoError(t, Future(clock).Validate(now.Add(time.Hour)))
	assert.Error(t, Future(clock).Validate(now.Add(-time.Hour)))

	assert.NoError(t, Between(now.Add(-time.Minute), now.Add(time.Minute)).Validate(now))
	assert.Error(t, Before(now).Validate(now.Add(time.Second)))
	assert.Error(t, After(now).Validate(now.Add(-time.Second)))
}

func TestCollectionRules(t *testing.T) {
	size := func(v []int) int { return len(v) }

	assert.Error(t, NotEmpty(size).Validate(nil))
	assert.NoError(t, NotEmpty(size).Validate([]int{1}))
	assert.NoError(t, Size(size, 1, 2).Validate([]int{1, 2}))
	assert.Error(t, Size(size, 1, 2).Validate([]int{1, 2, 3}))
}
