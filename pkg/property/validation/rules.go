package validation

import (
	"cmp"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Numeric is the set of built-in number types.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Mandatory rejects the zero value of V (nil for pointers, interfaces, maps
// and slices).
func Mandatory[V any]() Validator[V] {
	return Func("mandatory", func(value V) error {
		if reflect.ValueOf(&value).Elem().IsZero() {
			return Fail("mandatory", value, "value is required")
		}
		return nil
	})
}

// Range accepts values within [minimum, maximum].
func Range[V cmp.Ordered](minimum, maximum V) Validator[V] {
	return Func("range", func(value V) error {
		if value < minimum || value > maximum {
			return Fail("range", value, "must be within [%v, %v]", minimum, maximum)
		}
		return nil
	})
}

func Min[V cmp.Ordered](minimum V) Validator[V] {
	return Func("min", func(value V) error {
		if value < minimum {
			return Fail("min", value, "must be at least %v", minimum)
		}
		return nil
	})
}

func Max[V cmp.Ordered](maximum V) Validator[V] {
	return Func("max", func(value V) error {
		if value > maximum {
			return Fail("max", value, "must be at most %v", maximum)
		}
		return nil
	})
}

func Positive[V Numeric]() Validator[V] {
	return Predicate("positive", "must be greater than zero", func(value V) bool { return value > 0 })
}

func NonNegative[V Numeric]() Validator[V] {
	return Predicate("non-negative", "must not be negative", func(value V) bool { return value >= 0 })
}

// NotBlank rejects empty and whitespace-only strings.
func NotBlank() Validator[string] {
	return Predicate("not-blank", "must not be blank", func(value string) bool {
		return strings.TrimSpace(value) != ""
	})
}

// Length bounds the number of runes of a string. A negative maximum means
// unbounded.
func Length(minimum, maximum int) Validator[string] {
	return Func("length", func(value string) error {
		n := utf8.RuneCountInString(value)
		if n < minimum || (maximum >= 0 && n > maximum) {
			return Fail("length", value, "length %d outside [%d, %d]", n, minimum, maximum)
		}
		return nil
	})
}

func Pattern(re *regexp.Regexp) Validator[string] {
	return Func("pattern", func(value string) error {
		if !re.MatchString(value) {
			return Fail("pattern", value, "must match %s", re.String())
		}
		return nil
	})
}

func Before(limit time.Time) Validator[time.Time] {
	return Func("before", func(value time.Time) error {
		if !value.Before(limit) {
			return Fail("before", value, "must be before %s", limit.Format(time.RFC3339))
		}
		return nil
	})
}

func After(limit time.Time) Validator[time.Time] {
	return Func("after", func(value time.Time) error {
		if !value.After(limit) {
			return Fail("after", value, "must be after %s", limit.Format(time.RFC3339))
		}
		return nil
	})
}

// Between accepts instants within [start, end].
func Between(start, end time.Time) Validator[time.Time] {
	return Func("between", func(value time.Time) error {
		if value.Before(start) || value.After(end) {
			return Fail("between", value, "must be within [%s, %s]",
				start.Format(time.RFC3339), end.Format(time.RFC3339))
		}
		return nil
	})
}

// Past accepts instants before now as reported by clock.
func Past(clock func() time.Time) Validator[time.Time] {
	return Func("past", func(value time.Time) error {
		if !value.Before(clock()) {
			return Fail("past", value, "must be in the past")
		}
		return nil
	})
}

// Future accepts instants after now as reported by clock.
func Future(clock func() time.Time) Validator[time.Time] {
	return Func("future", func(value time.Time) error {
		if !value.After(clock()) {
			return Fail("future", value, "must be in the future")
		}
		return nil
	})
}

// NotEmpty rejects containers whose size is zero.
func NotEmpty[V any](size func(V) int) Validator[V] {
	return Func("not-empty", func(value V) error {
		if size(value) == 0 {
			return Fail("not-empty", value, "must not be empty")
		}
		return nil
	})
}

// Size bounds the number of elements of a container. A negative maximum means
// unbounded.
func Size[V any](size func(V) int, minimum, maximum int) Validator[V] {
	return Func("size", func(value V) error {
		n := size(value)
		if n < minimum || (maximum >= 0 && n > maximum) {
			return Fail("size", value, "size %d outside [%d, %d]", n, minimum, maximum)
		}
		return nil
	})
}
