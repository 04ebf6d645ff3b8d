package schema

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/zeusync/property/pkg/property"
)

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("%w: %T is not a string", property.ErrTypeMismatch, v)
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", property.ErrTypeMismatch, x)
		}
		return b, nil
	}
	return false, fmt.Errorf("%w: %T is not a bool", property.ErrTypeMismatch, v)
}

// toNumber converts decoded numbers and numeric strings to N. Integer kinds
// reject fractions and values outside their range instead of truncating.
func toNumber[N property.Numeric](v any) (N, error) {
	switch x := v.(type) {
	case int:
		return fromInt[N](int64(x))
	case int64:
		return fromInt[N](x)
	case uint64:
		return fromUint[N](x)
	case float64:
		return fromFloat[N](x)
	case string:
		if i, err := strconv.ParseInt(x, 10, 64); err == nil {
			return fromInt[N](i)
		}
		if u, err := strconv.ParseUint(x, 10, 64); err == nil {
			return fromUint[N](u)
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", property.ErrTypeMismatch, x)
		}
		return fromFloat[N](f)
	}
	return 0, fmt.Errorf("%w: %T is not a number", property.ErrTypeMismatch, v)
}

type numberKind struct {
	integer bool
	signed  bool
	bits    int
}

func kindOf[N property.Numeric]() numberKind {
	t := reflect.TypeFor[N]()
	bits := t.Bits()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numberKind{integer: true, signed: true, bits: bits}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return numberKind{integer: true, bits: bits}
	}
	return numberKind{signed: true, bits: bits}
}

func outOfRange[N property.Numeric](v any) (N, error) {
	return 0, fmt.Errorf("%w: %v overflows %s", property.ErrTypeMismatch, v, reflect.TypeFor[N]())
}

func fromInt[N property.Numeric](i int64) (N, error) {
	k := kindOf[N]()
	switch {
	case !k.integer:
		return N(i), nil
	case k.signed:
		if k.bits < 64 && (i < -1<<(k.bits-1) || i > 1<<(k.bits-1)-1) {
			return outOfRange[N](i)
		}
	default:
		if i < 0 || (k.bits < 64 && uint64(i) > 1<<k.bits-1) {
			return outOfRange[N](i)
		}
	}
	return N(i), nil
}

func fromUint[N property.Numeric](u uint64) (N, error) {
	k := kindOf[N]()
	switch {
	case !k.integer:
		return N(u), nil
	case k.signed:
		if u > 1<<(k.bits-1)-1 {
			return outOfRange[N](u)
		}
	default:
		if k.bits < 64 && u > 1<<k.bits-1 {
			return outOfRange[N](u)
		}
	}
	return N(u), nil
}

func fromFloat[N property.Numeric](f float64) (N, error) {
	k := kindOf[N]()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if k.integer {
			return 0, fmt.Errorf("%w: %v is not an integer", property.ErrTypeMismatch, f)
		}
		return N(f), nil
	}
	if !k.integer {
		if k.bits == 32 && math.Abs(f) > math.MaxFloat32 {
			return outOfRange[N](f)
		}
		return N(f), nil
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v is not an integer", property.ErrTypeMismatch, f)
	}
	// Bounds are powers of two and therefore exact in float64.
	limit := math.Ldexp(1, k.bits)
	lower := 0.0
	if k.signed {
		limit = math.Ldexp(1, k.bits-1)
		lower = -limit
	}
	if f < lower || f >= limit {
		return outOfRange[N](f)
	}
	return N(f), nil
}

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not an RFC 3339 time", property.ErrTypeMismatch, x)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %T is not a time", property.ErrTypeMismatch, v)
}

// toDuration accepts Go duration strings and plain numbers of seconds.
func toDuration(v any) (time.Duration, error) {
	if s, ok := v.(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a duration", property.ErrTypeMismatch, s)
		}
		return d, nil
	}
	seconds, err := toNumber[float64](v)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func toSlice[E any](v any, convert func(any) (E, error)) ([]E, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a list", property.ErrTypeMismatch, v)
	}
	out := make([]E, 0, len(items))
	for i, item := range items {
		e, err := convert(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func toSet[E comparable](v any, convert func(any) (E, error)) (map[E]struct{}, error) {
	items, err := toSlice(v, convert)
	if err != nil {
		return nil, err
	}
	out := make(map[E]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out, nil
}

func toMap[K comparable, V any](v any, key func(any) (K, error), value func(any) (V, error)) (map[K]V, error) {
	entries := make(map[any]any)
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			entries[k] = e
		}
	case map[any]any:
		entries = x
	default:
		return nil, fmt.Errorf("%w: %T is not a map", property.ErrTypeMismatch, v)
	}

	out := make(map[K]V, len(entries))
	for k, e := range entries {
		typedKey, err := key(k)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", k, err)
		}
		typedValue, err := value(e)
		if err != nil {
			return nil, fmt.Errorf("[%v]: %w", k, err)
		}
		out[typedKey] = typedValue
	}
	return out, nil
}
