// Package cast implements best-effort coercion of raw values to
// schema-declared scalar types. It is only consulted when a schema enables
// casting; containers are never cast directly.
package cast

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/aretw0/sieve/pkg/schema"
)

// ErrNotNumber reports a value that cannot be coerced to a numeric type.
// The engine surfaces it as a reported field error, never as a fatal one.
var ErrNotNumber = errors.New("value is not a number")

// Cast coerces value to the target scalar type.
//
// Numeric targets accept booleans (true is 1, false is 0) and numeric
// strings; nil (a serialized not-a-number becomes null on the wire) and a
// literal NaN both coerce to 0, while a non-numeric string is ErrNotNumber.
// Integer targets additionally truncate toward zero. Boolean targets apply
// truthiness and string targets stringify; neither ever fails.
func Cast(value any, target schema.Type) (any, error) {
	switch target {
	case schema.TypeNumber:
		return toNumber(value)
	case schema.TypeInteger:
		f, err := toNumber(value)
		if err != nil {
			return nil, err
		}
		return int(math.Trunc(f)), nil
	case schema.TypeBoolean:
		return truthy(value), nil
	case schema.TypeString:
		return Stringify(value), nil
	}
	return value, nil
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, ErrNotNumber
		}
		if math.IsNaN(f) {
			return 0, nil
		}
		return f, nil
	}
	if f, ok := toFloat(value); ok {
		if math.IsNaN(f) {
			return 0, nil
		}
		return f, nil
	}
	return 0, ErrNotNumber
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := toFloat(value); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Stringify renders a scalar the way a dynamic runtime would: whole floats
// print without a decimal point.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprintf("%v", value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
