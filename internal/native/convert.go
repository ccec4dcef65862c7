package native

import (
	"encoding/json"
	"math"
	"strconv"

	apperrors "github.com/agbru/fibbridge/internal/errors"
)

// ToUint32 converts a host number to uint32. Integral float64 values and
// json.Number are accepted since that is how JSON hosts deliver numbers.
func ToUint32(field string, v any) (uint32, error) {
	switch x := v.(type) {
	case uint32:
		return x, nil
	case uint8:
		return uint32(x), nil
	case uint16:
		return uint32(x), nil
	case uint:
		return uintToUint32(field, uint64(x))
	case uint64:
		return uintToUint32(field, x)
	case int:
		return intToUint32(field, int64(x))
	case int8:
		return intToUint32(field, int64(x))
	case int16:
		return intToUint32(field, int64(x))
	case int32:
		return intToUint32(field, int64(x))
	case int64:
		return intToUint32(field, x)
	case float32:
		return floatToUint32(field, float64(x))
	case float64:
		return floatToUint32(field, x)
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return intToUint32(field, i)
		}
		f, err := x.Float64()
		if err != nil {
			return 0, apperrors.NewValidationError(field, "%q is not a number", string(x))
		}
		return floatToUint32(field, f)
	case nil:
		return 0, apperrors.NewValidationError(field, "expected a number, got null")
	default:
		return 0, apperrors.NewValidationError(field, "expected a number, got %T", v)
	}
}

func uintToUint32(field string, x uint64) (uint32, error) {
	if x > math.MaxUint32 {
		return 0, apperrors.NewValidationError(field, "%d is out of range for u32", x)
	}
	return uint32(x), nil
}

func intToUint32(field string, x int64) (uint32, error) {
	if x < 0 {
		return 0, apperrors.NewValidationError(field, "%d is negative", x)
	}
	return uintToUint32(field, uint64(x))
}

func floatToUint32(field string, f float64) (uint32, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, apperrors.NewValidationError(field, "%v is not a finite number", f)
	case f != math.Trunc(f):
		return 0, apperrors.NewValidationError(field, "%v is not an integer", f)
	case f < 0:
		return 0, apperrors.NewValidationError(field, "%v is negative", f)
	case f > math.MaxUint32:
		return 0, apperrors.NewValidationError(field, "%v is out of range for u32", f)
	}
	return uint32(f), nil
}

// ToOptionalString converts a host value to an optional string. nil means
// the argument was omitted.
func ToOptionalString(field string, v any) (*string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &x, nil
	case *string:
		return x, nil
	default:
		return nil, apperrors.NewValidationError(field, "expected a string, got %T", v)
	}
}

// ToArray converts a host array. Elements are passed through untouched.
func ToArray(field string, v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case nil:
		return nil, apperrors.NewValidationError(field, "expected an array, got null")
	default:
		return nil, apperrors.NewValidationError(field, "expected an array, got %T", v)
	}
}
