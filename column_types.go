package koalas

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns a unique name for this column type
func (b *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Cast converts a literal to a bool. Numeric values coerce to their
// truthiness, matching the coercion used by boolean reductions.
func (b *BoolColumnType) Cast(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case int32:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case float64:
		// NaN is a value, and values are truthy
		return math.IsNaN(t) || t != 0, nil
	default:
		return nil, fmt.Errorf("cannot cast %#v to bool", v)
	}
}

// Compare orders two non-nil bool values, with false before true
func (b *BoolColumnType) Compare(a interface{}, c interface{}) int {
	av, cv := a.(bool), c.(bool)
	if av == cv {
		return 0
	} else if !av {
		return -1
	}
	return 1
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Name returns a unique name for this column type
func (b *Int32ColumnType) Name() string {
	return "int32"
}

// ToString produces a string representation of an Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Cast converts a literal to an int32
func (b *Int32ColumnType) Cast(v interface{}) (interface{}, error) {
	i, err := castToInt64(v)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %#v to int32", v)
	}
	return int32(i), nil
}

// Compare orders two non-nil int32 values
func (b *Int32ColumnType) Compare(a interface{}, c interface{}) int {
	av, cv := a.(int32), c.(int32)
	switch {
	case av < cv:
		return -1
	case av > cv:
		return 1
	default:
		return 0
	}
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns a unique name for this column type
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Cast converts a literal to an int64
func (b *Int64ColumnType) Cast(v interface{}) (interface{}, error) {
	i, err := castToInt64(v)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %#v to int64", v)
	}
	return i, nil
}

// Compare orders two non-nil int64 values
func (b *Int64ColumnType) Compare(a interface{}, c interface{}) int {
	av, cv := a.(int64), c.(int64)
	switch {
	case av < cv:
		return -1
	case av > cv:
		return 1
	default:
		return 0
	}
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name returns a unique name for this column type
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%g", v.(float64))
}

// Cast converts a literal to a float64
func (b *Float64ColumnType) Cast(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return nil, fmt.Errorf("cannot cast %#v to float64", v)
	}
}

// Compare orders two non-nil float64 values, with NaN after everything else
func (b *Float64ColumnType) Compare(a interface{}, c interface{}) int {
	av, cv := a.(float64), c.(float64)
	switch {
	case math.IsNaN(av) && math.IsNaN(cv):
		return 0
	case math.IsNaN(av):
		return 1
	case math.IsNaN(cv):
		return -1
	case av < cv:
		return -1
	case av > cv:
		return 1
	default:
		return 0
	}
}

// StringColumnType is a column type which stores a variable-length string value
type StringColumnType struct{}

// Name returns a unique name for this column type
func (b *StringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// Cast converts a literal to a string
func (b *StringColumnType) Cast(v interface{}) (interface{}, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("cannot cast %#v to string", v)
}

// Compare orders two non-nil string values lexicographically
func (b *StringColumnType) Compare(a interface{}, c interface{}) int {
	return strings.Compare(a.(string), c.(string))
}

// TimeColumnType is a column type which stores a time.Time value
type TimeColumnType struct{}

// Name returns a unique name for this column type
func (b *TimeColumnType) Name() string {
	return "time"
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(time.RFC3339Nano)
}

// Cast converts a literal to a time.Time. RFC3339 strings are accepted.
func (b *TimeColumnType) Cast(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %#v to time: %w", v, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("cannot cast %#v to time", v)
	}
}

// Compare orders two non-nil time.Time values chronologically
func (b *TimeColumnType) Compare(a interface{}, c interface{}) int {
	av, cv := a.(time.Time), c.(time.Time)
	switch {
	case av.Before(cv):
		return -1
	case av.After(cv):
		return 1
	default:
		return 0
	}
}

func castToInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint32:
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%g is not integral", t)
		}
		return int64(t), nil
	default:
		return 0, fmt.Errorf("%#v is not an integer", v)
	}
}
