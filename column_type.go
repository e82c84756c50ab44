package koalas

// ColumnType is an interface which is implemented to define a supported
// column type. Koalas provides built-in types for the primitives a plan
// can compute over.
type ColumnType interface {
	Name() string                             // returns a unique name for this column type
	ToString(v interface{}) string            // produces a string representation of a value of this type
	Cast(v interface{}) (interface{}, error)  // converts a literal to this type, or fails
	Compare(a interface{}, b interface{}) int // orders two non-nil values of this type
}

// IsNumeric returns true iff the given ColumnType stores a numeric value
func IsNumeric(colType ColumnType) bool {
	switch colType.(type) {
	case *Int32ColumnType, *Int64ColumnType, *Float64ColumnType:
		return true
	default:
		return false
	}
}

// IsFloating returns true iff the given ColumnType stores a floating-point
// value, which a plan may populate with NaN
func IsFloating(colType ColumnType) bool {
	_, ok := colType.(*Float64ColumnType)
	return ok
}

// IsBoolean returns true iff the given ColumnType stores a boolean value
func IsBoolean(colType ColumnType) bool {
	_, ok := colType.(*BoolColumnType)
	return ok
}
