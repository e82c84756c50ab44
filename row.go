package koalas

import (
	"fmt"
	"strings"
	"time"
)

// Row is a representation of a single row of columnar data, along with a
// reference to the Schema for that row. In practice, users of Row call its
// getter and setter methods to retrieve, manipulate and store data.
type Row interface {
	Schema() Schema                                     // Schema returns the schema for this row
	ToString() string                                   // ToString returns a string representation of this row
	IsNil(colName string) bool                          // IsNil returns true iff the given column value is nil in this row
	SetNil(colName string) error                        // SetNil sets the given column value to nil within this row
	Get(colName string) (col interface{}, err error)    // Get returns the value of any column as an interface{}, if it exists
	GetBool(colName string) (col bool, err error)       // GetBool retrieves a single bool from the column with the given name
	GetInt32(colName string) (col int32, err error)     // GetInt32 retrieves a single int32 from the column with the given name
	GetInt64(colName string) (col int64, err error)     // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat64(colName string) (col float64, err error) // GetFloat64 retrieves a single float64 from the column with the given name
	GetString(colName string) (col string, err error)   // GetString retrieves a single string from the column with the given name
	GetTime(colName string) (col time.Time, err error)  // GetTime retrieves a single time.Time from the column with the given name
	Set(colName string, value interface{}) error        // Set modifies the value of any column within this row
}

type rowImpl struct {
	values []interface{}
	schema Schema
}

// CreateRow builds a Row from a value slice aligned with the given Schema.
// The slice is retained, not copied.
func CreateRow(schema Schema, values []interface{}) Row {
	return &rowImpl{values: values, schema: schema}
}

// Schema returns the schema for this row
func (r *rowImpl) Schema() Schema {
	return r.schema
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, colType ColumnType) error {
		idx, _ := r.schema.ColumnIndex(name)
		val := "nil"
		if r.values[idx] != nil {
			val = colType.ToString(r.values[idx])
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If the
// column does not exist, this function returns false.
func (r *rowImpl) IsNil(colName string) bool {
	idx, err := r.schema.ColumnIndex(colName)
	if err != nil {
		return false
	}
	return r.values[idx] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	idx, err := r.schema.ColumnIndex(colName)
	if err != nil {
		return err
	}
	r.values[idx] = nil
	return nil
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (interface{}, error) {
	idx, err := r.schema.ColumnIndex(colName)
	if err != nil {
		return nil, err
	}
	return r.values[idx], nil
}

// GetBool retrieves a single bool from the column with the given name
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, err := r.Get(colName)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("column %s is not a bool", colName)
	}
	return b, nil
}

// GetInt32 retrieves a single int32 from the column with the given name
func (r *rowImpl) GetInt32(colName string) (int32, error) {
	v, err := r.Get(colName)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int32)
	if !ok {
		return 0, fmt.Errorf("column %s is not an int32", colName)
	}
	return i, nil
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, err := r.Get(colName)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("column %s is not an int64", colName)
	}
	return i, nil
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, err := r.Get(colName)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("column %s is not a float64", colName)
	}
	return f, nil
}

// GetString retrieves a single string from the column with the given name
func (r *rowImpl) GetString(colName string) (string, error) {
	v, err := r.Get(colName)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("column %s is not a string", colName)
	}
	return s, nil
}

// GetTime retrieves a single time.Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (time.Time, error) {
	v, err := r.Get(colName)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("column %s is not a time", colName)
	}
	return t, nil
}

// Set modifies the value of any column within this row
func (r *rowImpl) Set(colName string, value interface{}) error {
	idx, err := r.schema.ColumnIndex(colName)
	if err != nil {
		return err
	}
	r.values[idx] = value
	return nil
}
