package koalas

import (
	"fmt"
	"reflect"
	"strings"
)

// Schema is an ordered mapping from column names to column types, describing
// the output layout of a Plan. Column order is semantic: projections define
// the order in which a Frame presents its columns. Schemas are copy-on-write:
// every mutator returns a new Schema, leaving the receiver untouched.
type Schema interface {
	Clone() Schema
	Equals(otherSchema Schema) error
	NumColumns() int
	ColumnNames() []string
	ColumnTypes() []ColumnType
	HasColumn(colName string) bool
	ColumnIndex(colName string) (int, error)
	GetColumnType(colName string) (ColumnType, error)
	CreateColumn(colName string, colType ColumnType) (Schema, error)
	RenameColumn(oldName string, newName string) (Schema, error)
	RemoveColumn(colName string) (Schema, bool)
	Select(colNames ...string) (Schema, error)
	ForEachColumn(fn func(name string, colType ColumnType) error) error
	ToString() string
}

type schemaColumn struct {
	name    string
	colType ColumnType
}

type schemaImpl struct {
	cols   []schemaColumn
	byName map[string]int
}

// CreateSchema is a factory for Schemas
func CreateSchema() Schema {
	return &schemaImpl{byName: make(map[string]int)}
}

// Clone returns a copy of this Schema
func (s *schemaImpl) Clone() Schema {
	cols := make([]schemaColumn, len(s.cols))
	copy(cols, s.cols)
	byName := make(map[string]int, len(s.byName))
	for k, v := range s.byName {
		byName[k] = v
	}
	return &schemaImpl{cols: cols, byName: byName}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schemaImpl) Equals(otherSchema Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("schemas have unequal numbers of columns")
	}
	otherNames := otherSchema.ColumnNames()
	otherTypes := otherSchema.ColumnTypes()
	for i, col := range s.cols {
		if col.name != otherNames[i] {
			return fmt.Errorf("column %d is named %s, not %s", i, otherNames[i], col.name)
		}
		if reflect.TypeOf(col.colType) != reflect.TypeOf(otherTypes[i]) {
			return fmt.Errorf("column %s types do not match", col.name)
		}
	}
	return nil
}

// NumColumns returns the number of columns in this Schema
func (s *schemaImpl) NumColumns() int {
	return len(s.cols)
}

// ColumnNames returns the names of the columns in this Schema, in order
func (s *schemaImpl) ColumnNames() []string {
	names := make([]string, len(s.cols))
	for i, col := range s.cols {
		names[i] = col.name
	}
	return names
}

// ColumnTypes returns the types of the columns in this Schema, in order
func (s *schemaImpl) ColumnTypes() []ColumnType {
	types := make([]ColumnType, len(s.cols))
	for i, col := range s.cols {
		types[i] = col.colType
	}
	return types
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *schemaImpl) HasColumn(colName string) bool {
	_, ok := s.byName[colName]
	return ok
}

// ColumnIndex returns the position of the column with the given name
func (s *schemaImpl) ColumnIndex(colName string) (int, error) {
	idx, ok := s.byName[colName]
	if !ok {
		return -1, fmt.Errorf("no column named %s in schema", colName)
	}
	return idx, nil
}

// GetColumnType returns the type of the column with the given name
func (s *schemaImpl) GetColumnType(colName string) (ColumnType, error) {
	idx, ok := s.byName[colName]
	if !ok {
		return nil, fmt.Errorf("no column named %s in schema", colName)
	}
	return s.cols[idx].colType, nil
}

// CreateColumn returns a new Schema with an additional column appended
func (s *schemaImpl) CreateColumn(colName string, colType ColumnType) (Schema, error) {
	if s.HasColumn(colName) {
		return nil, fmt.Errorf("column %s already exists in schema", colName)
	}
	next := s.Clone().(*schemaImpl)
	next.byName[colName] = len(next.cols)
	next.cols = append(next.cols, schemaColumn{name: colName, colType: colType})
	return next, nil
}

// RenameColumn returns a new Schema with one column renamed in place
func (s *schemaImpl) RenameColumn(oldName string, newName string) (Schema, error) {
	idx, ok := s.byName[oldName]
	if !ok {
		return nil, fmt.Errorf("no column named %s in schema", oldName)
	}
	if oldName != newName && s.HasColumn(newName) {
		return nil, fmt.Errorf("column %s already exists in schema", newName)
	}
	next := s.Clone().(*schemaImpl)
	delete(next.byName, oldName)
	next.byName[newName] = idx
	next.cols[idx].name = newName
	return next, nil
}

// RemoveColumn returns a new Schema with the given column removed, along with
// whether the column existed
func (s *schemaImpl) RemoveColumn(colName string) (Schema, bool) {
	idx, ok := s.byName[colName]
	if !ok {
		return s, false
	}
	next := &schemaImpl{byName: make(map[string]int, len(s.cols)-1)}
	for i, col := range s.cols {
		if i == idx {
			continue
		}
		next.byName[col.name] = len(next.cols)
		next.cols = append(next.cols, col)
	}
	return next, true
}

// Select returns a new Schema containing exactly the given columns, in the
// given order
func (s *schemaImpl) Select(colNames ...string) (Schema, error) {
	next := &schemaImpl{byName: make(map[string]int, len(colNames))}
	for _, name := range colNames {
		idx, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("no column named %s in schema", name)
		}
		if _, dup := next.byName[name]; dup {
			return nil, fmt.Errorf("column %s selected twice", name)
		}
		next.byName[name] = len(next.cols)
		next.cols = append(next.cols, s.cols[idx])
	}
	return next, nil
}

// ForEachColumn runs a function for each column in this Schema, in order
func (s *schemaImpl) ForEachColumn(fn func(name string, colType ColumnType) error) error {
	for _, col := range s.cols {
		if err := fn(col.name, col.colType); err != nil {
			return err
		}
	}
	return nil
}

// ToString returns a string representation of this Schema
func (s *schemaImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	for i, col := range s.cols {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "%s: %s", col.name, col.colType.Name())
	}
	fmt.Fprint(&res, "}")
	return res.String()
}
