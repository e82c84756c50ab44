package koalas

import "fmt"

// LocalFrame is a small, fully-materialized frame handed to grouped-map user
// functions. It carries one physical group's rows together with the parent
// frame's reconstructed index columns, because group-local computation
// otherwise operates on plain row data with no index concept.
type LocalFrame struct {
	schema       Schema
	rows         [][]interface{}
	indexColumns []IndexColumn
}

// CreateLocalFrame builds an empty LocalFrame with the given schema
func CreateLocalFrame(schema Schema) *LocalFrame {
	return &LocalFrame{schema: schema}
}

// Schema returns the schema of this LocalFrame
func (lf *LocalFrame) Schema() Schema {
	return lf.schema
}

// IndexColumns returns the index columns reconstructed for this LocalFrame,
// if any
func (lf *LocalFrame) IndexColumns() []IndexColumn {
	return copyIndexColumns(lf.indexColumns)
}

// NumRows returns the number of rows in this LocalFrame
func (lf *LocalFrame) NumRows() int {
	return len(lf.rows)
}

// Row returns a view onto the ith row of this LocalFrame
func (lf *LocalFrame) Row(i int) Row {
	return CreateRow(lf.schema, lf.rows[i])
}

// RowAt returns the backing value slice of the ith row, aligned with the
// schema's column order. The slice is shared, not copied.
func (lf *LocalFrame) RowAt(i int) []interface{} {
	return lf.rows[i]
}

// AppendRow appends a value slice aligned with the schema's column order
func (lf *LocalFrame) AppendRow(values []interface{}) error {
	if len(values) != lf.schema.NumColumns() {
		return fmt.Errorf("row has %d values for %d columns", len(values), lf.schema.NumColumns())
	}
	lf.rows = append(lf.rows, values)
	return nil
}

// Append appends a row given as individual column values
func (lf *LocalFrame) Append(values ...interface{}) error {
	return lf.AppendRow(values)
}

// Values returns the values of one column across all rows
func (lf *LocalFrame) Values(colName string) ([]interface{}, error) {
	idx, err := lf.schema.ColumnIndex(colName)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(lf.rows))
	for i, r := range lf.rows {
		out[i] = r[idx]
	}
	return out, nil
}

// ForEachRow runs a function for each row in this LocalFrame, in order
func (lf *LocalFrame) ForEachRow(fn func(row Row) error) error {
	for _, values := range lf.rows {
		if err := fn(CreateRow(lf.schema, values)); err != nil {
			return err
		}
	}
	return nil
}

// withIndexColumns tags this LocalFrame with reconstructed index columns
func (lf *LocalFrame) withIndexColumns(indexColumns []IndexColumn) *LocalFrame {
	lf.indexColumns = copyIndexColumns(indexColumns)
	return lf
}

// project returns a LocalFrame narrowed to the given columns, in order
func (lf *LocalFrame) project(colNames ...string) (*LocalFrame, error) {
	next, err := lf.schema.Select(colNames...)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(colNames))
	for i, name := range colNames {
		indices[i], _ = lf.schema.ColumnIndex(name)
	}
	out := CreateLocalFrame(next)
	for _, values := range lf.rows {
		projected := make([]interface{}, len(indices))
		for i, idx := range indices {
			projected[i] = values[idx]
		}
		out.rows = append(out.rows, projected)
	}
	return out, nil
}

// renamePositional renames this LocalFrame's columns, in order, to the given
// names. Used to map grouped-map output onto a declared schema.
func (lf *LocalFrame) renamePositional(colNames []string, colTypes []ColumnType) (*LocalFrame, error) {
	if len(colNames) != lf.schema.NumColumns() {
		return nil, fmt.Errorf(
			"grouped function returned %d columns, declared schema has %d",
			lf.schema.NumColumns(), len(colNames))
	}
	renamed := CreateSchema()
	for i, name := range colNames {
		var err error
		renamed, err = renamed.CreateColumn(name, colTypes[i])
		if err != nil {
			return nil, err
		}
	}
	return &LocalFrame{schema: renamed, rows: lf.rows, indexColumns: lf.indexColumns}, nil
}
