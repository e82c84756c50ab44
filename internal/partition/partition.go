// Package partition implements the engine's in-memory unit of columnar
// data: a bounded slice of rows sharing one schema, with operable methods
// used by plan tasks.
package partition

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	koalas "github.com/rising-star92/databricks-koalas"
)

// Partition is a horizontal slice of rows sharing one Schema
type Partition struct {
	schema koalas.Schema
	rows   [][]interface{}
}

// CreatePartition creates an empty Partition with the given schema
func CreatePartition(schema koalas.Schema) *Partition {
	return &Partition{schema: schema}
}

// Schema returns the Schema of this Partition
func (p *Partition) Schema() koalas.Schema {
	return p.schema
}

// NumRows returns the number of rows in this Partition
func (p *Partition) NumRows() int {
	return len(p.rows)
}

// GetRow returns a Row view onto the ith row of this Partition
func (p *Partition) GetRow(i int) koalas.Row {
	return koalas.CreateRow(p.schema, p.rows[i])
}

// GetRowValues returns the backing value slice of the ith row. The slice is
// shared, not copied.
func (p *Partition) GetRowValues(i int) []interface{} {
	return p.rows[i]
}

// AppendValues appends a value slice aligned with this Partition's schema
func (p *Partition) AppendValues(values []interface{}) error {
	if len(values) != p.schema.NumColumns() {
		return fmt.Errorf("row has %d values for %d columns", len(values), p.schema.NumColumns())
	}
	p.rows = append(p.rows, values)
	return nil
}

// ForEachRow runs a function for each row in this Partition, in order
func (p *Partition) ForEachRow(fn func(row koalas.Row) error) error {
	for _, values := range p.rows {
		if err := fn(koalas.CreateRow(p.schema, values)); err != nil {
			return err
		}
	}
	return nil
}

// FilterRows creates a new Partition containing only rows matching fn.
// Row-level errors are collected rather than aborting the whole partition.
func (p *Partition) FilterRows(fn koalas.FilterOperation) (*Partition, error) {
	result := CreatePartition(p.schema)
	var multierr *multierror.Error
	for _, values := range p.rows {
		keep, err := fn(koalas.CreateRow(p.schema, values))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if keep {
			result.rows = append(result.rows, values)
		}
	}
	return result, multierr.ErrorOrNil()
}

// SelectRows creates a new Partition projected onto the given column
// expressions. The same source column may appear under multiple output
// names.
func (p *Partition) SelectRows(target koalas.Schema, exprs []koalas.ColumnExpr) (*Partition, error) {
	indices := make([]int, len(exprs))
	for i, expr := range exprs {
		idx, err := p.schema.ColumnIndex(expr.Column)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}
	result := CreatePartition(target)
	for _, values := range p.rows {
		projected := make([]interface{}, len(indices))
		for i, idx := range indices {
			projected[i] = values[idx]
		}
		result.rows = append(result.rows, projected)
	}
	return result, nil
}

// WithColumnRows creates a new Partition with one column computed by fn,
// either replacing an existing column in place or appended at the end.
// Row-level errors are collected rather than aborting the whole partition.
func (p *Partition) WithColumnRows(target koalas.Schema, colName string, fn koalas.ColumnOperation) (*Partition, error) {
	replaceIdx, err := p.schema.ColumnIndex(colName)
	appendCol := err != nil
	result := CreatePartition(target)
	var multierr *multierror.Error
	for _, values := range p.rows {
		computed, err := fn(koalas.CreateRow(p.schema, values))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		next := make([]interface{}, 0, target.NumColumns())
		next = append(next, values...)
		if appendCol {
			next = append(next, computed)
		} else {
			next[replaceIdx] = computed
		}
		result.rows = append(result.rows, next)
	}
	return result, multierr.ErrorOrNil()
}
