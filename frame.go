package koalas

import (
	"context"
	"fmt"

	kerrors "github.com/rising-star92/databricks-koalas/errors"
)

// Frame pairs one plan snapshot with the Metadata describing its output
// columns. Frames are logically immutable: every transformation returns a
// new Frame, and plan and metadata are only ever rewritten together.
type Frame struct {
	plan Plan
	meta Metadata
	name string // set when this Frame is a single-column, Series-like projection
}

// NewFrame pairs a plan with its Metadata, verifying that every column the
// Metadata names exists in the plan's output schema
func NewFrame(plan Plan, meta Metadata) (*Frame, error) {
	schema := plan.Schema()
	for _, ic := range meta.IndexColumns() {
		if !schema.HasColumn(ic.Column) {
			return nil, fmt.Errorf("metadata index column %s is not in the plan schema", ic.Column)
		}
	}
	for _, c := range meta.DataColumns() {
		if !schema.HasColumn(c) {
			return nil, fmt.Errorf("metadata data column %s is not in the plan schema", c)
		}
	}
	return &Frame{plan: plan, meta: meta}, nil
}

// newSeries pairs a single-data-column plan with its Metadata, tagging the
// result with the column's name
func newSeries(plan Plan, meta Metadata, name string) (*Frame, error) {
	f, err := NewFrame(plan, meta)
	if err != nil {
		return nil, err
	}
	f.name = name
	return f, nil
}

// Plan returns the plan snapshot this Frame is attached to
func (f *Frame) Plan() Plan {
	return f.plan
}

// Metadata returns this Frame's Metadata
func (f *Frame) Metadata() Metadata {
	return f.meta
}

// Schema returns the output schema of this Frame's plan
func (f *Frame) Schema() Schema {
	return f.plan.Schema()
}

// IsSeries returns true iff this Frame is a single-column, Series-like
// projection
func (f *Frame) IsSeries() bool {
	return f.name != ""
}

// Name returns the column name of a Series-like Frame, or the empty string
func (f *Frame) Name() string {
	return f.name
}

// DeclaredType returns the physical type of a column in this Frame's plan.
// Requesting an unknown column is a lookup failure, never silently ignored.
func (f *Frame) DeclaredType(colName string) (ColumnType, error) {
	colType, err := f.plan.Schema().GetColumnType(colName)
	if err != nil {
		return nil, kerrors.ColumnNotFoundError{Labels: []string{colName}}
	}
	return colType, nil
}

// Collect executes this Frame's plan and materializes its rows. This is the
// only call that blocks on the engine.
func (f *Frame) Collect(ctx context.Context) ([]Row, error) {
	return f.plan.Collect(ctx)
}

// SortIndex returns a new Frame ordered by this Frame's index columns,
// ascending
func (f *Frame) SortIndex() (*Frame, error) {
	indexCols := f.meta.IndexColumnNames()
	if len(indexCols) == 0 {
		return nil, kerrors.IndexingError{Op: "sort_index", Message: "frame has no index columns"}
	}
	sorted, err := f.plan.Sort(indexCols...)
	if err != nil {
		return nil, err
	}
	next := &Frame{plan: sorted, meta: f.meta, name: f.name}
	return next, nil
}
