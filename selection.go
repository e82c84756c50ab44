package koalas

import (
	kerrors "github.com/rising-star92/databricks-koalas/errors"
)

type rowSelectorKind int

const (
	rowSelectorInvalid rowSelectorKind = iota
	rowSelectorAll
	rowSelectorRange
	rowSelectorLabels
	rowSelectorScalar
	rowSelectorPredicate
)

// RowSelector is a tagged variant describing the row side of a selection:
// everything, an inclusive label range, an explicit label list, a bare
// scalar label, or a predicate. Construct values with AllRows, LabelRange,
// SteppedLabelRange, Labels, Label or Where.
type RowSelector struct {
	kind              rowSelectorKind
	start, stop       interface{}
	hasStart, hasStop bool
	step              int
	labels            []interface{}
	pred              FilterOperation
}

// AllRows selects every row
func AllRows() RowSelector {
	return RowSelector{kind: rowSelectorAll}
}

// LabelRange selects rows whose index label lies between start and stop,
// inclusive. A nil bound is open.
func LabelRange(start, stop interface{}) RowSelector {
	return RowSelector{
		kind:     rowSelectorRange,
		start:    start,
		stop:     stop,
		hasStart: start != nil,
		hasStop:  stop != nil,
	}
}

// SteppedLabelRange is a label range with a step. It exists so callers can
// express the construct; the locator rejects it as unsupported.
func SteppedLabelRange(start, stop interface{}, step int) RowSelector {
	sel := LabelRange(start, stop)
	sel.step = step
	return sel
}

// Labels selects rows whose index label is among the given labels. An empty
// list selects no rows.
func Labels(labels ...interface{}) RowSelector {
	if labels == nil {
		labels = []interface{}{}
	}
	return RowSelector{kind: rowSelectorLabels, labels: labels}
}

// Label is a bare scalar row label. The locator rejects it as unsupported,
// since a scalar is ambiguous with position-based selection.
func Label(label interface{}) RowSelector {
	return RowSelector{kind: rowSelectorScalar, labels: []interface{}{label}}
}

// Where selects rows matching a predicate aligned to the frame
func Where(fn FilterOperation) RowSelector {
	return RowSelector{kind: rowSelectorPredicate, pred: fn}
}

func (sel RowSelector) wholeRows() bool {
	switch sel.kind {
	case rowSelectorAll:
		return true
	case rowSelectorRange:
		return !sel.hasStart && !sel.hasStop && sel.step == 0
	default:
		return false
	}
}

type columnSelectorKind int

const (
	columnSelectorInvalid columnSelectorKind = iota
	columnSelectorAll
	columnSelectorSingle
	columnSelectorList
)

// ColumnSelector is a tagged variant describing the column side of a
// selection: everything, one column, or an explicit list. Construct values
// with AllColumns, Column or Columns.
type ColumnSelector struct {
	kind  columnSelectorKind
	names []string
}

// AllColumns selects every current data column
func AllColumns() ColumnSelector {
	return ColumnSelector{kind: columnSelectorAll}
}

// Column narrows the selection to one column; the result is returned as a
// single-column, Series-like Frame
func Column(name string) ColumnSelector {
	return ColumnSelector{kind: columnSelectorSingle, names: []string{name}}
}

// Columns projects to exactly the given columns, in order
func Columns(names ...string) ColumnSelector {
	if names == nil {
		names = []string{}
	}
	return ColumnSelector{kind: columnSelectorList, names: names}
}

// Loc translates a (row-selector, column-selector) pair into plan filter and
// projection operations without losing index identity, returning a new
// Frame. Selecting a single column yields a Series-like Frame.
func (f *Frame) Loc(rows RowSelector, cols ColumnSelector) (*Frame, error) {
	filtered, err := f.applyRowSelector(rows)
	if err != nil {
		return nil, err
	}

	var dataCols []string
	single := false
	switch cols.kind {
	case columnSelectorAll:
		dataCols = f.meta.DataColumns()
	case columnSelectorSingle:
		dataCols = cols.names
		single = true
	case columnSelectorList:
		dataCols = cols.names
	default:
		return nil, kerrors.IndexingError{Op: "loc", Message: "a column selector is required"}
	}

	schema := f.plan.Schema()
	var missing []string
	for _, c := range dataCols {
		if !schema.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, kerrors.ColumnNotFoundError{Labels: missing}
	}

	exprs := make([]ColumnExpr, 0, len(f.meta.IndexColumns())+len(dataCols))
	for _, ic := range f.meta.IndexColumns() {
		exprs = append(exprs, ColumnExpr{Column: ic.Column})
	}
	for _, c := range dataCols {
		exprs = append(exprs, ColumnExpr{Column: c})
	}
	projected, err := filtered.Select(exprs...)
	if err != nil {
		return nil, kerrors.ColumnNotFoundError{Labels: dataCols}
	}

	opts := []MetadataOption{WithDataColumns(dataCols)}
	if f.meta.HasColumnLabels() {
		if cols.kind == columnSelectorAll {
			opts = append(opts, WithColumnLabels(f.meta.ColumnLabels()))
		} else {
			opts = append(opts, WithColumnLabels(f.labelsFor(dataCols)))
		}
	}
	meta, err := f.meta.Copy(opts...)
	if err != nil {
		return nil, err
	}
	if single {
		return newSeries(projected, meta, dataCols[0])
	}
	return NewFrame(projected, meta)
}

// applyRowSelector lowers a row selector onto this Frame's plan, returning
// the filtered plan
func (f *Frame) applyRowSelector(rows RowSelector) (Plan, error) {
	switch rows.kind {
	case rowSelectorAll:
		return f.plan, nil
	case rowSelectorPredicate:
		if rows.pred == nil {
			return nil, kerrors.TypeMismatchError{Op: "loc", Message: "row predicate is nil"}
		}
		return f.plan.Filter(rows.pred), nil
	case rowSelectorRange:
		return f.applyRangeSelector(rows)
	case rowSelectorLabels:
		return f.applyLabelsSelector(rows)
	case rowSelectorScalar:
		return nil, kerrors.UnsupportedSelectionError{
			Op:          "loc",
			Construct:   "a scalar row label",
			Alternative: "a single-element label list",
		}
	default:
		return nil, kerrors.IndexingError{Op: "loc", Message: "a row selector is required"}
	}
}

func (f *Frame) applyRangeSelector(rows RowSelector) (Plan, error) {
	if rows.step != 0 {
		return nil, kerrors.UnsupportedSelectionError{
			Op:          "loc",
			Construct:   "a stepped range",
			Alternative: "a contiguous range",
		}
	}
	if !rows.hasStart && !rows.hasStop {
		return f.plan, nil
	}
	indexCols := f.meta.IndexColumns()
	if len(indexCols) == 0 {
		return nil, kerrors.UnsupportedSelectionError{
			Op:        "loc",
			Construct: "a label range on a frame without an index",
		}
	}
	if len(indexCols) > 1 {
		return nil, kerrors.UnsupportedSelectionError{
			Op:          "loc",
			Construct:   "a label range over a multi-column index",
			Alternative: "a predicate",
		}
	}
	indexCol := indexCols[0].Column
	colType, err := f.DeclaredType(indexCol)
	if err != nil {
		return nil, err
	}
	var start, stop interface{}
	if rows.hasStart {
		if start, err = colType.Cast(rows.start); err != nil {
			return nil, kerrors.TypeMismatchError{Op: "loc", Message: err.Error()}
		}
	}
	if rows.hasStop {
		if stop, err = colType.Cast(rows.stop); err != nil {
			return nil, kerrors.TypeMismatchError{Op: "loc", Message: err.Error()}
		}
	}
	hasStart, hasStop := rows.hasStart, rows.hasStop
	return f.plan.Filter(func(row Row) (bool, error) {
		if row.IsNil(indexCol) {
			return false, nil
		}
		v, err := row.Get(indexCol)
		if err != nil {
			return false, err
		}
		if hasStart && colType.Compare(v, start) < 0 {
			return false, nil
		}
		if hasStop && colType.Compare(v, stop) > 0 {
			return false, nil
		}
		return true, nil
	}), nil
}

func (f *Frame) applyLabelsSelector(rows RowSelector) (Plan, error) {
	if len(rows.labels) == 0 {
		return f.plan.Filter(func(Row) (bool, error) { return false, nil }), nil
	}
	indexCols := f.meta.IndexColumns()
	if len(indexCols) == 0 {
		return nil, kerrors.UnsupportedSelectionError{
			Op:        "loc",
			Construct: "a label list on a frame without an index",
		}
	}
	if len(indexCols) > 1 {
		return nil, kerrors.UnsupportedSelectionError{
			Op:          "loc",
			Construct:   "a label list over a multi-column index",
			Alternative: "a predicate",
		}
	}
	indexCol := indexCols[0].Column
	colType, err := f.DeclaredType(indexCol)
	if err != nil {
		return nil, err
	}
	labels := make([]interface{}, len(rows.labels))
	for i, l := range rows.labels {
		if labels[i], err = colType.Cast(l); err != nil {
			return nil, kerrors.TypeMismatchError{Op: "loc", Message: err.Error()}
		}
	}
	return f.plan.Filter(func(row Row) (bool, error) {
		if row.IsNil(indexCol) {
			return false, nil
		}
		v, err := row.Get(indexCol)
		if err != nil {
			return false, err
		}
		for _, l := range labels {
			if colType.Compare(v, l) == 0 {
				return true, nil
			}
		}
		return false, nil
	}), nil
}

// labelsFor returns the hierarchical labels of the given data columns, in
// order, falling back to a flat label for columns without one
func (f *Frame) labelsFor(dataCols []string) [][]string {
	parentCols := f.meta.DataColumns()
	parentLabels := f.meta.ColumnLabels()
	byName := make(map[string][]string, len(parentCols))
	for i, c := range parentCols {
		if i < len(parentLabels) {
			byName[c] = parentLabels[i]
		}
	}
	labels := make([][]string, len(dataCols))
	for i, c := range dataCols {
		if l, ok := byName[c]; ok {
			labels[i] = l
		} else {
			labels[i] = []string{c}
		}
	}
	return labels
}

// Assignable is the value side of a whole-row column assignment: either a
// ColumnValue computed against the parent frame, or a single-column Frame
// anchored to the same rows.
type Assignable interface {
	assignable()
}

// ColumnValue describes a computed replacement column for assignment
type ColumnValue struct {
	Type ColumnType
	Fn   ColumnOperation
}

func (ColumnValue) assignable() {}

func (*Frame) assignable() {}

// LocAssign logically replaces (or adds) one data column, producing a new
// Frame whose other columns are untouched. Only the whole-row selector is
// accepted for the row side; the value must be a ColumnValue or a
// single-column Frame anchored to the same rows.
func (f *Frame) LocAssign(rows RowSelector, colName string, value Assignable) (*Frame, error) {
	if !rows.wholeRows() {
		return nil, kerrors.UnsupportedSelectionError{
			Op:          "loc assignment",
			Construct:   "a partial-row assignment",
			Alternative: "the whole-row selector",
		}
	}
	if colName == "" {
		return nil, kerrors.TypeMismatchError{Op: "loc assignment", Message: "only column names can be assigned"}
	}
	switch v := value.(type) {
	case ColumnValue:
		return f.assignColumnValue(colName, v)
	case *Frame:
		return f.assignFrame(colName, v)
	default:
		return nil, kerrors.TypeMismatchError{
			Op:      "loc assignment",
			Message: "only a column value or a frame with a single column can be assigned",
		}
	}
}

func (f *Frame) assignColumnValue(colName string, value ColumnValue) (*Frame, error) {
	if value.Type == nil || value.Fn == nil {
		return nil, kerrors.TypeMismatchError{
			Op:      "loc assignment",
			Message: "a column value needs both a type and a compute function",
		}
	}
	next := f.plan.WithColumn(colName, value.Type, value.Fn)
	meta, err := f.metadataWithColumn(colName)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, meta)
}

func (f *Frame) assignFrame(colName string, value *Frame) (*Frame, error) {
	if len(value.meta.DataColumns()) != 1 {
		return nil, kerrors.TypeMismatchError{
			Op:      "loc assignment",
			Message: "only a frame with a single column can be assigned",
		}
	}
	if value.plan.RootID() != f.plan.RootID() {
		return nil, kerrors.TypeMismatchError{
			Op:      "loc assignment",
			Message: "value frame is not anchored to the same rows as this frame",
		}
	}
	src := value.meta.DataColumns()[0]
	if !f.plan.Schema().HasColumn(src) {
		return nil, kerrors.ColumnNotFoundError{Labels: []string{src}}
	}
	exprs := make([]ColumnExpr, 0, f.plan.Schema().NumColumns()+1)
	for _, ic := range f.meta.IndexColumns() {
		exprs = append(exprs, ColumnExpr{Column: ic.Column})
	}
	replaced := false
	for _, c := range f.meta.DataColumns() {
		if c == colName {
			exprs = append(exprs, ColumnExpr{Column: src, As: colName})
			replaced = true
		} else {
			exprs = append(exprs, ColumnExpr{Column: c})
		}
	}
	if !replaced {
		exprs = append(exprs, ColumnExpr{Column: src, As: colName})
	}
	next, err := f.plan.Select(exprs...)
	if err != nil {
		return nil, kerrors.ColumnNotFoundError{Labels: []string{src}}
	}
	meta, err := f.metadataWithColumn(colName)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, meta)
}

// metadataWithColumn returns this Frame's Metadata with colName appended to
// the data columns if not already present
func (f *Frame) metadataWithColumn(colName string) (Metadata, error) {
	if f.meta.HasDataColumn(colName) {
		return f.meta, nil
	}
	dataCols := append(f.meta.DataColumns(), colName)
	opts := []MetadataOption{WithDataColumns(dataCols)}
	if f.meta.HasColumnLabels() {
		labels := append(f.meta.ColumnLabels(), []string{colName})
		opts = append(opts, WithColumnLabels(labels))
	}
	return f.meta.Copy(opts...)
}
