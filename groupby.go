package koalas

import (
	"fmt"

	kerrors "github.com/rising-star92/databricks-koalas/errors"
)

// aggFuncs maps user-facing aggregate function names to engine operations.
// nunique lowers to a distinct count; everything else lowers to the named
// aggregate applied to the column.
var aggFuncs = map[string]AggregateOp{
	"count":   AggCount,
	"sum":     AggSum,
	"mean":    AggMean,
	"min":     AggMin,
	"max":     AggMax,
	"first":   AggFirst,
	"last":    AggLast,
	"std":     AggStdDev,
	"var":     AggVariance,
	"nunique": AggCountDistinct,
}

// ColumnAggs requests one or more aggregate functions for a source column
type ColumnAggs struct {
	Column string
	Funcs  []string
}

// Agg is a convenience constructor for one AggSpec entry
func Agg(column string, funcs ...string) ColumnAggs {
	return ColumnAggs{Column: column, Funcs: funcs}
}

// AggSpec is an ordered mapping from source data-column name to one or more
// named aggregate functions. Order defines output column order.
type AggSpec []ColumnAggs

// GroupBy binds a parent Frame to an ordered set of grouping columns.
// Terminal operations each construct a brand-new Frame and never alter the
// GroupBy, so one GroupBy value may be reused for multiple terminal calls.
type GroupBy struct {
	parent   *Frame
	keys     []string
	explicit bool
	aggCols  []string
}

// GroupBy groups this Frame by the given data columns, in order
func (f *Frame) GroupBy(cols ...string) (*GroupBy, error) {
	if len(cols) == 0 {
		return nil, kerrors.ConfigurationError{Op: "groupby", Message: "at least one grouping column is required"}
	}
	schema := f.plan.Schema()
	var missing []string
	for _, c := range cols {
		if !schema.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, kerrors.ColumnNotFoundError{Labels: missing}
	}
	return &GroupBy{parent: f, keys: copyStrings(cols)}, nil
}

// Narrow returns a new GroupBy restricted to the given aggregation columns.
// The receiver is unchanged.
func (g *GroupBy) Narrow(cols ...string) (*GroupBy, error) {
	if len(cols) == 0 {
		return nil, kerrors.ConfigurationError{Op: "groupby", Message: "at least one aggregation column is required"}
	}
	var missing []string
	for _, c := range cols {
		if !g.parent.meta.HasDataColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, kerrors.ColumnNotFoundError{Labels: missing}
	}
	return &GroupBy{parent: g.parent, keys: g.keys, explicit: true, aggCols: copyStrings(cols)}, nil
}

// aggColumns returns the columns terminal operations aggregate over. When
// the GroupBy was not explicitly narrowed this is recomputed from the
// parent's current data columns, minus the grouping columns.
func (g *GroupBy) aggColumns() []string {
	if g.explicit {
		return copyStrings(g.aggCols)
	}
	keySet := make(map[string]bool, len(g.keys))
	for _, k := range g.keys {
		keySet[k] = true
	}
	var cols []string
	for _, c := range g.parent.meta.DataColumns() {
		if !keySet[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// keyColumns binds each grouping column to its synthesized key-column alias
func (g *GroupBy) keyColumns() []KeyColumn {
	keys := make([]KeyColumn, len(g.keys))
	for i, k := range g.keys {
		keys[i] = KeyColumn{Column: k, As: IndexAlias(i)}
	}
	return keys
}

// keyIndexColumns describes the output index formed by the key aliases,
// displaying each level under its original column name
func (g *GroupBy) keyIndexColumns() []IndexColumn {
	keys := g.keyColumns()
	index := make([]IndexColumn, len(keys))
	for i, k := range keys {
		index[i] = IndexColumn{Column: k.As, Name: k.Column}
	}
	return index
}

// Aggregate computes one aggregate expression per requested (column,
// function) pair. When any column requests more than one function, every output
// column carries a two-level (source column, function name) label; otherwise
// output columns keep flat source-column names. The result is grouped by
// key, not necessarily sorted.
func (g *GroupBy) Aggregate(spec AggSpec) (*Frame, error) {
	if len(spec) == 0 {
		return nil, kerrors.ConfigurationError{
			Op:      "aggregate",
			Message: "aggs must be a mapping from column name to aggregate functions",
		}
	}
	schema := g.parent.plan.Schema()
	multi := false
	for _, entry := range spec {
		if entry.Column == "" || len(entry.Funcs) == 0 {
			return nil, kerrors.ConfigurationError{
				Op:      "aggregate",
				Message: "aggs must be a mapping from column name to aggregate functions",
			}
		}
		if !schema.HasColumn(entry.Column) {
			return nil, kerrors.ConfigurationError{
				Op:      "aggregate",
				Message: fmt.Sprintf("column %s does not exist", entry.Column),
			}
		}
		if len(entry.Funcs) > 1 {
			multi = true
		}
	}

	var aggs []Aggregation
	var dataCols []string
	var labels [][]string
	for _, entry := range spec {
		for _, fn := range entry.Funcs {
			op, ok := aggFuncs[fn]
			if !ok {
				return nil, kerrors.ConfigurationError{
					Op:      "aggregate",
					Message: fmt.Sprintf("unknown aggregate function %s", fn),
				}
			}
			name := entry.Column
			if multi {
				name = fmt.Sprintf("(%s, %s)", entry.Column, fn)
			}
			aggs = append(aggs, Aggregation{Source: entry.Column, Op: op, As: name})
			dataCols = append(dataCols, name)
			labels = append(labels, []string{entry.Column, fn})
		}
	}

	grouped, err := g.parent.plan.GroupAggregate(g.keyColumns(), aggs)
	if err != nil {
		return nil, err
	}
	if !multi {
		labels = nil
	}
	meta, err := NewMetadata(g.keyIndexColumns(), dataCols, labels)
	if err != nil {
		return nil, err
	}
	return NewFrame(grouped, meta)
}

// Count computes the count of each group, excluding missing values
func (g *GroupBy) Count() (*Frame, error) {
	return g.reduce("count", AggCount, false)
}

// First computes the first of each group's values
func (g *GroupBy) First() (*Frame, error) {
	return g.reduce("first", AggFirst, false)
}

// Last computes the last of each group's values
func (g *GroupBy) Last() (*Frame, error) {
	return g.reduce("last", AggLast, false)
}

// Max computes the max of each group's values
func (g *GroupBy) Max() (*Frame, error) {
	return g.reduce("max", AggMax, false)
}

// Mean computes the mean of each group's numeric values, excluding missing
// values
func (g *GroupBy) Mean() (*Frame, error) {
	return g.reduce("mean", AggMean, true)
}

// Min computes the min of each group's values
func (g *GroupBy) Min() (*Frame, error) {
	return g.reduce("min", AggMin, false)
}

// Std computes the sample standard deviation of each group's numeric values
func (g *GroupBy) Std() (*Frame, error) {
	return g.reduce("std", AggStdDev, true)
}

// Sum computes the sum of each group's numeric values
func (g *GroupBy) Sum() (*Frame, error) {
	return g.reduce("sum", AggSum, true)
}

// Var computes the sample variance of each group's numeric values
func (g *GroupBy) Var() (*Frame, error) {
	return g.reduce("var", AggVariance, true)
}

// All returns true per group iff every value in the group is truthy, with
// nulls treated as true
func (g *GroupBy) All() (*Frame, error) {
	return g.boolReduce(AggMin, true)
}

// Any returns true per group iff any value in the group is truthy, with
// nulls treated as false
func (g *GroupBy) Any() (*Frame, error) {
	return g.boolReduce(AggMax, false)
}

// reduce lowers a reduction to a pushdown group-aggregate, sorted by key
// ascending. The key columns become the output's index; each aggregated
// column keeps its original name. NaN is replaced with null before
// aggregating floating-point columns, because the engine's native
// aggregates treat NaN as a valid value whereas these reductions treat it
// as missing.
func (g *GroupBy) reduce(op string, aggOp AggregateOp, onlyNumeric bool) (*Frame, error) {
	var aggs []Aggregation
	var dataCols []string
	for _, col := range g.aggColumns() {
		colType, err := g.parent.DeclaredType(col)
		if err != nil {
			return nil, err
		}
		switch {
		case IsFloating(colType):
			aggs = append(aggs, Aggregation{Source: col, Op: aggOp, As: col, NaNAsNull: true})
			dataCols = append(dataCols, col)
		case IsNumeric(colType) || !onlyNumeric:
			aggs = append(aggs, Aggregation{Source: col, Op: aggOp, As: col})
			dataCols = append(dataCols, col)
		}
	}
	return g.finishReduce(op, aggs, dataCols)
}

// boolReduce lowers all/any: values are coerced to boolean with a null fill
// matching the identity of the reduction before aggregating
func (g *GroupBy) boolReduce(aggOp AggregateOp, fill bool) (*Frame, error) {
	var aggs []Aggregation
	var dataCols []string
	for _, col := range g.aggColumns() {
		aggs = append(aggs, Aggregation{Source: col, Op: aggOp, As: col, CoerceBool: true, BoolFill: fill})
		dataCols = append(dataCols, col)
	}
	op := "all"
	if !fill {
		op = "any"
	}
	return g.finishReduce(op, aggs, dataCols)
}

func (g *GroupBy) finishReduce(op string, aggs []Aggregation, dataCols []string) (*Frame, error) {
	keys := g.keyColumns()
	grouped, err := g.parent.plan.GroupAggregate(keys, aggs)
	if err != nil {
		return nil, kerrors.ComputationError{Op: op, Cause: err}
	}
	aliases := make([]string, len(keys))
	for i, k := range keys {
		aliases[i] = k.As
	}
	sorted, err := grouped.Sort(aliases...)
	if err != nil {
		return nil, err
	}
	meta, err := NewMetadata(g.keyIndexColumns(), dataCols, nil)
	if err != nil {
		return nil, err
	}
	return NewFrame(sorted, meta)
}

// Size computes the number of rows per group. When the GroupBy was narrowed
// to a single explicit column the output column takes that column's name,
// otherwise it is named count.
func (g *GroupBy) Size() (*Frame, error) {
	name := "count"
	if g.explicit && len(g.aggCols) > 0 {
		name = g.aggCols[0]
	}
	grouped, err := g.parent.plan.GroupAggregate(g.keyColumns(), []Aggregation{{Op: AggCountAll, As: name}})
	if err != nil {
		return nil, err
	}
	meta, err := NewMetadata(g.keyIndexColumns(), []string{name}, nil)
	if err != nil {
		return nil, err
	}
	return newSeries(grouped, meta, name)
}

// CumMax computes the cumulative max within each group
func (g *GroupBy) CumMax() (*Frame, error) {
	return g.cumulative(CumMax)
}

// CumMin computes the cumulative min within each group
func (g *GroupBy) CumMin() (*Frame, error) {
	return g.cumulative(CumMin)
}

// CumSum computes the cumulative sum within each group
func (g *GroupBy) CumSum() (*Frame, error) {
	return g.cumulative(CumSum)
}

// CumProd computes the cumulative product within each group. It is lowered
// to exp(cumsum(log(x))), so any non-null, non-positive value fails the job
// when the engine evaluates the column, not when CumProd is called.
func (g *GroupBy) CumProd() (*Frame, error) {
	return g.cumulative(CumProd)
}

// cumulative computes a windowed running aggregate per data column,
// partitioned by the group key, over whatever row order the rows currently
// have. The grouping columns are excluded and the original index is kept.
func (g *GroupBy) cumulative(op CumulativeOp) (*Frame, error) {
	if len(g.parent.meta.IndexColumns()) == 0 {
		return nil, kerrors.IndexingError{Op: string(op), Message: "index must be set"}
	}
	cols := g.aggColumns()
	next, err := g.parent.plan.Cumulative(g.keys, cols, op)
	if err != nil {
		return nil, err
	}
	opts := []MetadataOption{WithDataColumns(cols)}
	if g.parent.meta.HasColumnLabels() {
		opts = append(opts, WithColumnLabels(g.parent.labelsFor(cols)))
	}
	meta, err := g.parent.meta.Copy(opts...)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, meta)
}

// Apply runs fn once per group and combines the results. fn must declare its
// return layout up front, because the engine allocates output columns before
// reading any data; output columns are renamed positionally to the declared
// schema's field names. The resulting Frame has no restored index, since
// grouped free-form output loses row identity.
func (g *GroupBy) Apply(fn GroupedMapOperation, declared Schema) (*Frame, error) {
	if fn == nil {
		return nil, kerrors.TypeMismatchError{Op: "apply", Message: "the grouped function must be callable"}
	}
	if declared == nil || declared.NumColumns() == 0 {
		return nil, kerrors.ConfigurationError{Op: "apply", Message: "a declared return schema is required"}
	}
	indexCols := g.parent.meta.IndexColumns()
	frameCols := append(g.parent.meta.IndexColumnNames(), g.parent.meta.DataColumns()...)
	declaredNames := declared.ColumnNames()
	declaredTypes := declared.ColumnTypes()

	wrapper := func(group *LocalFrame) (*LocalFrame, error) {
		local, err := group.project(frameCols...)
		if err != nil {
			return nil, err
		}
		out, err := fn(local.withIndexColumns(indexCols))
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, fmt.Errorf("grouped function returned no frame")
		}
		return out.renamePositional(declaredNames, declaredTypes)
	}

	next, err := g.parent.plan.GroupMap(g.keys, declared, wrapper)
	if err != nil {
		return nil, err
	}
	meta, err := NewMetadata(nil, declaredNames, nil)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, meta)
}

// Transform runs fn once per group on the group's data columns, minus the
// grouping columns, and replaces those columns in place. fn receives the
// group with its index columns reconstructed and must return exactly the
// transformed data columns, aligned 1:1 with its input rows; returnType
// declares the type of every transformed column up front. Unlike Apply, the
// original index is preserved.
func (g *GroupBy) Transform(fn GroupedMapOperation, returnType ColumnType) (*Frame, error) {
	if fn == nil {
		return nil, kerrors.TypeMismatchError{Op: "transform", Message: "the grouped function must be callable"}
	}
	if returnType == nil {
		return nil, kerrors.ConfigurationError{Op: "transform", Message: "a declared return type is required"}
	}
	indexCols := g.parent.meta.IndexColumns()
	indexNames := g.parent.meta.IndexColumnNames()
	keySet := make(map[string]bool, len(g.keys))
	for _, k := range g.keys {
		keySet[k] = true
	}
	var transformed []string
	for _, c := range g.parent.meta.DataColumns() {
		if !keySet[c] {
			transformed = append(transformed, c)
		}
	}

	parentSchema := g.parent.plan.Schema()
	declared := CreateSchema()
	var err error
	for _, ic := range indexNames {
		colType, terr := parentSchema.GetColumnType(ic)
		if terr != nil {
			return nil, terr
		}
		if declared, err = declared.CreateColumn(ic, colType); err != nil {
			return nil, err
		}
	}
	for _, c := range transformed {
		if declared, err = declared.CreateColumn(c, returnType); err != nil {
			return nil, err
		}
	}
	transformedTypes := make([]ColumnType, len(transformed))
	for i := range transformed {
		transformedTypes[i] = returnType
	}

	wrapper := func(group *LocalFrame) (*LocalFrame, error) {
		input, err := group.project(append(copyStrings(indexNames), transformed...)...)
		if err != nil {
			return nil, err
		}
		out, err := fn(input.withIndexColumns(indexCols))
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, fmt.Errorf("grouped function returned no frame")
		}
		if out.NumRows() != input.NumRows() {
			return nil, fmt.Errorf(
				"transform output has %d rows for %d input rows", out.NumRows(), input.NumRows())
		}
		renamed, err := out.renamePositional(transformed, transformedTypes)
		if err != nil {
			return nil, err
		}
		// transform output aligns 1:1 with its input, so the index columns
		// can be carried over row by row
		result := CreateLocalFrame(declared)
		for i := 0; i < renamed.NumRows(); i++ {
			values := make([]interface{}, 0, declared.NumColumns())
			values = append(values, input.RowAt(i)[:len(indexNames)]...)
			values = append(values, renamed.RowAt(i)...)
			if err := result.AppendRow(values); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	next, err := g.parent.plan.GroupMap(g.keys, declared, wrapper)
	if err != nil {
		return nil, err
	}
	opts := []MetadataOption{WithDataColumns(transformed)}
	if g.parent.meta.HasColumnLabels() {
		opts = append(opts, WithColumnLabels(g.parent.labelsFor(transformed)))
	}
	meta, err := g.parent.meta.Copy(opts...)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, meta)
}

// Filter drops every group for which fn returns false, keeping the
// surviving rows unchanged. The original row index is re-attached from the
// stored metadata afterward, because group-local computation strips it.
func (g *GroupBy) Filter(fn GroupedFilterOperation) (*Frame, error) {
	if fn == nil {
		return nil, kerrors.TypeMismatchError{Op: "filter", Message: "the grouped function must be callable"}
	}
	indexCols := g.parent.meta.IndexColumns()
	declared := g.parent.plan.Schema()

	wrapper := func(group *LocalFrame) (*LocalFrame, error) {
		keep, err := fn(group.withIndexColumns(indexCols))
		if err != nil {
			return nil, err
		}
		if keep {
			return group, nil
		}
		return CreateLocalFrame(group.Schema()), nil
	}

	next, err := g.parent.plan.GroupMap(g.keys, declared, wrapper)
	if err != nil {
		return nil, err
	}
	return NewFrame(next, g.parent.meta)
}
