package koalas

import "context"

// AggregateOp identifies a pushdown aggregate function supported by the
// engine's group-aggregate operator.
type AggregateOp string

const (
	// AggCount counts non-null values
	AggCount AggregateOp = "count"
	// AggCountAll counts rows, null or not
	AggCountAll AggregateOp = "count_all"
	// AggCountDistinct counts distinct non-null values
	AggCountDistinct AggregateOp = "count_distinct"
	// AggSum sums non-null values
	AggSum AggregateOp = "sum"
	// AggMean averages non-null values
	AggMean AggregateOp = "mean"
	// AggMin takes the least non-null value
	AggMin AggregateOp = "min"
	// AggMax takes the greatest non-null value
	AggMax AggregateOp = "max"
	// AggFirst takes the first value, null or not
	AggFirst AggregateOp = "first"
	// AggLast takes the last non-null value
	AggLast AggregateOp = "last"
	// AggStdDev computes the sample standard deviation of non-null values
	AggStdDev AggregateOp = "std"
	// AggVariance computes the sample variance of non-null values
	AggVariance AggregateOp = "var"
)

// CumulativeOp identifies a windowed computation partitioned by group key.
type CumulativeOp string

const (
	// CumMax is a running maximum
	CumMax CumulativeOp = "cummax"
	// CumMin is a running minimum
	CumMin CumulativeOp = "cummin"
	// CumSum is a running sum
	CumSum CumulativeOp = "cumsum"
	// CumProd is a running product, computed as exp(cumsum(log(x)))
	CumProd CumulativeOp = "cumprod"
)

// KeyColumn binds a grouping column to a synthesized key-column alias in the
// output of a group operation. Order is significant.
type KeyColumn struct {
	Column string // source column in the input schema
	As     string // alias in the output schema
}

// ColumnExpr describes one output column of a projection: a source column,
// optionally renamed. An empty As keeps the source name.
type ColumnExpr struct {
	Column string
	As     string
}

// Aggregation describes one aggregate output column of a group-aggregate.
type Aggregation struct {
	Source     string      // source column; ignored by AggCountAll
	Op         AggregateOp // aggregate function
	As         string      // output column name
	NaNAsNull  bool        // replace NaN with null before aggregating
	CoerceBool bool        // cast values to boolean before aggregating
	BoolFill   bool        // null replacement when CoerceBool is set
}

// Plan is an immutable description of a relational computation over a
// columnar store. Every operation returns a new Plan; no Plan is ever
// modified after construction. A Plan has no guaranteed row order unless
// explicitly sorted. Plans are evaluated lazily: only Collect triggers
// execution.
type Plan interface {
	// ID identifies this plan snapshot
	ID() string
	// RootID identifies the source relation this plan descends from. Two
	// plans with equal RootIDs are projections of the same rows.
	RootID() string
	// Schema returns the output schema of this plan
	Schema() Schema
	// Filter retains only rows matching a predicate
	Filter(fn FilterOperation) Plan
	// Select projects (and optionally renames) columns. The same source
	// column may appear under multiple output names.
	Select(cols ...ColumnExpr) (Plan, error)
	// WithColumn adds a computed column, or replaces it in place if a column
	// with that name already exists
	WithColumn(colName string, colType ColumnType, fn ColumnOperation) Plan
	// GroupAggregate groups rows by key columns and computes one output row
	// per group: the aliased keys followed by the aggregate columns. With no
	// aggregations it yields the distinct key combinations.
	GroupAggregate(keys []KeyColumn, aggs []Aggregation) (Plan, error)
	// GroupMap delivers each group's rows to one invocation of fn and
	// replaces them with fn's output, whose layout must match the declared
	// schema
	GroupMap(keys []string, declared Schema, fn GroupedMapOperation) (Plan, error)
	// Cumulative computes a running aggregate over each listed column,
	// partitioned by the key columns, in the plan's current row order. The
	// output schema is the remaining columns with the listed columns
	// replaced by their running values.
	Cumulative(keys []string, cols []string, op CumulativeOp) (Plan, error)
	// Sort orders rows by the given columns, ascending, nulls first
	Sort(cols ...string) (Plan, error)
	// Collect executes the plan and materializes its rows. This is the only
	// blocking operation; cancellation is whole-job via ctx.
	Collect(ctx context.Context) ([]Row, error)
}
