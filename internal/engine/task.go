package engine

import (
	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/internal/partition"
)

// task is one step in a plan lineage
type task interface {
	name() string
}

// narrowTask transforms one partition independently of all others, so the
// executor may run it data-parallel
type narrowTask interface {
	task
	apply(part *partition.Partition) (*partition.Partition, error)
}

// sourceTask holds the rows a plan lineage starts from
type sourceTask struct {
	rows [][]interface{}
}

func (t *sourceTask) name() string {
	return "source"
}

type filterTask struct {
	fn koalas.FilterOperation
}

func (t *filterTask) name() string {
	return "filter"
}

func (t *filterTask) apply(part *partition.Partition) (*partition.Partition, error) {
	return part.FilterRows(t.fn)
}

type selectTask struct {
	exprs  []koalas.ColumnExpr
	target koalas.Schema
}

func (t *selectTask) name() string {
	return "select"
}

func (t *selectTask) apply(part *partition.Partition) (*partition.Partition, error) {
	return part.SelectRows(t.target, t.exprs)
}

type withColumnTask struct {
	colName string
	fn      koalas.ColumnOperation
	target  koalas.Schema
}

func (t *withColumnTask) name() string {
	return "with_column"
}

func (t *withColumnTask) apply(part *partition.Partition) (*partition.Partition, error) {
	return part.WithColumnRows(t.target, t.colName, t.fn)
}

// groupAggTask reduces groups of rows to single rows. It is a pipeline
// breaker: the executor gathers all partitions before running it.
type groupAggTask struct {
	keys   []koalas.KeyColumn
	aggs   []koalas.Aggregation
	target koalas.Schema
}

func (t *groupAggTask) name() string {
	return "group_aggregate"
}

// groupMapTask applies a user function to whole groups of rows. Also a
// pipeline breaker, executed over hash-shuffled buckets.
type groupMapTask struct {
	keys     []string
	declared koalas.Schema
	fn       koalas.GroupedMapOperation
}

func (t *groupMapTask) name() string {
	return "group_map"
}

// cumulativeTask replaces value columns with running values per group. It
// runs as a single ordered scan so results follow row order.
type cumulativeTask struct {
	keys   []string
	cols   []string
	op     koalas.CumulativeOp
	target koalas.Schema
}

func (t *cumulativeTask) name() string {
	return string(t.op)
}

type sortTask struct {
	cols []string
}

func (t *sortTask) name() string {
	return "sort"
}
