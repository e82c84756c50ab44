package engine

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
)

// planImpl is a node in an immutable plan lineage. Each node carries the
// task that produces it from its parent, plus the schema of its output.
type planImpl struct {
	id     string
	rootID string
	parent *planImpl
	task   task
	schema koalas.Schema
	conf   *Config
}

// FromValues creates a source plan over in-memory row values. Row slices
// must match the schema width.
func FromValues(schema koalas.Schema, rows [][]interface{}, conf *Config) (koalas.Plan, error) {
	if schema == nil || schema.NumColumns() == 0 {
		return nil, errors.ConfigurationError{Message: "source schema must declare at least one column"}
	}
	for i, row := range rows {
		if len(row) != schema.NumColumns() {
			return nil, errors.ConfigurationError{Message: fmt.Sprintf("row %d has %d values, schema has %d columns", i, len(row), schema.NumColumns())}
		}
	}
	if conf == nil {
		conf = DefaultConfig()
	}
	id := newID()
	return &planImpl{
		id:     id,
		rootID: id,
		task:   &sourceTask{rows: rows},
		schema: schema,
		conf:   conf.withDefaults(),
	}, nil
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		panic(fmt.Sprintf("unable to generate plan id: %v", err))
	}
	return id.String()
}

func (p *planImpl) derive(t task, schema koalas.Schema) *planImpl {
	return &planImpl{
		id:     newID(),
		rootID: p.rootID,
		parent: p,
		task:   t,
		schema: schema,
		conf:   p.conf,
	}
}

// ID returns this plan node's unique identifier
func (p *planImpl) ID() string {
	return p.id
}

// RootID returns the identifier of the source node this plan descends from
func (p *planImpl) RootID() string {
	return p.rootID
}

// Schema returns the schema of this plan's output rows
func (p *planImpl) Schema() koalas.Schema {
	return p.schema
}

// Filter derives a plan retaining only rows the predicate accepts
func (p *planImpl) Filter(fn koalas.FilterOperation) koalas.Plan {
	return p.derive(&filterTask{fn: fn}, p.schema)
}

// Select derives a plan projecting the given columns, in order, optionally
// renamed. The same source column may appear more than once under distinct
// output names.
func (p *planImpl) Select(cols ...koalas.ColumnExpr) (koalas.Plan, error) {
	if len(cols) == 0 {
		return nil, errors.ConfigurationError{Message: "select requires at least one column"}
	}
	target := koalas.CreateSchema()
	for _, expr := range cols {
		colType, err := p.schema.GetColumnType(expr.Column)
		if err != nil {
			return nil, err
		}
		name := expr.Column
		if expr.As != "" {
			name = expr.As
		}
		if target.HasColumn(name) {
			return nil, errors.ConfigurationError{Message: fmt.Sprintf("select produces duplicate column %s", name)}
		}
		target, err = target.CreateColumn(name, colType)
		if err != nil {
			return nil, err
		}
	}
	return p.derive(&selectTask{exprs: cols, target: target}, target), nil
}

// WithColumn derives a plan with colName computed per row by fn. An existing
// column is replaced in place; a new column is appended.
func (p *planImpl) WithColumn(colName string, colType koalas.ColumnType, fn koalas.ColumnOperation) koalas.Plan {
	target := koalas.CreateSchema()
	replaced := false
	p.schema.ForEachColumn(func(name string, existing koalas.ColumnType) error {
		if name == colName {
			target, _ = target.CreateColumn(name, colType)
			replaced = true
		} else {
			target, _ = target.CreateColumn(name, existing)
		}
		return nil
	})
	if !replaced {
		target, _ = target.CreateColumn(colName, colType)
	}
	return p.derive(&withColumnTask{colName: colName, fn: fn, target: target}, target)
}

// GroupAggregate derives a plan grouping rows by the key columns and reducing
// each group with the given aggregations. Output columns are the keys, under
// their aliases, followed by one column per aggregation. With no aggregations
// the result is the distinct key combinations.
func (p *planImpl) GroupAggregate(keys []koalas.KeyColumn, aggs []koalas.Aggregation) (koalas.Plan, error) {
	if len(keys) == 0 {
		return nil, errors.ConfigurationError{Message: "group aggregate requires at least one key column"}
	}
	target := koalas.CreateSchema()
	for _, key := range keys {
		keyType, err := p.schema.GetColumnType(key.Column)
		if err != nil {
			return nil, err
		}
		name := key.Column
		if key.As != "" {
			name = key.As
		}
		target, err = target.CreateColumn(name, keyType)
		if err != nil {
			return nil, err
		}
	}
	for _, agg := range aggs {
		var srcType koalas.ColumnType
		if agg.Op != koalas.AggCountAll {
			var err error
			srcType, err = p.schema.GetColumnType(agg.Source)
			if err != nil {
				return nil, err
			}
		}
		resType, err := aggResultType(agg, srcType)
		if err != nil {
			return nil, err
		}
		target, err = target.CreateColumn(agg.As, resType)
		if err != nil {
			return nil, err
		}
	}
	return p.derive(&groupAggTask{keys: keys, aggs: aggs, target: target}, target), nil
}

// GroupMap derives a plan applying fn to each group of rows sharing key
// column values. fn receives the full rows of one group and returns rows
// matching the declared schema.
func (p *planImpl) GroupMap(keys []string, declared koalas.Schema, fn koalas.GroupedMapOperation) (koalas.Plan, error) {
	if len(keys) == 0 {
		return nil, errors.ConfigurationError{Message: "group map requires at least one key column"}
	}
	for _, key := range keys {
		if !p.schema.HasColumn(key) {
			return nil, errors.ColumnNotFoundError{Labels: []string{key}}
		}
	}
	if declared == nil || declared.NumColumns() == 0 {
		return nil, errors.ConfigurationError{Message: "group map requires a declared output schema"}
	}
	return p.derive(&groupMapTask{keys: keys, declared: declared, fn: fn}, declared), nil
}

// Cumulative derives a plan replacing each listed column with its running
// value within groups of the key columns. Key columns are dropped from the
// output; all other columns pass through. Cumulative products are computed
// in floating point.
func (p *planImpl) Cumulative(keys []string, cols []string, op koalas.CumulativeOp) (koalas.Plan, error) {
	if len(keys) == 0 {
		return nil, errors.ConfigurationError{Message: "cumulative requires at least one key column"}
	}
	if len(cols) == 0 {
		return nil, errors.ConfigurationError{Message: "cumulative requires at least one value column"}
	}
	keySet := make(map[string]bool, len(keys))
	for _, key := range keys {
		if !p.schema.HasColumn(key) {
			return nil, errors.ColumnNotFoundError{Labels: []string{key}}
		}
		keySet[key] = true
	}
	cumSet := make(map[string]bool, len(cols))
	for _, col := range cols {
		colType, err := p.schema.GetColumnType(col)
		if err != nil {
			return nil, err
		}
		if keySet[col] {
			return nil, errors.ConfigurationError{Message: fmt.Sprintf("cumulative column %s is a key column", col)}
		}
		if !koalas.IsNumeric(colType) {
			return nil, errors.TypeMismatchError{Message: fmt.Sprintf("cumulative operations require numeric columns, %s is %s", col, colType.Name())}
		}
		cumSet[col] = true
	}
	target := koalas.CreateSchema()
	p.schema.ForEachColumn(func(name string, colType koalas.ColumnType) error {
		if keySet[name] {
			return nil
		}
		if cumSet[name] && op == koalas.CumProd {
			colType = &koalas.Float64ColumnType{}
		}
		target, _ = target.CreateColumn(name, colType)
		return nil
	})
	return p.derive(&cumulativeTask{keys: keys, cols: cols, op: op, target: target}, target), nil
}

// Sort derives a plan ordering rows ascending by the given columns, nulls
// first. The sort is stable.
func (p *planImpl) Sort(cols ...string) (koalas.Plan, error) {
	if len(cols) == 0 {
		return nil, errors.ConfigurationError{Message: "sort requires at least one column"}
	}
	for _, col := range cols {
		if !p.schema.HasColumn(col) {
			return nil, errors.ColumnNotFoundError{Labels: []string{col}}
		}
	}
	return p.derive(&sortTask{cols: cols}, p.schema), nil
}

// Collect executes the plan and returns its rows
func (p *planImpl) Collect(ctx context.Context) ([]koalas.Row, error) {
	return collect(ctx, p)
}
