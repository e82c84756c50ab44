package engine

import (
	"fmt"
	"math"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/rising-star92/databricks-koalas/internal/partition"
)

// cumState carries one group's running value for one column
type cumState struct {
	cur    interface{}
	logSum float64
	seen   bool
}

// runCumulative scans all partitions in row order, carrying per-group state
// for each cumulative column. Null inputs yield null outputs without
// advancing the state; NaN inputs likewise pass through untouched.
func runCumulative(parts []*partition.Partition, t *cumulativeTask, schema koalas.Schema) ([]*partition.Partition, error) {
	keyIdxs, err := columnIndexes(schema, t.keys)
	if err != nil {
		return nil, err
	}
	cumSet := make(map[string]bool, len(t.cols))
	for _, col := range t.cols {
		cumSet[col] = true
	}
	// source index and column type per output column
	srcIdxs := make([]int, 0, t.target.NumColumns())
	srcTypes := make([]koalas.ColumnType, 0, t.target.NumColumns())
	cumulative := make([]bool, 0, t.target.NumColumns())
	outCols := t.target.ColumnNames()
	for _, name := range outCols {
		idx, err := schema.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		colType, err := schema.GetColumnType(name)
		if err != nil {
			return nil, err
		}
		srcIdxs = append(srcIdxs, idx)
		srcTypes = append(srcTypes, colType)
		cumulative = append(cumulative, cumSet[name])
	}

	states := make(map[string][]*cumState)
	out := partition.CreatePartition(t.target)
	for _, part := range parts {
		for i := 0; i < part.NumRows(); i++ {
			values := part.GetRowValues(i)
			gk := groupKey(values, keyIdxs)
			group, ok := states[gk]
			if !ok {
				group = make([]*cumState, len(outCols))
				for j := range group {
					group[j] = &cumState{}
				}
				states[gk] = group
			}
			row := make([]interface{}, len(outCols))
			for j := range outCols {
				v := values[srcIdxs[j]]
				if !cumulative[j] {
					row[j] = v
					continue
				}
				next, err := advance(group[j], v, srcTypes[j], t.op)
				if err != nil {
					return nil, err
				}
				row[j] = next
			}
			if err := out.AppendValues(row); err != nil {
				return nil, err
			}
		}
	}
	return []*partition.Partition{out}, nil
}

// advance folds one value into a group's running state and returns the
// output for that row
func advance(state *cumState, v interface{}, colType koalas.ColumnType, op koalas.CumulativeOp) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		if op == koalas.CumProd {
			return math.NaN(), nil
		}
		return f, nil
	}
	switch op {
	case koalas.CumMax:
		if !state.seen || colType.Compare(v, state.cur) > 0 {
			state.cur = v
		}
		state.seen = true
		return state.cur, nil
	case koalas.CumMin:
		if !state.seen || colType.Compare(v, state.cur) < 0 {
			state.cur = v
		}
		state.seen = true
		return state.cur, nil
	case koalas.CumSum:
		return cumAdd(state, v)
	case koalas.CumProd:
		f, err := asFloat(v)
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("values should be bigger than 0: %v", f)
		}
		state.logSum += math.Log(f)
		state.seen = true
		return math.Exp(state.logSum), nil
	}
	return nil, errors.ConfigurationError{Message: fmt.Sprintf("unknown cumulative op %s", op)}
}

func cumAdd(state *cumState, v interface{}) (interface{}, error) {
	if !state.seen {
		state.cur = v
		state.seen = true
		return state.cur, nil
	}
	switch n := v.(type) {
	case int32:
		state.cur = state.cur.(int32) + n
	case int64:
		state.cur = state.cur.(int64) + n
	case float64:
		state.cur = state.cur.(float64) + n
	default:
		return nil, errors.TypeMismatchError{Message: fmt.Sprintf("cannot sum value of type %T", v)}
	}
	return state.cur, nil
}

func asFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.TypeMismatchError{Message: fmt.Sprintf("cannot convert value of type %T to float", v)}
}
