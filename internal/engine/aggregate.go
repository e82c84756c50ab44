package engine

import (
	"fmt"
	"math"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
)

// accumulator folds the values of one column within one group. Values arrive
// already prepared by prepValue, so nil always means null.
type accumulator interface {
	accumulate(v interface{}) error
	result() interface{}
}

// prepValue applies an aggregation's value adjustments before accumulation.
// NaNAsNull turns floating NaN into null so it is excluded like Spark's
// nanvl. CoerceBool casts values to truthiness, substituting BoolFill for
// nulls.
func prepValue(v interface{}, agg koalas.Aggregation) (interface{}, error) {
	if agg.NaNAsNull {
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			v = nil
		}
	}
	if agg.CoerceBool {
		if v == nil {
			return agg.BoolFill, nil
		}
		boolType := &koalas.BoolColumnType{}
		cast, err := boolType.Cast(v)
		if err != nil {
			return nil, err
		}
		return cast, nil
	}
	return v, nil
}

// aggResultType returns the column type an aggregation produces over a
// source of the given type. srcType is nil for AggCountAll.
func aggResultType(agg koalas.Aggregation, srcType koalas.ColumnType) (koalas.ColumnType, error) {
	if agg.CoerceBool {
		srcType = &koalas.BoolColumnType{}
	}
	switch agg.Op {
	case koalas.AggCount, koalas.AggCountAll, koalas.AggCountDistinct:
		return &koalas.Int64ColumnType{}, nil
	case koalas.AggMean, koalas.AggStdDev, koalas.AggVariance:
		if !koalas.IsNumeric(srcType) {
			return nil, errors.TypeMismatchError{Message: fmt.Sprintf("aggregation requires a numeric column, got %s", srcType.Name())}
		}
		return &koalas.Float64ColumnType{}, nil
	case koalas.AggSum:
		if !koalas.IsNumeric(srcType) {
			return nil, errors.TypeMismatchError{Message: fmt.Sprintf("aggregation requires a numeric column, got %s", srcType.Name())}
		}
		if koalas.IsFloating(srcType) {
			return &koalas.Float64ColumnType{}, nil
		}
		return &koalas.Int64ColumnType{}, nil
	case koalas.AggMin, koalas.AggMax, koalas.AggFirst, koalas.AggLast:
		return srcType, nil
	}
	return nil, errors.ConfigurationError{Message: fmt.Sprintf("unknown aggregation op %s", agg.Op)}
}

// newAccumulator builds the accumulator for one aggregation. srcType is the
// type values will have after prepValue.
func newAccumulator(agg koalas.Aggregation, srcType koalas.ColumnType) accumulator {
	if agg.CoerceBool {
		srcType = &koalas.BoolColumnType{}
	}
	switch agg.Op {
	case koalas.AggCount:
		return &countAcc{}
	case koalas.AggCountAll:
		return &countAllAcc{}
	case koalas.AggCountDistinct:
		return &distinctAcc{seen: make(map[interface{}]bool)}
	case koalas.AggSum:
		return &sumAcc{floating: koalas.IsFloating(srcType)}
	case koalas.AggMean:
		return &momentAcc{op: koalas.AggMean}
	case koalas.AggStdDev:
		return &momentAcc{op: koalas.AggStdDev}
	case koalas.AggVariance:
		return &momentAcc{op: koalas.AggVariance}
	case koalas.AggMin:
		return &extremumAcc{colType: srcType, sign: -1}
	case koalas.AggMax:
		return &extremumAcc{colType: srcType, sign: 1}
	case koalas.AggFirst:
		return &firstAcc{}
	case koalas.AggLast:
		return &lastAcc{}
	}
	return nil
}

// countAcc counts non-null values
type countAcc struct {
	n int64
}

func (a *countAcc) accumulate(v interface{}) error {
	if v != nil {
		a.n++
	}
	return nil
}

func (a *countAcc) result() interface{} {
	return a.n
}

// countAllAcc counts rows, nulls included
type countAllAcc struct {
	n int64
}

func (a *countAllAcc) accumulate(v interface{}) error {
	a.n++
	return nil
}

func (a *countAllAcc) result() interface{} {
	return a.n
}

// distinctAcc counts distinct non-null values
type distinctAcc struct {
	seen map[interface{}]bool
}

func (a *distinctAcc) accumulate(v interface{}) error {
	if v != nil {
		a.seen[v] = true
	}
	return nil
}

func (a *distinctAcc) result() interface{} {
	return int64(len(a.seen))
}

// sumAcc sums non-null values, yielding null when every value was null
type sumAcc struct {
	floating bool
	intSum   int64
	floatSum float64
	seen     bool
}

func (a *sumAcc) accumulate(v interface{}) error {
	if v == nil {
		return nil
	}
	a.seen = true
	switch n := v.(type) {
	case int32:
		a.intSum += int64(n)
	case int64:
		a.intSum += n
	case float64:
		a.floatSum += n
	default:
		return errors.TypeMismatchError{Message: fmt.Sprintf("cannot sum value of type %T", v)}
	}
	return nil
}

func (a *sumAcc) result() interface{} {
	if !a.seen {
		return nil
	}
	if a.floating {
		return a.floatSum
	}
	return a.intSum
}

// momentAcc computes mean, sample variance and sample standard deviation
// over non-null values with Welford's recurrence
type momentAcc struct {
	op   koalas.AggregateOp
	n    int64
	mean float64
	m2   float64
}

func (a *momentAcc) accumulate(v interface{}) error {
	if v == nil {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return errors.TypeMismatchError{Message: fmt.Sprintf("cannot average value of type %T", v)}
	}
	a.n++
	delta := f - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (f - a.mean)
	return nil
}

func (a *momentAcc) result() interface{} {
	if a.op == koalas.AggMean {
		if a.n == 0 {
			return nil
		}
		return a.mean
	}
	if a.n < 2 {
		return nil
	}
	variance := a.m2 / float64(a.n-1)
	if a.op == koalas.AggVariance {
		return variance
	}
	return math.Sqrt(variance)
}

// extremumAcc tracks the minimum (sign -1) or maximum (sign 1) non-null
// value under the column type's ordering
type extremumAcc struct {
	colType koalas.ColumnType
	sign    int
	cur     interface{}
	seen    bool
}

func (a *extremumAcc) accumulate(v interface{}) error {
	if v == nil {
		return nil
	}
	if !a.seen {
		a.cur = v
		a.seen = true
		return nil
	}
	if cmp := a.colType.Compare(v, a.cur); cmp*a.sign > 0 {
		a.cur = v
	}
	return nil
}

func (a *extremumAcc) result() interface{} {
	if !a.seen {
		return nil
	}
	return a.cur
}

// firstAcc captures the first value in row order, null included
type firstAcc struct {
	cur  interface{}
	seen bool
}

func (a *firstAcc) accumulate(v interface{}) error {
	if !a.seen {
		a.cur = v
		a.seen = true
	}
	return nil
}

func (a *firstAcc) result() interface{} {
	return a.cur
}

// lastAcc captures the last non-null value in row order
type lastAcc struct {
	cur interface{}
}

func (a *lastAcc) accumulate(v interface{}) error {
	if v != nil {
		a.cur = v
	}
	return nil
}

func (a *lastAcc) result() interface{} {
	return a.cur
}
