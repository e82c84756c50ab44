package koalas_test

import (
	"context"
	"math"
	"testing"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/datasource/memory"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/stretchr/testify/require"
)

func countFrame(t *testing.T) *koalas.Frame {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(2), int64(1), int64(2)}},
		memory.Column{Name: "B", Type: &koalas.Float64ColumnType{}, Values: []interface{}{math.NaN(), 2.0, 3.0, 4.0, 5.0}},
		memory.Column{Name: "C", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(1), int64(1), int64(2)}},
	)
	require.Nil(t, err)
	return frame
}

func TestGroupByCount(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	counted, err := grouped.Count()
	require.Nil(t, err)
	require.Equal(t, []string{"B", "C"}, counted.Metadata().DataColumns())
	require.Equal(t, "A", counted.Metadata().IndexColumns()[0].Name)

	rows, err := counted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))
	// reductions sort by group key, so A=1 comes first
	b, err := rows[0].GetInt64("B")
	require.Nil(t, err)
	require.EqualValues(t, 2, b, "NaN should be excluded from the count")
	c, err := rows[0].GetInt64("C")
	require.Nil(t, err)
	require.EqualValues(t, 3, c)
	b, err = rows[1].GetInt64("B")
	require.Nil(t, err)
	require.EqualValues(t, 2, b)
}

func TestGroupBySum(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	summed, err := grouped.Sum()
	require.Nil(t, err)

	rows, err := summed.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))
	b, err := rows[0].GetFloat64("B")
	require.Nil(t, err)
	require.Equal(t, 6.0, b, "NaN should not poison the sum")
	c, err := rows[0].GetInt64("C")
	require.Nil(t, err)
	require.EqualValues(t, 4, c)
}

func TestGroupByMeanExcludesNonNumeric(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "key", Type: &koalas.StringColumnType{}, Values: []interface{}{"a", "a", "b"}},
		memory.Column{Name: "label", Type: &koalas.StringColumnType{}, Values: []interface{}{"x", "y", "z"}},
		memory.Column{Name: "value", Type: &koalas.Float64ColumnType{}, Values: []interface{}{1.0, 3.0, 5.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("key")
	require.Nil(t, err)
	means, err := grouped.Mean()
	require.Nil(t, err)
	require.Equal(t, []string{"value"}, means.Metadata().DataColumns())

	rows, err := means.Collect(context.Background())
	require.Nil(t, err)
	v, err := rows[0].GetFloat64("value")
	require.Nil(t, err)
	require.Equal(t, 2.0, v)
}

func TestGroupByStdVar(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "g", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(1)}},
		memory.Column{Name: "v", Type: &koalas.Float64ColumnType{}, Values: []interface{}{1.0, 2.0, 3.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("g")
	require.Nil(t, err)

	variance, err := grouped.Var()
	require.Nil(t, err)
	rows, err := variance.Collect(context.Background())
	require.Nil(t, err)
	v, err := rows[0].GetFloat64("v")
	require.Nil(t, err)
	require.InDelta(t, 1.0, v, 1e-9)

	std, err := grouped.Std()
	require.Nil(t, err)
	rows, err = std.Collect(context.Background())
	require.Nil(t, err)
	s, err := rows[0].GetFloat64("v")
	require.Nil(t, err)
	require.InDelta(t, 1.0, s, 1e-9)
}

func TestGroupByAggregate(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(2), int64(2)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(3), int64(4)}},
		memory.Column{Name: "C", Type: &koalas.Float64ColumnType{}, Values: []interface{}{0.362, 0.227, 1.267, -0.562}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	agged, err := grouped.Aggregate(koalas.AggSpec{
		koalas.Agg("B", "min"),
		koalas.Agg("C", "sum"),
	})
	require.Nil(t, err)
	require.Equal(t, []string{"B", "C"}, agged.Metadata().DataColumns())
	require.False(t, agged.Metadata().HasColumnLabels())

	sorted, err := agged.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))
	b, err := rows[0].GetInt64("B")
	require.Nil(t, err)
	require.EqualValues(t, 1, b)
	c, err := rows[0].GetFloat64("C")
	require.Nil(t, err)
	require.InDelta(t, 0.589, c, 1e-9)
	c, err = rows[1].GetFloat64("C")
	require.Nil(t, err)
	require.InDelta(t, 0.705, c, 1e-9)
}

func TestGroupByAggregateMultiFunc(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(2), int64(2)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(3), int64(4)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	agged, err := grouped.Aggregate(koalas.AggSpec{koalas.Agg("B", "min", "max")})
	require.Nil(t, err)
	require.Equal(t, []string{"(B, min)", "(B, max)"}, agged.Metadata().DataColumns())
	require.Equal(t, [][]string{{"B", "min"}, {"B", "max"}}, agged.Metadata().ColumnLabels())

	sorted, err := agged.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	lo, err := rows[1].GetInt64("(B, min)")
	require.Nil(t, err)
	require.EqualValues(t, 3, lo)
	hi, err := rows[1].GetInt64("(B, max)")
	require.Nil(t, err)
	require.EqualValues(t, 4, hi)
}

func TestGroupByAggregateValidation(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	_, err = grouped.Aggregate(nil)
	var conf errors.ConfigurationError
	require.ErrorAs(t, err, &conf)
	require.Contains(t, err.Error(), "mapping from column name to aggregate functions")

	_, err = grouped.Aggregate(koalas.AggSpec{koalas.Agg("missing", "min")})
	require.ErrorAs(t, err, &conf)

	_, err = grouped.Aggregate(koalas.AggSpec{koalas.Agg("B", "median")})
	require.ErrorAs(t, err, &conf)
	require.Contains(t, err.Error(), "unknown aggregate function")
}

func TestGroupByNunique(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "id", Type: &koalas.StringColumnType{}, Values: []interface{}{"spam", "egg", "egg", "spam", "ham", "ham"}},
		memory.Column{Name: "value", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(5), int64(5), int64(2), int64(5), int64(5)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("id")
	require.Nil(t, err)
	agged, err := grouped.Aggregate(koalas.AggSpec{koalas.Agg("value", "nunique")})
	require.Nil(t, err)

	sorted, err := agged.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 3, len(rows))
	// egg, ham, spam in index order
	n, err := rows[0].GetInt64("value")
	require.Nil(t, err)
	require.EqualValues(t, 1, n)
	n, err = rows[2].GetInt64("value")
	require.Nil(t, err)
	require.EqualValues(t, 2, n)
}

func TestGroupByAllAny(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{
			int64(1), int64(1), int64(2), int64(2), int64(3), int64(3), int64(4), int64(4), int64(5), int64(5),
		}},
		memory.Column{Name: "B", Type: &koalas.Float64ColumnType{}, Values: []interface{}{
			1.0, 2.0, 3.0, 0.0, 4.0, nil, 5.0, nil, nil, nil,
		}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	all, err := grouped.All()
	require.Nil(t, err)
	rows, err := all.Collect(context.Background())
	require.Nil(t, err)
	expectAll := []bool{true, false, true, true, true}
	for i, want := range expectAll {
		got, err := rows[i].GetBool("B")
		require.Nil(t, err)
		require.Equal(t, want, got, "all for group %d", i+1)
	}

	any, err := grouped.Any()
	require.Nil(t, err)
	rows, err = any.Collect(context.Background())
	require.Nil(t, err)
	expectAny := []bool{true, true, true, true, false}
	for i, want := range expectAny {
		got, err := rows[i].GetBool("B")
		require.Nil(t, err)
		require.Equal(t, want, got, "any for group %d", i+1)
	}
}

func TestGroupBySize(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(2), int64(3), int64(3), int64(3)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(2), int64(3), int64(3), int64(3)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	size, err := grouped.Size()
	require.Nil(t, err)
	require.True(t, size.IsSeries())
	require.Equal(t, []string{"count"}, size.Metadata().DataColumns())

	// narrowing to one column renames the output after it
	narrowed, err := grouped.Narrow("B")
	require.Nil(t, err)
	size, err = narrowed.Size()
	require.Nil(t, err)
	require.Equal(t, "B", size.Name())

	sorted, err := size.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	counts := make([]int64, len(rows))
	for i, row := range rows {
		n, err := row.GetInt64("B")
		require.Nil(t, err)
		counts[i] = n
	}
	require.Equal(t, []int64{1, 2, 3}, counts)
}

func TestGroupByCumSum(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(1), int64(4)}},
		memory.Column{Name: "B", Type: &koalas.Float64ColumnType{}, Values: []interface{}{math.NaN(), 0.1, 20.0, 10.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	summed, err := grouped.CumSum()
	require.Nil(t, err)
	require.Equal(t, []string{"B"}, summed.Metadata().DataColumns())

	sorted, err := summed.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 4, len(rows))
	first, err := rows[0].GetFloat64("B")
	require.Nil(t, err)
	require.True(t, math.IsNaN(first))
	second, err := rows[1].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 0.1, second, 1e-9)
	third, err := rows[2].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 20.1, third, 1e-9)
	fourth, err := rows[3].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 10.0, fourth, 1e-9)
}

func TestGroupByCumProd(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1), int64(1), int64(4)}},
		memory.Column{Name: "B", Type: &koalas.Float64ColumnType{}, Values: []interface{}{math.NaN(), 0.1, 20.0, 10.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	prod, err := grouped.CumProd()
	require.Nil(t, err)

	sorted, err := prod.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	first, err := rows[0].GetFloat64("B")
	require.Nil(t, err)
	require.True(t, math.IsNaN(first))
	second, err := rows[1].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 0.1, second, 1e-9)
	third, err := rows[2].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 2.0, third, 1e-9)
	fourth, err := rows[3].GetFloat64("B")
	require.Nil(t, err)
	require.InDelta(t, 10.0, fourth, 1e-9)
}

func TestGroupByCumProdRejectsNonPositive(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1)}},
		memory.Column{Name: "B", Type: &koalas.Float64ColumnType{}, Values: []interface{}{2.0, -1.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	prod, err := grouped.CumProd()
	require.Nil(t, err, "the violation should only surface at execution")

	_, err = prod.Collect(context.Background())
	var comp errors.ComputationError
	require.ErrorAs(t, err, &comp)
	require.Equal(t, "cumprod", comp.Op)
	require.Contains(t, err.Error(), "values should be bigger than 0")
}

func TestGroupByCumulativeExcludesKeys(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(1)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	summed, err := grouped.CumSum()
	require.Nil(t, err)
	require.Equal(t, []string{"B"}, summed.Metadata().DataColumns())
	require.False(t, summed.Schema().HasColumn("A"))
	// the original index survives
	require.Equal(t, frame.Metadata().IndexColumnNames(), summed.Metadata().IndexColumnNames())
}

func TestGroupByApply(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.StringColumnType{}, Values: []interface{}{"a", "a", "b"}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(3)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	declared := koalas.CreateSchema()
	declared, _ = declared.CreateColumn("key", &koalas.StringColumnType{})
	declared, _ = declared.CreateColumn("total", &koalas.Int64ColumnType{})

	applied, err := grouped.Apply(func(group *koalas.LocalFrame) (*koalas.LocalFrame, error) {
		var key string
		var total int64
		err := group.ForEachRow(func(row koalas.Row) error {
			k, err := row.GetString("A")
			if err != nil {
				return err
			}
			key = k
			b, err := row.GetInt64("B")
			if err != nil {
				return err
			}
			total += b
			return nil
		})
		if err != nil {
			return nil, err
		}
		// output columns are renamed positionally to the declared schema
		result := koalas.CreateSchema()
		result, _ = result.CreateColumn("A", &koalas.StringColumnType{})
		result, _ = result.CreateColumn("B", &koalas.Int64ColumnType{})
		out := koalas.CreateLocalFrame(result)
		if err := out.Append(key, total); err != nil {
			return nil, err
		}
		return out, nil
	}, declared)
	require.Nil(t, err)
	// free-form grouped output loses row identity
	require.Equal(t, 0, len(applied.Metadata().IndexColumns()))
	require.Equal(t, []string{"key", "total"}, applied.Metadata().DataColumns())

	rows, err := applied.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))
	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		key, err := row.GetString("key")
		require.Nil(t, err)
		total, err := row.GetInt64("total")
		require.Nil(t, err)
		totals[key] = total
	}
	require.Equal(t, map[string]int64{"a": 3, "b": 3}, totals)
}

func TestGroupByApplyValidation(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	_, err = grouped.Apply(nil, koalas.CreateSchema())
	var mismatch errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)

	_, err = grouped.Apply(func(g *koalas.LocalFrame) (*koalas.LocalFrame, error) {
		return g, nil
	}, nil)
	var conf errors.ConfigurationError
	require.ErrorAs(t, err, &conf)
	require.Contains(t, err.Error(), "declared return schema")
}

func TestGroupByTransform(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(0), int64(0), int64(1)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(3)}},
		memory.Column{Name: "C", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(4), int64(6), int64(5)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	transformed, err := grouped.Transform(func(group *koalas.LocalFrame) (*koalas.LocalFrame, error) {
		schema := koalas.CreateSchema()
		schema, _ = schema.CreateColumn("B", &koalas.Int64ColumnType{})
		schema, _ = schema.CreateColumn("C", &koalas.Int64ColumnType{})
		out := koalas.CreateLocalFrame(schema)
		err := group.ForEachRow(func(row koalas.Row) error {
			b, err := row.GetInt64("B")
			if err != nil {
				return err
			}
			c, err := row.GetInt64("C")
			if err != nil {
				return err
			}
			return out.Append(b+1, c+1)
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}, &koalas.Int64ColumnType{})
	require.Nil(t, err)
	require.Equal(t, []string{"B", "C"}, transformed.Metadata().DataColumns())
	// unlike apply, the index survives a transform
	require.Equal(t, frame.Metadata().IndexColumnNames(), transformed.Metadata().IndexColumnNames())

	sorted, err := transformed.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 3, len(rows))
	wantB := []int64{2, 3, 4}
	wantC := []int64{5, 7, 6}
	for i := range rows {
		b, err := rows[i].GetInt64("B")
		require.Nil(t, err)
		require.Equal(t, wantB[i], b)
		c, err := rows[i].GetInt64("C")
		require.Nil(t, err)
		require.Equal(t, wantC[i], c)
	}
}

func TestGroupByTransformRowCountMismatch(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(0), int64(0)}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2)}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	transformed, err := grouped.Transform(func(group *koalas.LocalFrame) (*koalas.LocalFrame, error) {
		schema := koalas.CreateSchema()
		schema, _ = schema.CreateColumn("B", &koalas.Int64ColumnType{})
		out := koalas.CreateLocalFrame(schema)
		return out, out.Append(int64(0))
	}, &koalas.Int64ColumnType{})
	require.Nil(t, err)

	_, err = transformed.Collect(context.Background())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "rows")
}

func TestGroupByTransformValidation(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	_, err = grouped.Transform(nil, &koalas.Int64ColumnType{})
	var mismatch errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)

	_, err = grouped.Transform(func(g *koalas.LocalFrame) (*koalas.LocalFrame, error) {
		return g, nil
	}, nil)
	var conf errors.ConfigurationError
	require.ErrorAs(t, err, &conf)
	require.Contains(t, err.Error(), "declared return type")

	_, err = grouped.Filter(nil)
	require.ErrorAs(t, err, &mismatch)
}

func TestGroupByFilter(t *testing.T) {
	frame, err := memory.CreateFrame(nil,
		memory.Column{Name: "A", Type: &koalas.StringColumnType{}, Values: []interface{}{"foo", "bar", "foo", "bar", "foo", "bar"}},
		memory.Column{Name: "B", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)}},
		memory.Column{Name: "C", Type: &koalas.Float64ColumnType{}, Values: []interface{}{2.0, 5.0, 8.0, 1.0, 2.0, 9.0}},
	)
	require.Nil(t, err)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	filtered, err := grouped.Filter(func(group *koalas.LocalFrame) (bool, error) {
		values, err := group.Values("B")
		if err != nil {
			return false, err
		}
		var sum int64
		for _, v := range values {
			sum += v.(int64)
		}
		return float64(sum)/float64(len(values)) > 3.0, nil
	})
	require.Nil(t, err)
	// surviving rows keep the parent's shape
	require.Equal(t, frame.Metadata().DataColumns(), filtered.Metadata().DataColumns())
	require.Equal(t, frame.Metadata().IndexColumnNames(), filtered.Metadata().IndexColumnNames())

	sorted, err := filtered.SortIndex()
	require.Nil(t, err)
	rows, err := sorted.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 3, len(rows))
	for i, want := range []int64{2, 4, 6} {
		a, err := rows[i].GetString("A")
		require.Nil(t, err)
		require.Equal(t, "bar", a)
		b, err := rows[i].GetInt64("B")
		require.Nil(t, err)
		require.Equal(t, want, b)
	}
}

func TestGroupByReuse(t *testing.T) {
	frame := countFrame(t)
	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)

	_, err = grouped.Count()
	require.Nil(t, err)
	_, err = grouped.Max()
	require.Nil(t, err)
	size, err := grouped.Size()
	require.Nil(t, err)
	require.Equal(t, "count", size.Name())
}

func TestGroupByMissingKey(t *testing.T) {
	frame := countFrame(t)
	_, err := frame.GroupBy("missing")
	var notFound errors.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, []string{"missing"}, notFound.Labels)

	grouped, err := frame.GroupBy("A")
	require.Nil(t, err)
	_, err = grouped.Narrow("missing")
	require.ErrorAs(t, err, &notFound)
}
