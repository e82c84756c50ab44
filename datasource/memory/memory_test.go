package memory

import (
	"context"
	"testing"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/stretchr/testify/require"
)

func TestCreateFrame(t *testing.T) {
	frame, err := CreateFrame(nil,
		Column{Name: "name", Type: &koalas.StringColumnType{}, Values: []interface{}{"a", "b"}},
		Column{Name: "score", Type: &koalas.Float64ColumnType{}, Values: []interface{}{1.5, nil}},
	)
	require.Nil(t, err)
	require.Equal(t, []string{"name", "score"}, frame.Metadata().DataColumns())

	index := frame.Metadata().IndexColumns()
	require.Equal(t, 1, len(index))
	require.Equal(t, koalas.IndexAlias(0), index[0].Column)
	require.Equal(t, "", index[0].Name, "the synthesized index is unnamed")

	rows, err := frame.Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 2, len(rows))
	idx, err := rows[1].GetInt64(koalas.IndexAlias(0))
	require.Nil(t, err)
	require.EqualValues(t, 1, idx)
	require.True(t, rows[1].IsNil("score"))
}

func TestCreateFrameCastsValues(t *testing.T) {
	frame, err := CreateFrame(nil,
		Column{Name: "v", Type: &koalas.Int64ColumnType{}, Values: []interface{}{1, int32(2), int64(3)}},
	)
	require.Nil(t, err)
	rows, err := frame.Collect(context.Background())
	require.Nil(t, err)
	for i := range rows {
		v, err := rows[i].GetInt64("v")
		require.Nil(t, err)
		require.EqualValues(t, i+1, v)
	}
}

func TestCreateFrameValidation(t *testing.T) {
	_, err := CreateFrame(nil)
	var conf errors.ConfigurationError
	require.ErrorAs(t, err, &conf)

	_, err = CreateFrame(nil,
		Column{Name: "a", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1)}},
		Column{Name: "b", Type: &koalas.Int64ColumnType{}, Values: []interface{}{int64(1), int64(2)}},
	)
	require.ErrorAs(t, err, &conf)
	require.Contains(t, err.Error(), "expected")

	_, err = CreateFrame(nil,
		Column{Name: "a", Type: &koalas.Int64ColumnType{}, Values: []interface{}{"oops"}},
	)
	var mismatch errors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}
