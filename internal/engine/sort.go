package engine

import (
	"sort"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/internal/partition"
)

// runSort gathers all partitions and stable-sorts their rows ascending by
// the sort columns, nulls first
func runSort(parts []*partition.Partition, t *sortTask, schema koalas.Schema) ([]*partition.Partition, error) {
	idxs, err := columnIndexes(schema, t.cols)
	if err != nil {
		return nil, err
	}
	colTypes := make([]koalas.ColumnType, len(t.cols))
	for i, col := range t.cols {
		colTypes[i], err = schema.GetColumnType(col)
		if err != nil {
			return nil, err
		}
	}

	var rows [][]interface{}
	for _, part := range parts {
		for i := 0; i < part.NumRows(); i++ {
			rows = append(rows, part.GetRowValues(i))
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		for i, idx := range idxs {
			cmp := compareNullable(colTypes[i], rows[a][idx], rows[b][idx])
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	out := partition.CreatePartition(schema)
	for _, row := range rows {
		if err := out.AppendValues(row); err != nil {
			return nil, err
		}
	}
	return []*partition.Partition{out}, nil
}

func compareNullable(colType koalas.ColumnType, a interface{}, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	return colType.Compare(a, b)
}
