// Package memory builds Frames from in-memory column vectors. It is the
// primary entry point for constructing a Frame from Go values, and is also
// useful for testing.
package memory

import (
	"fmt"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/rising-star92/databricks-koalas/internal/engine"
)

// Column is one named, typed column vector. A nil value is a null cell.
type Column struct {
	Name   string
	Type   koalas.ColumnType
	Values []interface{}
}

// Conf configures Frame creation
type Conf struct {
	Engine *engine.Config // execution tuning; nil uses engine defaults
}

// CreateFrame builds a Frame over the given columns. All columns must have
// the same length. Rows receive a synthesized unnamed sequential index.
func CreateFrame(conf *Conf, cols ...Column) (*koalas.Frame, error) {
	if conf == nil {
		conf = &Conf{}
	}
	if len(cols) == 0 {
		return nil, errors.ConfigurationError{Op: "create frame", Message: "at least one column is required"}
	}
	numRows := len(cols[0].Values)
	indexCol := koalas.IndexAlias(0)
	schema := koalas.CreateSchema()
	schema, err := schema.CreateColumn(indexCol, &koalas.Int64ColumnType{})
	if err != nil {
		return nil, err
	}
	dataColumns := make([]string, len(cols))
	for i, col := range cols {
		if col.Type == nil {
			return nil, errors.ConfigurationError{Op: "create frame", Message: fmt.Sprintf("column %s has no type", col.Name)}
		}
		if len(col.Values) != numRows {
			return nil, errors.ConfigurationError{Op: "create frame", Message: fmt.Sprintf("column %s has %d values, expected %d", col.Name, len(col.Values), numRows)}
		}
		schema, err = schema.CreateColumn(col.Name, col.Type)
		if err != nil {
			return nil, err
		}
		dataColumns[i] = col.Name
	}

	rows := make([][]interface{}, numRows)
	for i := 0; i < numRows; i++ {
		row := make([]interface{}, 0, len(cols)+1)
		row = append(row, int64(i))
		for _, col := range cols {
			v := col.Values[i]
			if v != nil {
				v, err = col.Type.Cast(v)
				if err != nil {
					return nil, errors.TypeMismatchError{Op: "create frame", Message: fmt.Sprintf("column %s row %d: %v", col.Name, i, err)}
				}
			}
			row = append(row, v)
		}
		rows[i] = row
	}

	plan, err := engine.FromValues(schema, rows, conf.Engine)
	if err != nil {
		return nil, err
	}
	meta, err := koalas.NewMetadata(
		[]koalas.IndexColumn{{Column: indexCol}},
		dataColumns,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return koalas.NewFrame(plan, meta)
}
