// Package jsonl loads Frames from JSON Lines data. Columns are extracted
// lazily from each line using https://github.com/tidwall/gjson, so column
// names may be gjson paths into nested objects. Values in the JSON that no
// column names are ignored; missing or null values become null cells.
package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"time"

	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/datasource/memory"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/rising-star92/databricks-koalas/internal/engine"
	"github.com/tidwall/gjson"
)

// Column names one value to extract per line. Name doubles as the gjson
// path used to locate the value.
type Column struct {
	Name string
	Type koalas.ColumnType
}

// Conf configures JSONL loading
type Conf struct {
	Engine        *engine.Config // execution tuning; nil uses engine defaults
	HeaderLines   int            // lines to skip at the start of the stream
	MaxBufferSize int            // maximum line length in bytes
	TimeFormat    string         // layout for time columns; defaults to RFC 3339
}

// CreateFrame reads JSON Lines from r and builds a Frame with one data
// column per given Column. Rows receive a synthesized unnamed sequential
// index.
func CreateFrame(r io.Reader, conf *Conf, cols ...Column) (*koalas.Frame, error) {
	if conf == nil {
		conf = &Conf{}
	}
	if len(cols) == 0 {
		return nil, errors.ConfigurationError{Op: "load jsonl", Message: "at least one column is required"}
	}
	timeFormat := conf.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	scanner := bufio.NewScanner(r)
	if conf.MaxBufferSize > 0 {
		scanner.Buffer(make([]byte, 0, 4096), conf.MaxBufferSize)
	}
	for i := 0; i < conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	vectors := make([]memory.Column, len(cols))
	for i, col := range cols {
		vectors[i] = memory.Column{Name: col.Name, Type: col.Type}
	}
	lineNum := conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if !gjson.Valid(line) {
			return nil, errors.ConfigurationError{Op: "load jsonl", Message: fmt.Sprintf("line %d is not valid JSON", lineNum)}
		}
		for i, col := range cols {
			v, err := extract(gjson.Get(line, col.Name), col, timeFormat)
			if err != nil {
				return nil, errors.TypeMismatchError{Op: "load jsonl", Message: fmt.Sprintf("line %d: %v", lineNum, err)}
			}
			vectors[i].Values = append(vectors[i].Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return memory.CreateFrame(&memory.Conf{Engine: conf.Engine}, vectors...)
}

func extract(res gjson.Result, col Column, timeFormat string) (interface{}, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	switch col.Type.(type) {
	case *koalas.BoolColumnType:
		if !res.IsBool() {
			return nil, fmt.Errorf("column %s was not a boolean, was: %s", col.Name, res.Raw)
		}
		return res.Bool(), nil
	case *koalas.Int32ColumnType:
		if res.Type != gjson.Number {
			return nil, fmt.Errorf("column %s was not a number, was: %s", col.Name, res.Raw)
		}
		return int32(res.Int()), nil
	case *koalas.Int64ColumnType:
		if res.Type != gjson.Number {
			return nil, fmt.Errorf("column %s was not a number, was: %s", col.Name, res.Raw)
		}
		return res.Int(), nil
	case *koalas.Float64ColumnType:
		if res.Type != gjson.Number {
			return nil, fmt.Errorf("column %s was not a number, was: %s", col.Name, res.Raw)
		}
		return res.Float(), nil
	case *koalas.StringColumnType:
		if res.Type != gjson.String {
			return nil, fmt.Errorf("column %s was not a string, was: %s", col.Name, res.Raw)
		}
		return res.String(), nil
	case *koalas.TimeColumnType:
		if res.Type != gjson.String {
			return nil, fmt.Errorf("column %s was not a datetime string, was: %s", col.Name, res.Raw)
		}
		t, err := time.Parse(timeFormat, res.String())
		if err != nil {
			return nil, fmt.Errorf("column %s could not be parsed as datetime with format %s, was: %s", col.Name, timeFormat, res.Raw)
		}
		return t, nil
	}
	return nil, fmt.Errorf("JSONL loading does not support column type %T", col.Type)
}
