package partition

import (
	"bytes"
	"encoding/gob"
	"io"
	"time"

	"github.com/pierrec/lz4"

	koalas "github.com/rising-star92/databricks-koalas"
)

// nullValue stands in for nil column values, which gob cannot encode
type nullValue struct{}

func init() {
	gob.Register(false)
	gob.Register(int32(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(time.Time{})
	gob.Register(nullValue{})
}

// Compress serializes and lz4-compresses this Partition's row data to a
// write stream. The schema is not serialized; Decompress requires it.
func (p *Partition) Compress(w io.Writer) error {
	encodable := make([][]interface{}, len(p.rows))
	for i, values := range p.rows {
		row := make([]interface{}, len(values))
		for j, v := range values {
			if v == nil {
				row[j] = nullValue{}
			} else {
				row[j] = v
			}
		}
		encodable[i] = row
	}
	compressor := lz4.NewWriter(w)
	if err := gob.NewEncoder(compressor).Encode(encodable); err != nil {
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition row data from a read
// stream, attaching the given schema
func Decompress(r io.Reader, schema koalas.Schema) (*Partition, error) {
	decompressor := lz4.NewReader(r)
	buff := new(bytes.Buffer)
	if _, err := buff.ReadFrom(decompressor); err != nil {
		return nil, err
	}
	var rows [][]interface{}
	if err := gob.NewDecoder(buff).Decode(&rows); err != nil {
		return nil, err
	}
	for _, values := range rows {
		for j, v := range values {
			if _, isNull := v.(nullValue); isNull {
				values[j] = nil
			}
		}
	}
	return &Partition{schema: schema, rows: rows}, nil
}

// ToBytes serializes and compresses this Partition's row data
func (p *Partition) ToBytes() ([]byte, error) {
	buff := new(bytes.Buffer)
	if err := p.Compress(buff); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes decompresses and deserializes partition row data produced by
// ToBytes, attaching the given schema
func FromBytes(data []byte, schema koalas.Schema) (*Partition, error) {
	return Decompress(bytes.NewReader(data), schema)
}
