package koalas

import "fmt"

// IndexColumn designates a physical column as carrying row-label identity,
// along with an optional display name. An empty Name means the index level
// is unnamed.
type IndexColumn struct {
	Column string
	Name   string
}

// Metadata is an immutable value describing, for one plan snapshot, which
// output columns are index columns and which are data columns, and how data
// columns are labeled. A Metadata value is attached to exactly one Plan;
// every plan rewrite must produce a new Metadata in the same step so the two
// never drift apart.
type Metadata struct {
	indexColumns []IndexColumn
	dataColumns  []string
	columnLabels [][]string
}

// IndexAlias returns the reserved physical column name for index level i
func IndexAlias(i int) string {
	return fmt.Sprintf("__index_level_%d__", i)
}

// NewMetadata builds a Metadata value. columnLabels may be nil; when present
// it must align 1:1 with dataColumns.
func NewMetadata(indexColumns []IndexColumn, dataColumns []string, columnLabels [][]string) (Metadata, error) {
	if columnLabels != nil && len(columnLabels) != len(dataColumns) {
		return Metadata{}, fmt.Errorf(
			"metadata has %d column labels for %d data columns", len(columnLabels), len(dataColumns))
	}
	return Metadata{
		indexColumns: copyIndexColumns(indexColumns),
		dataColumns:  copyStrings(dataColumns),
		columnLabels: copyLabels(columnLabels),
	}, nil
}

// IndexColumns returns the ordered index columns of this Metadata
func (m Metadata) IndexColumns() []IndexColumn {
	return copyIndexColumns(m.indexColumns)
}

// IndexColumnNames returns the physical column names of the index, in order
func (m Metadata) IndexColumnNames() []string {
	names := make([]string, len(m.indexColumns))
	for i, ic := range m.indexColumns {
		names[i] = ic.Column
	}
	return names
}

// DataColumns returns the ordered data columns of this Metadata
func (m Metadata) DataColumns() []string {
	return copyStrings(m.dataColumns)
}

// HasDataColumn returns true iff the given physical column is one of this
// Metadata's data columns
func (m Metadata) HasDataColumn(colName string) bool {
	for _, c := range m.dataColumns {
		if c == colName {
			return true
		}
	}
	return false
}

// ColumnLabels returns the hierarchical labels of the data columns, or nil
// when the columns are flat-labeled
func (m Metadata) ColumnLabels() [][]string {
	return copyLabels(m.columnLabels)
}

// HasColumnLabels returns true iff this Metadata carries hierarchical labels
func (m Metadata) HasColumnLabels() bool {
	return m.columnLabels != nil
}

// MetadataOption overrides one field during Metadata.Copy
type MetadataOption func(*Metadata)

// WithIndexColumns replaces the index columns during a Copy
func WithIndexColumns(indexColumns []IndexColumn) MetadataOption {
	return func(m *Metadata) {
		m.indexColumns = copyIndexColumns(indexColumns)
	}
}

// WithDataColumns replaces the data columns during a Copy
func WithDataColumns(dataColumns []string) MetadataOption {
	return func(m *Metadata) {
		m.dataColumns = copyStrings(dataColumns)
	}
}

// WithColumnLabels replaces the hierarchical column labels during a Copy
func WithColumnLabels(columnLabels [][]string) MetadataOption {
	return func(m *Metadata) {
		m.columnLabels = copyLabels(columnLabels)
	}
}

// WithoutColumnLabels drops the hierarchical column labels during a Copy
func WithoutColumnLabels() MetadataOption {
	return func(m *Metadata) {
		m.columnLabels = nil
	}
}

// Copy returns a Metadata with the specified fields replaced, leaving the
// others unchanged. This is the only sanctioned way to derive one Metadata
// from another.
func (m Metadata) Copy(opts ...MetadataOption) (Metadata, error) {
	next := Metadata{
		indexColumns: m.indexColumns,
		dataColumns:  m.dataColumns,
		columnLabels: m.columnLabels,
	}
	for _, opt := range opts {
		opt(&next)
	}
	return NewMetadata(next.indexColumns, next.dataColumns, next.columnLabels)
}

func copyIndexColumns(in []IndexColumn) []IndexColumn {
	if in == nil {
		return nil
	}
	out := make([]IndexColumn, len(in))
	copy(out, in)
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyLabels(in [][]string) [][]string {
	if in == nil {
		return nil
	}
	out := make([][]string, len(in))
	for i, l := range in {
		out[i] = copyStrings(l)
	}
	return out
}
