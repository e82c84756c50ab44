// Package missing is a static registry of recognized-but-unimplemented API
// names. It maps each name to a structured descriptor carrying the attempted
// name and a suggested replacement idiom, and is consulted only when a
// requested name is not otherwise resolvable.
package missing

import (
	kerrors "github.com/rising-star92/databricks-koalas/errors"
)

// Kind distinguishes unimplemented functions from unimplemented properties
type Kind string

const (
	// KindFunction marks an unimplemented function
	KindFunction Kind = "function"
	// KindProperty marks an unimplemented property
	KindProperty Kind = "property"
)

// Descriptor is a structured "not implemented" result for one API name
type Descriptor struct {
	Name       string
	Kind       Kind
	Suggestion string
}

// Err returns the error a caller should receive when the described name is
// requested
func (d Descriptor) Err() error {
	return kerrors.UnsupportedOperationError{
		Name:       d.Name,
		Kind:       string(d.Kind),
		Suggestion: d.Suggestion,
	}
}

func function(name, suggestion string) Descriptor {
	return Descriptor{Name: name, Kind: KindFunction, Suggestion: suggestion}
}

func property(name, suggestion string) Descriptor {
	return Descriptor{Name: name, Kind: KindProperty, Suggestion: suggestion}
}

// frameNames lists the recognized frame API surface this layer does not
// implement
var frameNames = makeRegistry([]Descriptor{
	property("iloc", "select rows by label with Loc instead of by position"),
	property("at", "use Loc with a single-element label list"),
	property("iat", "use Loc with a single-element label list"),
	property("values", "use Collect to materialize rows"),
	property("axes", "use Metadata to inspect index and data columns"),
	function("pivot", "use GroupBy with Aggregate"),
	function("melt", "use GroupBy with Apply"),
	function("append", "construct a new frame from a datasource"),
	function("asof", "use Loc with a label range"),
	function("query", "use Loc with a predicate"),
	function("sample", "use Loc with a predicate"),
	function("sort_values", "use SortIndex, or sort after Collect"),
	function("stack", "use GroupBy with Apply"),
	function("unstack", "use GroupBy with Apply"),
})

// groupByNames lists the recognized group-by API surface this layer does not
// implement
var groupByNames = makeRegistry([]Descriptor{
	property("groups", "use Aggregate to compute per-group results"),
	property("indices", "use Aggregate to compute per-group results"),
	function("median", "use Aggregate with an explicit function list"),
	function("nth", "use First or Last"),
	function("ohlc", "use Aggregate with min, max, first and last"),
	function("rank", "use Apply with a declared schema"),
	function("resample", "use Apply with a declared schema"),
	function("rolling", "use Apply with a declared schema"),
	function("shift", "use Apply with a declared schema"),
	function("describe", "use Aggregate with an explicit function list"),
})

func makeRegistry(descriptors []Descriptor) map[string]Descriptor {
	registry := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		registry[d.Name] = d
	}
	return registry
}

// LookupFrame resolves a frame API name against the registry
func LookupFrame(name string) (Descriptor, bool) {
	d, ok := frameNames[name]
	return d, ok
}

// LookupGroupBy resolves a group-by API name against the registry
func LookupGroupBy(name string) (Descriptor, bool) {
	d, ok := groupByNames[name]
	return d, ok
}
