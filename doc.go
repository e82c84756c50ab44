// Package koalas provides a label-indexed, mutable-looking dataframe
// programming model over an immutable, lazily-planned columnar relation.
// The root package defines the value types and interfaces which make that
// illusion sound: frame metadata tracking index vs data columns, a
// label-based locator translating row/column selection into plan rewrites,
// and a group-by engine lowering per-group operations to pushdown
// aggregations or grouped-map execution. Frames are constructed via the
// datasource packages and evaluated lazily by the engine under internal/.
package koalas
