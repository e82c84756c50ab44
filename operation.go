package koalas

// FilterOperation - a generic function for determining whether or not a Row
// should be retained
type FilterOperation func(row Row) (bool, error)

// ColumnOperation - a generic function computing a single column value from a
// Row, used to populate computed columns
type ColumnOperation func(row Row) (interface{}, error)

// GroupedMapOperation - a function invoked once per physical group with that
// group's rows, returning replacement rows for the group
type GroupedMapOperation func(group *LocalFrame) (*LocalFrame, error)

// GroupedFilterOperation - a function invoked once per physical group,
// returning a verdict on whether the whole group should be retained
type GroupedFilterOperation func(group *LocalFrame) (bool, error)
