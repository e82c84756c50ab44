package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/rising-star92/databricks-koalas/internal/partition"
	"golang.org/x/sync/errgroup"
)

// groupKey encodes key column values into a map key. Values are tagged with
// their dynamic type so equal renderings of different types stay distinct.
func groupKey(values []interface{}, keyIdxs []int) string {
	var b strings.Builder
	for _, i := range keyIdxs {
		v := values[i]
		if v == nil {
			b.WriteString("<nil>;")
			continue
		}
		fmt.Fprintf(&b, "%T:%v;", v, v)
	}
	return b.String()
}

func columnIndexes(schema koalas.Schema, cols []string) ([]int, error) {
	idxs := make([]int, len(cols))
	for i, col := range cols {
		idx, err := schema.ColumnIndex(col)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}
	return idxs, nil
}

// groupAggState is one group's key values plus one accumulator per
// aggregation
type groupAggState struct {
	keyValues []interface{}
	accs      []accumulator
}

// runGroupAgg reduces all partitions to one partition of group rows. The
// scan is sequential in row order so order-sensitive aggregations (first,
// last) are deterministic, and output groups appear in first-seen order.
func runGroupAgg(parts []*partition.Partition, t *groupAggTask, schema koalas.Schema) ([]*partition.Partition, error) {
	keyCols := make([]string, len(t.keys))
	for i, key := range t.keys {
		keyCols[i] = key.Column
	}
	keyIdxs, err := columnIndexes(schema, keyCols)
	if err != nil {
		return nil, err
	}
	aggIdxs := make([]int, len(t.aggs))
	aggTypes := make([]koalas.ColumnType, len(t.aggs))
	for i, agg := range t.aggs {
		if agg.Op == koalas.AggCountAll {
			aggIdxs[i] = -1
			continue
		}
		idx, err := schema.ColumnIndex(agg.Source)
		if err != nil {
			return nil, err
		}
		aggIdxs[i] = idx
		aggTypes[i], err = schema.GetColumnType(agg.Source)
		if err != nil {
			return nil, err
		}
	}

	groups := make(map[string]*groupAggState)
	var order []string
	for _, part := range parts {
		for i := 0; i < part.NumRows(); i++ {
			values := part.GetRowValues(i)
			gk := groupKey(values, keyIdxs)
			state, ok := groups[gk]
			if !ok {
				state = &groupAggState{
					keyValues: make([]interface{}, len(keyIdxs)),
					accs:      make([]accumulator, len(t.aggs)),
				}
				for j, idx := range keyIdxs {
					state.keyValues[j] = values[idx]
				}
				for j, agg := range t.aggs {
					state.accs[j] = newAccumulator(agg, aggTypes[j])
				}
				groups[gk] = state
				order = append(order, gk)
			}
			for j, agg := range t.aggs {
				var v interface{}
				if aggIdxs[j] >= 0 {
					v = values[aggIdxs[j]]
				}
				prepped, err := prepValue(v, agg)
				if err != nil {
					return nil, err
				}
				if err := state.accs[j].accumulate(prepped); err != nil {
					return nil, err
				}
			}
		}
	}

	out := partition.CreatePartition(t.target)
	for _, gk := range order {
		state := groups[gk]
		row := make([]interface{}, 0, len(state.keyValues)+len(state.accs))
		row = append(row, state.keyValues...)
		for _, acc := range state.accs {
			row = append(row, acc.result())
		}
		if err := out.AppendValues(row); err != nil {
			return nil, err
		}
	}
	return []*partition.Partition{out}, nil
}

// shuffleBucket buffers one shuffle bucket's rows. Rows past the spill
// threshold are staged as compressed chunks to bound live memory.
type shuffleBucket struct {
	live      *partition.Partition
	spilled   [][]byte
	spillRows int
}

func (b *shuffleBucket) append(values []interface{}) error {
	if err := b.live.AppendValues(values); err != nil {
		return err
	}
	if b.live.NumRows() >= b.spillRows {
		return b.spill()
	}
	return nil
}

func (b *shuffleBucket) spill() error {
	chunk, err := b.live.ToBytes()
	if err != nil {
		return err
	}
	b.spilled = append(b.spilled, chunk)
	b.live = partition.CreatePartition(b.live.Schema())
	return nil
}

// restore replays the bucket's rows in their original order
func (b *shuffleBucket) restore(schema koalas.Schema) (*partition.Partition, error) {
	if len(b.spilled) == 0 {
		return b.live, nil
	}
	out := partition.CreatePartition(schema)
	for _, chunk := range b.spilled {
		part, err := partition.FromBytes(chunk, schema)
		if err != nil {
			return nil, err
		}
		for i := 0; i < part.NumRows(); i++ {
			if err := out.AppendValues(part.GetRowValues(i)); err != nil {
				return nil, err
			}
		}
	}
	for i := 0; i < b.live.NumRows(); i++ {
		if err := out.AppendValues(b.live.GetRowValues(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// runGroupMap shuffles rows into buckets by key hash, then runs the user
// function over each bucket's groups concurrently. Rows of one group all
// land in one bucket and keep their relative order.
func runGroupMap(ctx context.Context, parts []*partition.Partition, t *groupMapTask, schema koalas.Schema, conf *Config) ([]*partition.Partition, error) {
	keyIdxs, err := columnIndexes(schema, t.keys)
	if err != nil {
		return nil, err
	}

	numBuckets := conf.Parallelism
	buckets := make([]*shuffleBucket, numBuckets)
	for i := range buckets {
		buckets[i] = &shuffleBucket{
			live:      partition.CreatePartition(schema),
			spillRows: conf.ShuffleSpillRows,
		}
	}
	for _, part := range parts {
		for i := 0; i < part.NumRows(); i++ {
			values := part.GetRowValues(i)
			gk := groupKey(values, keyIdxs)
			b := xxhash.Sum64String(gk) % uint64(numBuckets)
			if err := buckets[b].append(values); err != nil {
				return nil, err
			}
		}
	}

	outputs := make([]*partition.Partition, numBuckets)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(conf.Parallelism)
	for i := range buckets {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := mapBucket(buckets[i], t, schema, keyIdxs)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// mapBucket materializes one bucket, splits it into groups in first-seen
// order and applies the user function to each
func mapBucket(bucket *shuffleBucket, t *groupMapTask, schema koalas.Schema, keyIdxs []int) (*partition.Partition, error) {
	part, err := bucket.restore(schema)
	if err != nil {
		return nil, err
	}
	groups := make(map[string]*koalas.LocalFrame)
	var order []string
	for i := 0; i < part.NumRows(); i++ {
		values := part.GetRowValues(i)
		gk := groupKey(values, keyIdxs)
		frame, ok := groups[gk]
		if !ok {
			frame = koalas.CreateLocalFrame(schema)
			groups[gk] = frame
			order = append(order, gk)
		}
		if err := frame.Append(values...); err != nil {
			return nil, err
		}
	}
	out := partition.CreatePartition(t.declared)
	var errs *multierror.Error
	for _, gk := range order {
		result, err := t.fn(groups[gk])
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if result == nil {
			continue
		}
		if err := t.declared.Equals(result.Schema()); err != nil {
			errs = multierror.Append(errs, errors.TypeMismatchError{Message: fmt.Sprintf("grouped function returned unexpected schema: %v", err)})
			continue
		}
		for i := 0; i < result.NumRows(); i++ {
			if err := out.AppendValues(result.RowAt(i)); err != nil {
				return nil, err
			}
		}
	}
	return out, errs.ErrorOrNil()
}
