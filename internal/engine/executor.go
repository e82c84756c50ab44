package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	koalas "github.com/rising-star92/databricks-koalas"
	"github.com/rising-star92/databricks-koalas/errors"
	"github.com/rising-star92/databricks-koalas/internal/partition"
	"golang.org/x/sync/errgroup"
)

// collect executes a plan lineage from its source node down to p. Narrow
// tasks run data-parallel across partitions; pipeline breakers gather first.
// Any task error fails the whole job, wrapped as a ComputationError naming
// the failing task.
func collect(ctx context.Context, p *planImpl) ([]koalas.Row, error) {
	lineage := lineageOf(p)
	source, ok := lineage[0].task.(*sourceTask)
	if !ok {
		return nil, errors.ConfigurationError{Message: "plan lineage does not begin at a source"}
	}
	conf := p.conf
	jobID := newID()
	start := time.Now()
	log := conf.Logger.With().Str("job", jobID).Str("plan", p.id).Logger()
	log.Debug().Int("stages", len(lineage)).Int("rows", len(source.rows)).Msg("starting job")

	parts, err := partitionSource(source, lineage[0].schema, conf.PartitionSize)
	if err != nil {
		return nil, err
	}
	for _, node := range lineage[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parts, err = runTask(ctx, parts, node, conf)
		if err != nil {
			log.Debug().Err(err).Str("task", node.task.name()).Msg("job failed")
			return nil, errors.ComputationError{Op: node.task.name(), Cause: err}
		}
	}

	var rows []koalas.Row
	for _, part := range parts {
		for i := 0; i < part.NumRows(); i++ {
			rows = append(rows, part.GetRow(i))
		}
	}
	log.Debug().Int("rows", len(rows)).Dur("elapsed", time.Since(start)).Msg("job finished")
	return rows, nil
}

func lineageOf(p *planImpl) []*planImpl {
	var lineage []*planImpl
	for node := p; node != nil; node = node.parent {
		lineage = append(lineage, node)
	}
	// reverse into source-first order
	for i, j := 0, len(lineage)-1; i < j; i, j = i+1, j-1 {
		lineage[i], lineage[j] = lineage[j], lineage[i]
	}
	return lineage
}

func partitionSource(t *sourceTask, schema koalas.Schema, partitionSize int) ([]*partition.Partition, error) {
	var parts []*partition.Partition
	cur := partition.CreatePartition(schema)
	for _, row := range t.rows {
		if cur.NumRows() >= partitionSize {
			parts = append(parts, cur)
			cur = partition.CreatePartition(schema)
		}
		if err := cur.AppendValues(row); err != nil {
			return nil, err
		}
	}
	if cur.NumRows() > 0 || len(parts) == 0 {
		parts = append(parts, cur)
	}
	return parts, nil
}

func runTask(ctx context.Context, parts []*partition.Partition, node *planImpl, conf *Config) ([]*partition.Partition, error) {
	switch t := node.task.(type) {
	case narrowTask:
		return runNarrow(ctx, parts, t, conf)
	case *groupAggTask:
		return runGroupAgg(parts, t, node.parent.schema)
	case *groupMapTask:
		return runGroupMap(ctx, parts, t, node.parent.schema, conf)
	case *cumulativeTask:
		return runCumulative(parts, t, node.parent.schema)
	case *sortTask:
		return runSort(parts, t, node.parent.schema)
	}
	return nil, errors.ConfigurationError{Message: "unknown task type " + node.task.name()}
}

// runNarrow applies a narrow task to every partition concurrently. Errors
// from all partitions are collected rather than racing to report just one.
func runNarrow(ctx context.Context, parts []*partition.Partition, t narrowTask, conf *Config) ([]*partition.Partition, error) {
	outputs := make([]*partition.Partition, len(parts))
	var mu sync.Mutex
	var errs *multierror.Error
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(conf.Parallelism)
	for i := range parts {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := t.apply(parts[i])
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return outputs, nil
}
