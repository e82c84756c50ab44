// Package engine is the in-process execution engine behind the root Plan
// interface. Plans are immutable lineage chains; Collect walks a chain and
// executes its tasks over partitions of rows, running narrow tasks
// data-parallel and wide tasks as pipeline breakers.
package engine

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Config tunes plan execution
type Config struct {
	Parallelism      int            // maximum concurrent partition workers; also the shuffle bucket count
	PartitionSize    int            // maximum rows per source partition
	ShuffleSpillRows int            // shuffle buckets beyond this many buffered rows are held compressed
	Logger           zerolog.Logger // job lifecycle log
}

// DefaultConfig returns a Config suitable for most jobs
func DefaultConfig() *Config {
	return &Config{
		Parallelism:      runtime.NumCPU(),
		PartitionSize:    128,
		ShuffleSpillRows: 1 << 14,
		Logger:           zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
	}
}

func (c *Config) withDefaults() *Config {
	next := *c
	if next.Parallelism <= 0 {
		next.Parallelism = runtime.NumCPU()
	}
	if next.PartitionSize <= 0 {
		next.PartitionSize = 128
	}
	if next.ShuffleSpillRows <= 0 {
		next.ShuffleSpillRows = 1 << 14
	}
	return &next
}
