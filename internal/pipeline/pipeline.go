// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"fastxsplit-core/fastq"
	"fastxsplit-core/linker"

	"github.com/grailbio/base/log"
	"golang.org/x/sync/errgroup"
)

// Splitter is the per-record classification run by the workers.
type Splitter interface {
	Split(rec linker.Record) (linker.Split, bool)
}

var _ Splitter = (*linker.Spec)(nil)

// Config controls the splitting pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	BatchSize int // records per work unit; <=0 uses DefaultBatchSize

	// Log receives debug output; nil uses the package-level grailbio logger.
	Log log.Outputter
}

func (c Config) debugf(format string, args ...any) {
	if c.Log == nil {
		log.Debug.Printf(format, args...)
		return
	}
	if c.Log.Level() >= log.Debug {
		_ = c.Log.Output(2, log.Debug, fmt.Sprintf(format, args...))
	}
}

const DefaultBatchSize = 256

// Item is one input record and its split. When OK is false the record was
// shorter than the linker and Split is empty.
type Item struct {
	Source string // input path the record came from
	Index  int    // 0-based ordinal across all inputs
	Record fastq.Record
	Split  linker.Split
	OK     bool
}

type batch struct {
	seq   int
	items []Item
}

// ForEachSplit reads every file in order, splits each record with sp on
// cfg.Threads workers, and calls visit for every record in input order,
// whatever the thread count. Too-short records are delivered with OK=false.
// It returns the first error encountered (including context cancellation).
func ForEachSplit(
	parent context.Context,
	cfg Config,
	files []string,
	sp Splitter,
	visit func(Item) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	g, ctx := errgroup.WithContext(parent)
	jobs := make(chan batch, cfg.Threads*2)
	results := make(chan batch, cfg.Threads*2)

	// Workers; results closes once all of them are done.
	var workers errgroup.Group
	for w := 0; w < cfg.Threads; w++ {
		workers.Go(func() error {
			for b := range jobs {
				for i := range b.items {
					it := &b.items[i]
					it.Split, it.OK = sp.Split(&it.Record)
				}
				select {
				case results <- b:
				case <-ctx.Done():
					return nil
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		err := workers.Wait()
		close(results)
		return err
	})

	// Collector: releases batches strictly in feed order. A visit error
	// cancels ctx, which unwinds the feeder and the workers.
	g.Go(func() error {
		pending := make(map[int][]Item)
		next := 0
		for b := range results {
			pending[b.seq] = b.items
			for items, ok := pending[next]; ok; items, ok = pending[next] {
				delete(pending, next)
				next++
				for _, it := range items {
					if err := visit(it); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})

	// Feeder. A read error ends feeding but lets records already queued
	// drain through visit; it is reported once everything has stopped.
	var ferr error
	g.Go(func() error {
		defer close(jobs)
		seq, ordinal := 0, 0
		send := func(items []Item) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- batch{seq: seq, items: items}:
				seq++
				return nil
			}
		}
		for _, path := range files {
			cfg.debugf("pipeline: reading %s", path)
			cur := make([]Item, 0, cfg.BatchSize)
			err := fastq.StreamPathCtx(ctx, path, func(r fastq.Record) error {
				cur = append(cur, Item{Source: path, Index: ordinal, Record: r})
				ordinal++
				if len(cur) == cfg.BatchSize {
					if err := send(cur); err != nil {
						return err
					}
					cur = make([]Item, 0, cfg.BatchSize)
				}
				return nil
			})
			if err == nil && len(cur) > 0 {
				err = send(cur)
			}
			if err != nil {
				ferr = err
				return nil
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if err := parent.Err(); err != nil {
		return err
	}
	return ferr
}
