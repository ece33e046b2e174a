package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"tally/partition"
)

const DEFAULT_SHARDS = 32

// Coordinator owns one aggregation run: partitioning, chunk workers,
// the fold barrier, and failure propagation. A Coordinator holds no
// run state and may be reused across runs.
type Coordinator struct {
	workers int
	shards  int
	log     *slog.Logger
}

func New(options ...Option) *Coordinator {
	c := &Coordinator{
		workers: runtime.NumCPU(),
		shards:  DEFAULT_SHARDS,
		log:     slog.Default(),
	}
	for _, opt := range options {
		c = opt(c)
	}
	c.shards = max(c.shards, 1)
	return c
}

// Run aggregates materialized lines: the input splits into at most
// c.workers contiguous chunks, every chunk folds its local statistics
// into the returned Result, and the first chunk failure aborts the
// whole run with a nil Result.
func (c *Coordinator) Run(ctx context.Context, lines []string) (*Result, error) {
	chunks, err := partition.Split(len(lines), c.workers)
	if err != nil {
		return nil, err
	}

	res := newResult(c.shards)
	if len(chunks) == 0 {
		return res, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errc := make(chan error, len(chunks))

	for _, ck := range chunks {
		wg.Add(1)
		go func(ck partition.Chunk) {
			defer wg.Done()

			local, err := chunkStats(ctx, lines[ck.Start:ck.End])
			if err != nil {
				errc <- fmt.Errorf("chunk [%d,%d): %w", ck.Start, ck.End, err)
				cancel()
				return
			}
			res.fold(local)
			c.log.Debug("chunk aggregated",
				slog.Int("start", ck.Start),
				slog.Int("end", ck.End),
				slog.Int("keys", len(local)))
		}(ck)
	}
	wg.Wait()
	close(errc)

	if err := firstErr(errc); err != nil {
		return nil, err
	}
	return res, nil
}

// RunFile aggregates a line-oriented file without materializing it,
// splitting it into newline-aligned byte sections with one reader per
// section. Semantics otherwise match Run.
func (c *Coordinator) RunFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat input: %w", err)
	}

	sections, err := partition.Sections(f, info.Size(), c.workers)
	if err != nil {
		return nil, err
	}

	res := newResult(c.shards)
	if len(sections) == 0 {
		return res, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errc := make(chan error, len(sections))

	for _, sec := range sections {
		wg.Add(1)
		go func(sec partition.Section) {
			defer wg.Done()

			sf, err := os.Open(path)
			if err != nil {
				errc <- fmt.Errorf("unable to open section reader: %w", err)
				cancel()
				return
			}
			defer sf.Close()

			sr := io.NewSectionReader(sf, sec.Start, sec.End-sec.Start)
			local, err := sectionStats(ctx, sr)
			if err != nil {
				errc <- fmt.Errorf("section [%d,%d): %w", sec.Start, sec.End, err)
				cancel()
				return
			}
			res.fold(local)
			c.log.Debug("section aggregated",
				slog.Int64("start", sec.Start),
				slog.Int64("end", sec.End),
				slog.Int("keys", len(local)))
		}(sec)
	}
	wg.Wait()
	close(errc)

	if err := firstErr(errc); err != nil {
		return nil, err
	}
	return res, nil
}

// firstErr drains completion errors, preferring a task's own failure
// over the cancellations it triggered in its siblings.
func firstErr(errc chan error) error {
	var first error
	for err := range errc {
		if first == nil || (errors.Is(first, context.Canceled) && !errors.Is(err, context.Canceled)) {
			first = err
		}
	}
	return first
}
