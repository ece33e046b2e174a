// Package aggregate fans line-oriented records out over chunk workers
// and folds each worker's local statistics into a striped global map.
// The first failure surfaces after a full barrier.
package aggregate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"tally/measure"
	"tally/stats"
)

// ctxCheckEvery is how many lines a chunk task processes between
// context polls.
const ctxCheckEvery = 4096

// chunkStats sequentially folds one chunk of materialized lines into a
// local map. The first malformed line aborts the chunk.
func chunkStats(ctx context.Context, lines []string) (map[string]*stats.Running, error) {
	local := make(map[string]*stats.Running)
	for i, line := range lines {
		if i%ctxCheckEvery == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		rec, err := measure.Parse(line)
		if err != nil {
			return nil, err
		}
		run, ok := local[rec.Key]
		if !ok {
			run = stats.New()
			local[rec.Key] = run
		}
		run.Observe(rec.Value)
	}
	return local, nil
}

// sectionStats is chunkStats over a raw byte section of a file.
func sectionStats(ctx context.Context, r io.Reader) (map[string]*stats.Running, error) {
	local := make(map[string]*stats.Running)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, measure.MaxLine), measure.MaxLine)

	var i int
	for scanner.Scan() {
		if i%ctxCheckEvery == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		i++

		rec, err := measure.Parse(scanner.Text())
		if err != nil {
			return nil, err
		}
		run, ok := local[rec.Key]
		if !ok {
			run = stats.New()
			local[rec.Key] = run
		}
		run.Observe(rec.Value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan section: %w", err)
	}
	return local, nil
}
