// Package partition plans contiguous, non-overlapping work ranges for
// parallel aggregation.
package partition

import (
	"bytes"
	"fmt"
	"io"
)

// probeLen bounds how far past a candidate cut point the enclosing line
// may extend.
const probeLen = 1024 * 1024

var ErrWorkers = fmt.Errorf("worker count must be at least 1")

// Chunk is a half-open index range [Start, End) over materialized
// records.
type Chunk struct {
	Start int
	End   int
}

// Split divides n records into exactly min(workers, n) contiguous chunks
// in input order, sizes differing by at most one. Zero records yield
// zero chunks.
func Split(n, workers int) ([]Chunk, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkers, workers)
	}
	if n == 0 {
		return nil, nil
	}

	k := min(workers, n)
	base := n / k
	rem := n % k

	chunks := make([]Chunk, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks = append(chunks, Chunk{Start: start, End: start + size})
		start += size
	}
	return chunks, nil
}

// Section is a half-open byte range [Start, End) of line-oriented input.
// Every section ends just past a '\n', except the last which ends at
// size.
type Section struct {
	Start int64
	End   int64
}

// Sections divides size bytes of line-oriented input into at most
// `workers` contiguous ranges aligned to line boundaries. Candidate cut
// points at multiples of size/workers advance to just past the next
// newline, so no section splits a line; cut points that collapse into
// their predecessor are dropped.
func Sections(r io.ReaderAt, size int64, workers int) ([]Section, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkers, workers)
	}
	if size == 0 {
		return nil, nil
	}

	starts := []int64{0}
	step := size / int64(workers)
	buf := make([]byte, probeLen)

	for i := 1; i < workers; i++ {
		pos := step * int64(i)
		if pos <= starts[len(starts)-1] {
			continue
		}

		n, err := r.ReadAt(buf, pos)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("unable to probe offset %d: %w", pos, err)
		}
		idx := bytes.IndexByte(buf[:n], '\n')
		if idx < 0 {
			if pos+int64(n) >= size {
				// The unterminated tail belongs to the previous section.
				break
			}
			return nil, fmt.Errorf("no line break within %d bytes after offset %d", probeLen, pos)
		}

		next := pos + int64(idx) + 1
		if next >= size {
			break
		}
		starts = append(starts, next)
	}

	sections := make([]Section, len(starts))
	for i, start := range starts {
		end := size
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections[i] = Section{Start: start, End: end}
	}
	return sections, nil
}
