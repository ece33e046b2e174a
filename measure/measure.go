// Package measure parses delimited key;value records and materializes
// line-oriented input.
package measure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// MaxLine bounds a single input line in bytes, key and value included.
const MaxLine = 1024 * 1024

var ErrMalformed = fmt.Errorf("malformed record")

// Record is one parsed input line: a key and its observed value.
type Record struct {
	Key   string
	Value float64
}

// Parse splits a line on the first ';' and parses the remainder as a
// float. The key may be empty; the value must be finite. All failures
// wrap ErrMalformed.
func Parse(line string) (Record, error) {
	key, raw, ok := strings.Cut(line, ";")
	if !ok {
		return Record{}, fmt.Errorf("%w: no ';' in %q", ErrMalformed, line)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad value %q", ErrMalformed, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Record{}, fmt.Errorf("%w: non-finite value %q", ErrMalformed, raw)
	}
	return Record{Key: key, Value: v}, nil
}

// ReadAll materializes every line of r, in order.
func ReadAll(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, MaxLine), MaxLine)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read input: %w", err)
	}
	return lines, nil
}

// ReadFile materializes every line of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}
