// Package stats provides a mergeable running accumulator for the
// minimum, maximum and mean of a stream of float64 values.
package stats

import "math"

// Running tracks the minimum, maximum, total and count of observed
// values. Use New rather than the zero value.
type Running struct {
	Min   float64
	Max   float64
	Total float64
	Count int64
}

// New returns an empty accumulator. An empty accumulator is the
// identity element for Merge.
func New() *Running {
	return &Running{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Observe folds a single value into the accumulator.
func (r *Running) Observe(v float64) {
	r.Min = min(r.Min, v)
	r.Max = max(r.Max, v)
	r.Total += v
	r.Count++
}

// Merge folds another accumulator into r. Merge is commutative and
// associative, so partial accumulators may combine in any order.
func (r *Running) Merge(o *Running) {
	r.Min = min(r.Min, o.Min)
	r.Max = max(r.Max, o.Max)
	r.Total += o.Total
	r.Count += o.Count
}

// Mean returns the arithmetic mean of every observed value at full
// float64 precision. Only meaningful once Count > 0.
func (r *Running) Mean() float64 {
	return r.Total / float64(r.Count)
}
