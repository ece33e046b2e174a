package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveSingle(t *testing.T) {
	r := New()
	r.Observe(42.5)

	assert.Equal(t, 42.5, r.Min)
	assert.Equal(t, 42.5, r.Max)
	assert.Equal(t, 42.5, r.Mean())
	assert.Equal(t, int64(1), r.Count)
}

func TestObserve(t *testing.T) {
	r := New()
	for _, v := range []float64{3.2, -7.5, 0, 12.9, -7.4} {
		r.Observe(v)
	}

	assert.Equal(t, -7.5, r.Min)
	assert.Equal(t, 12.9, r.Max)
	assert.Equal(t, int64(5), r.Count)
	assert.InDelta(t, 0.24, r.Mean(), 1e-12)
}

func TestMergeIdentity(t *testing.T) {
	r := New()
	r.Observe(5)
	r.Merge(New())

	assert.Equal(t, 5.0, r.Min)
	assert.Equal(t, 5.0, r.Max)
	assert.Equal(t, 5.0, r.Total)
	assert.Equal(t, int64(1), r.Count)

	empty := New()
	empty.Merge(New())
	assert.True(t, math.IsInf(empty.Min, 1))
	assert.True(t, math.IsInf(empty.Max, -1))
	assert.Equal(t, int64(0), empty.Count)
}

func TestMergeCommutative(t *testing.T) {
	a, b := New(), New()
	for _, v := range []float64{1.5, -3.0, 8.25} {
		a.Observe(v)
	}
	for _, v := range []float64{0.5, 22.0} {
		b.Observe(v)
	}

	ab := *a
	ab.Merge(b)
	ba := *b
	ba.Merge(a)

	assert.Equal(t, ab, ba)
	assert.Equal(t, -3.0, ab.Min)
	assert.Equal(t, 22.0, ab.Max)
	assert.Equal(t, int64(5), ab.Count)
}

func TestMergeMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = rng.Float64()*199.8 - 99.9
	}

	whole := New()
	for _, v := range vals {
		whole.Observe(v)
	}

	parts := []*Running{New(), New(), New(), New()}
	for i, v := range vals {
		parts[i%len(parts)].Observe(v)
	}

	orders := [][]int{{0, 1, 2, 3}, {3, 1, 0, 2}, {2, 3, 1, 0}}
	for _, order := range orders {
		merged := New()
		for _, i := range order {
			merged.Merge(parts[i])
		}
		assert.Equal(t, whole.Min, merged.Min)
		assert.Equal(t, whole.Max, merged.Max)
		assert.Equal(t, whole.Count, merged.Count)
		assert.InDelta(t, whole.Total, merged.Total, 1e-9)
		assert.InDelta(t, whole.Mean(), merged.Mean(), 1e-9)
	}
}

func BenchmarkObserve(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	vals := make([]float64, 1024)
	for i := range vals {
		vals[i] = rng.Float64()*199.8 - 99.9
	}

	r := New()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r.Observe(vals[n%len(vals)])
	}
}
