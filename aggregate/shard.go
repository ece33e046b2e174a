package aggregate

import (
	"sync"
	"tally/stats"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/maps"
)

// Result maps keys to their merged running statistics. Keys stripe
// across locked shards; once a run's barrier has passed the Result is
// only ever read.
type Result struct {
	shards []*resultShard
}

type resultShard struct {
	mu    sync.Mutex
	stats map[string]*stats.Running
}

func newResult(shards int) *Result {
	rs := make([]*resultShard, shards)
	for i := range rs {
		rs[i] = &resultShard{stats: make(map[string]*stats.Running)}
	}
	return &Result{shards: rs}
}

func (r *Result) shardFor(key string) *resultShard {
	return r.shards[xxhash.Sum64String(key)%uint64(len(r.shards))]
}

// fold merges one chunk's local statistics into the global map. Absent
// keys get a copy of the local accumulator, so callers may discard the
// local map afterwards.
func (r *Result) fold(local map[string]*stats.Running) {
	for key, run := range local {
		shard := r.shardFor(key)
		shard.mu.Lock()
		if cur, ok := shard.stats[key]; ok {
			cur.Merge(run)
		} else {
			cp := *run
			shard.stats[key] = &cp
		}
		shard.mu.Unlock()
	}
}

// Get returns the accumulator for key, if present.
func (r *Result) Get(key string) (*stats.Running, bool) {
	shard := r.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	run, ok := shard.stats[key]
	return run, ok
}

// Len returns the number of distinct keys.
func (r *Result) Len() int {
	var n int
	for _, shard := range r.shards {
		shard.mu.Lock()
		n += len(shard.stats)
		shard.mu.Unlock()
	}
	return n
}

// Keys returns every key in no particular order.
func (r *Result) Keys() []string {
	keys := make([]string, 0, r.Len())
	for _, shard := range r.shards {
		shard.mu.Lock()
		keys = append(keys, maps.Keys(shard.stats)...)
		shard.mu.Unlock()
	}
	return keys
}
