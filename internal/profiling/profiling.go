package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler for tick-level insights.

// Sample is the accumulated time and call count for one tracked name.
type Sample struct {
	Total time.Duration
	Calls int
}

var (
	mu    sync.Mutex
	frame = make(map[string]Sample)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := frame[name]
		s.Total += d
		s.Calls++
		frame[name] = s
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each tick.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]Sample {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Sample, len(frame))
	for k, v := range frame {
		out[k] = v
	}
	return out
}

// TopN formats the n most expensive entries.
// Example: "terrain.Generate:4.2ms/3, meshing.BuildChunkMesh:2.1ms/3"
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if ss[names[i]].Total == ss[names[j]].Total {
			return names[i] < names[j]
		}
		return ss[names[i]].Total > ss[names[j]].Total
	})
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		s := ss[name]
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}
