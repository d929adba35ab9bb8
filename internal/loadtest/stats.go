package loadtest

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Stats aggregates per-task outcomes across all virtual users.
type Stats struct {
	mu      sync.Mutex
	byName  map[string]*taskStats
	started time.Time
}

type taskStats struct {
	count    int
	failures int
	total    time.Duration
	max      time.Duration
}

// NewStats creates an empty stats collector.
func NewStats() *Stats {
	return &Stats{byName: make(map[string]*taskStats), started: time.Now()}
}

// Record logs one task invocation.
func (s *Stats) Record(name string, elapsed time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.byName[name]
	if ts == nil {
		ts = &taskStats{}
		s.byName[name] = ts
	}
	ts.count++
	ts.total += elapsed
	if elapsed > ts.max {
		ts.max = elapsed
	}
	if err != nil {
		ts.failures++
	}
}

// Totals returns overall request and failure counts.
func (s *Stats) Totals() (requests, failures int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ts := range s.byName {
		requests += ts.count
		failures += ts.failures
	}
	return requests, failures
}

// Failures returns the failure count for one task name.
func (s *Stats) Failures(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts := s.byName[name]; ts != nil {
		return ts.failures
	}
	return 0
}

// Print writes a summary table.
func (s *Stats) Print(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	elapsed := time.Since(s.started).Seconds()
	fmt.Fprintf(w, "%-45s %8s %8s %10s %10s %8s\n", "Task", "Count", "Fails", "Avg", "Max", "req/s")
	for _, name := range names {
		ts := s.byName[name]
		avg := time.Duration(0)
		if ts.count > 0 {
			avg = ts.total / time.Duration(ts.count)
		}
		// Guard the rate: a run interrupted before the clock advances would
		// otherwise print Inf or NaN.
		rps := 0.0
		if elapsed > 0 {
			rps = float64(ts.count) / elapsed
		}
		fmt.Fprintf(w, "%-45s %8d %8d %10s %10s %8.1f\n",
			name, ts.count, ts.failures, avg.Round(time.Millisecond), ts.max.Round(time.Millisecond), rps)
	}
}
