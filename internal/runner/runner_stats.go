package runner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"simgen/internal/oracle"
	"simgen/internal/util"
)

// Stats aggregates check outcomes across workers.
type Stats struct {
	mu       sync.Mutex
	total    int64
	failures int64
	skips    int64
	oracles  map[string]*oracleFunnel
}

// oracleFunnel tracks outcomes for one oracle.
type oracleFunnel struct {
	Runs        int64
	Failures    int64
	Skips       int64
	SkipReasons map[string]int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Total    int64
	Failures int64
	Skips    int64
	Oracles  map[string]oracleFunnel
}

// NewStats returns empty stats.
func NewStats() *Stats {
	return &Stats{oracles: make(map[string]*oracleFunnel)}
}

func (s *Stats) record(res oracle.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	f := s.oracles[res.Oracle]
	if f == nil {
		f = &oracleFunnel{SkipReasons: make(map[string]int64)}
		s.oracles[res.Oracle] = f
	}
	f.Runs++
	switch {
	case !res.OK:
		s.failures++
		f.Failures++
	case res.Skipped():
		s.skips++
		f.Skips++
		f.SkipReasons[res.SkipReason()]++
	}
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := StatsSnapshot{
		Total:    s.total,
		Failures: s.failures,
		Skips:    s.skips,
		Oracles:  make(map[string]oracleFunnel, len(s.oracles)),
	}
	for name, f := range s.oracles {
		cp := *f
		cp.SkipReasons = make(map[string]int64, len(f.SkipReasons))
		for k, v := range f.SkipReasons {
			cp.SkipReasons[k] = v
		}
		out.Oracles[name] = cp
	}
	return out
}

func startStatsLogger(stats *Stats, interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		var last StatsSnapshot
		for {
			select {
			case <-ticker.C:
				snap := stats.Snapshot()
				if delta := snap.Total - last.Total; delta > 0 {
					util.Infof(
						"last %s: checks=%d failures=%d skips=%d total=%d oracles=%s",
						interval,
						delta,
						snap.Failures-last.Failures,
						snap.Skips-last.Skips,
						snap.Total,
						formatOracleDelta(snap.Oracles, last.Oracles),
					)
				}
				last = snap
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

// formatOracleDelta renders per-oracle run counts since prev as
// name=runs/failures, sorted by name.
func formatOracleDelta(cur, prev map[string]oracleFunnel) string {
	names := make([]string, 0, len(cur))
	for name := range cur {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		runs := cur[name].Runs - prev[name].Runs
		if runs <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d/%d", name, runs, cur[name].Failures-prev[name].Failures))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
