package scheduler

import (
	"time"

	"golang.org/x/time/rate"
)

// Stats summarizes how long recent frames took to build.
type Stats struct {
	Frames  int
	Average time.Duration
	Max     time.Duration
	Over    int
}

// budget records the work time of the most recent frames in a ring buffer.
type budget struct {
	limit     time.Duration
	samples   []time.Duration
	nextIndex int
	count     int
	over      int
	warn      *rate.Limiter
}

func newBudget(limit time.Duration, ringSize int) *budget {
	return &budget{
		limit:   limit,
		samples: make([]time.Duration, ringSize),
		warn:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// record stores d and reports whether it exceeded the budget and a warning
// may be emitted now.
func (b *budget) record(d time.Duration) (overrun bool) {
	b.samples[b.nextIndex] = d
	b.nextIndex++
	if b.nextIndex >= len(b.samples) {
		b.nextIndex = 0
	}
	if b.count < len(b.samples) {
		b.count++
	}
	if d <= b.limit {
		return false
	}
	b.over++
	return b.warn.Allow()
}

// snapshot returns up to the last n samples, oldest first.
func (b *budget) snapshot(n int) []time.Duration {
	if n > b.count {
		n = b.count
	}
	out := make([]time.Duration, 0, n)
	idx := b.nextIndex - 1
	if idx < 0 {
		idx = len(b.samples) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, b.samples[idx])
		idx--
		if idx < 0 {
			idx = len(b.samples) - 1
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (b *budget) stats() Stats {
	s := Stats{Frames: b.count, Over: b.over}
	if b.count == 0 {
		return s
	}
	var sum time.Duration
	for _, d := range b.samples[:b.count] {
		sum += d
		if d > s.Max {
			s.Max = d
		}
	}
	s.Average = sum / time.Duration(b.count)
	return s
}
