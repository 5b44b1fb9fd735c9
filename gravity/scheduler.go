// Package gravity drives a game's automatic downward movement. The scheduler
// owns the timer; the target owns the state and decides the cadence.
package gravity

import (
	"context"
	"sync"
	"time"
)

// MinInterval is the shortest wait the scheduler allows between steps.
const MinInterval = 100 * time.Millisecond

// Target is stepped by the scheduler. Step reports the interval to wait
// before the next step and whether the scheduler should stop.
type Target interface {
	TickInterval() time.Duration
	Step() (next time.Duration, done bool)
}

// Stats provides statistics about scheduler execution.
type Stats struct {
	Steps           int64
	IntervalChanges int64
	Interval        time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration
	AvgDuration     time.Duration
	LastDuration    time.Duration
	TotalDuration   time.Duration
}

// Scheduler calls a target's Step at the interval the target reports,
// re-reading it after every step.
type Scheduler struct {
	target Target
	resets chan time.Duration

	mu       sync.Mutex
	steps    int64
	changes  int64
	interval time.Duration
	minDur   time.Duration
	maxDur   time.Duration
	lastDur  time.Duration
	totalDur time.Duration
}

// New creates a scheduler for the given target.
func New(target Target) *Scheduler {
	return &Scheduler{
		target:   target,
		resets:   make(chan time.Duration, 1),
		interval: clamp(target.TickInterval()),
		minDur:   time.Duration(1<<63 - 1),
	}
}

func clamp(d time.Duration) time.Duration {
	return max(d, MinInterval)
}

// Once steps the target a single time and records the step's duration.
// It returns the interval to wait next and whether the target is done.
func (s *Scheduler) Once() (time.Duration, bool) {
	start := time.Now()
	next, done := s.target.Step()
	duration := time.Since(start)
	next = clamp(next)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.steps++
	s.lastDur = duration
	s.totalDur += duration
	if duration < s.minDur {
		s.minDur = duration
	}
	if duration > s.maxDur {
		s.maxDur = duration
	}
	s.setIntervalLocked(next)

	return next, done
}

func (s *Scheduler) setIntervalLocked(d time.Duration) {
	if d != s.interval {
		s.changes++
		s.interval = d
	}
}

// Reset tells a running scheduler that the target's interval changed outside
// of Step. The pending wait restarts with d. Only the latest value is kept
// when Run has not picked up an earlier one yet.
func (s *Scheduler) Reset(d time.Duration) {
	for {
		select {
		case s.resets <- d:
			return
		default:
		}
		select {
		case <-s.resets:
		default:
		}
	}
}

// Run steps the target until it reports done or the context is cancelled.
// It returns nil when the target finished and ctx.Err() otherwise.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	interval := s.interval
	s.mu.Unlock()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			next, done := s.Once()
			if done {
				return nil
			}
			timer.Reset(next)
		case d := <-s.resets:
			d = clamp(d)
			s.mu.Lock()
			s.setIntervalLocked(d)
			s.mu.Unlock()
			timer.Reset(d)
		}
	}
}

// Stats returns statistics about step execution. It is safe to call while
// Run is active.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Steps:           s.steps,
		IntervalChanges: s.changes,
		Interval:        s.interval,
		MaxDuration:     s.maxDur,
		LastDuration:    s.lastDur,
		TotalDuration:   s.totalDur,
	}
	if s.steps > 0 {
		stats.MinDuration = s.minDur
		stats.AvgDuration = s.totalDur / time.Duration(s.steps)
	}
	return stats
}
