package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RunStats summarizes what happened during one ScrapeAll call.
type RunStats struct {
	PagesOpened    int64
	Retries        int64
	SkippedURLs    int64
	DomainFailures map[string]int
}

// RunState is created per run and threaded through every fetch of that run.
// It paces page opens per domain and counts failures.
type RunState struct {
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	failures map[string]int

	pages   atomic.Int64
	retries atomic.Int64
	skipped atomic.Int64
}

// NewRunState returns state whose per-domain limiter allows one page open
// every interval. A non-positive interval disables pacing.
func NewRunState(interval time.Duration) *RunState {
	return &RunState{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
		failures: make(map[string]int),
	}
}

// Wait blocks until domain may open another page.
func (s *RunState) Wait(ctx context.Context, domain string) error {
	if s.interval <= 0 {
		return nil
	}
	return s.limiter(domain).Wait(ctx)
}

func (s *RunState) limiter(domain string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[domain]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.interval), 1)
		s.limiters[domain] = l
	}
	return l
}

func (s *RunState) RecordFailure(domain string) {
	s.mu.Lock()
	s.failures[domain]++
	s.mu.Unlock()
}

func (s *RunState) pageOpened() { s.pages.Add(1) }
func (s *RunState) retried()    { s.retries.Add(1) }
func (s *RunState) urlSkipped() { s.skipped.Add(1) }

func (s *RunState) Stats() RunStats {
	s.mu.Lock()
	failures := make(map[string]int, len(s.failures))
	for d, n := range s.failures {
		failures[d] = n
	}
	s.mu.Unlock()

	return RunStats{
		PagesOpened:    s.pages.Load(),
		Retries:        s.retries.Load(),
		SkippedURLs:    s.skipped.Load(),
		DomainFailures: failures,
	}
}
