package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of a scrape run.
type RunStatus string

const (
	RunStatusIdle        RunStatus = "idle"
	RunStatusRunning     RunStatus = "running"
	RunStatusAggregating RunStatus = "aggregating"
	RunStatusDone        RunStatus = "done"
	RunStatusFailed      RunStatus = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s RunStatus) Terminal() bool {
	return s == RunStatusDone || s == RunStatusFailed
}

// CanTransition reports whether moving from s to next is legal.
// Any non-terminal state may fail.
func (s RunStatus) CanTransition(next RunStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == RunStatusFailed {
		return true
	}
	switch s {
	case RunStatusIdle:
		return next == RunStatusRunning
	case RunStatusRunning:
		return next == RunStatusAggregating
	case RunStatusAggregating:
		return next == RunStatusDone
	}
	return false
}

// ScrapeRun mirrors the `scrape_runs` PostgreSQL table.
type ScrapeRun struct {
	ID           uuid.UUID
	Status       RunStatus
	Sources      []Source // stored as JSONB
	Keywords     []string
	Progress     int
	Message      string
	ArticleCount int
	DocumentID   string
	DocumentURL  string
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewScrapeRun creates an idle run.
func NewScrapeRun(sources []Source, keywords []string) *ScrapeRun {
	now := time.Now()
	return &ScrapeRun{
		ID:        uuid.New(),
		Status:    RunStatusIdle,
		Sources:   sources,
		Keywords:  keywords,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
