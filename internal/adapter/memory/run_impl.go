// Package memory holds in-process repository implementations used by the CLI
// and by tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

type RunRepoImpl struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]entity.ScrapeRun
}

func NewRunRepo() *RunRepoImpl {
	return &RunRepoImpl{runs: make(map[uuid.UUID]entity.ScrapeRun)}
}

func (r *RunRepoImpl) Create(_ context.Context, run *entity.ScrapeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

func (r *RunRepoImpl) Update(_ context.Context, run *entity.ScrapeRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return repository.ErrNotFound
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *RunRepoImpl) FindByID(_ context.Context, id uuid.UUID) (*entity.ScrapeRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &run, nil
}
