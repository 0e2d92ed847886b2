package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/user/newsscrape-service/internal/entity"
)

// RunRepository persists scrape runs.
type RunRepository interface {
	Create(ctx context.Context, run *entity.ScrapeRun) error
	// Update overwrites the mutable fields of a run.
	Update(ctx context.Context, run *entity.ScrapeRun) error
	// FindByID returns ErrNotFound when the run does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ScrapeRun, error)
}
