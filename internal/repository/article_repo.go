package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/user/newsscrape-service/internal/entity"
)

// ArticleRepository archives the articles a run published.
type ArticleRepository interface {
	// SaveBatch replaces the articles stored for a run.
	SaveBatch(ctx context.Context, runID uuid.UUID, articles []entity.Article) error
	// FindByRun returns a run's articles in report order.
	FindByRun(ctx context.Context, runID uuid.UUID) ([]entity.Article, error)
}
