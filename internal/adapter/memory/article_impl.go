package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/newsscrape-service/internal/entity"
)

type ArticleRepoImpl struct {
	mu       sync.RWMutex
	articles map[uuid.UUID][]entity.Article
}

func NewArticleRepo() *ArticleRepoImpl {
	return &ArticleRepoImpl{articles: make(map[uuid.UUID][]entity.Article)}
}

func (r *ArticleRepoImpl) SaveBatch(_ context.Context, runID uuid.UUID, articles []entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles[runID] = append([]entity.Article(nil), articles...)
	return nil
}

// FindByRun returns an empty slice for runs with nothing archived.
func (r *ArticleRepoImpl) FindByRun(_ context.Context, runID uuid.UUID) ([]entity.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Article{}, r.articles[runID]...), nil
}
