package repository

import (
	"context"
	"time"

	"github.com/user/newsscrape-service/internal/entity"
)

// ArticleCache remembers extracted articles so repeat runs skip the fetch.
type ArticleCache interface {
	// Get returns ErrCacheMiss when the URL is not cached.
	Get(ctx context.Context, url string) (*entity.Article, error)
	Put(ctx context.Context, article entity.Article, ttl time.Duration) error
}
