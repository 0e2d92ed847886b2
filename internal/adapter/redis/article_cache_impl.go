package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/utils"
)

const articleKeyPrefix = "newsscrape:article:"

// ArticleCacheImpl stores extracted articles as JSON under a hash of their URL.
type ArticleCacheImpl struct {
	client *redis.Client
}

// NewArticleCache creates a new instance of ArticleCacheImpl.
func NewArticleCache(client *redis.Client) *ArticleCacheImpl {
	return &ArticleCacheImpl{client: client}
}

func (r *ArticleCacheImpl) generateKey(url string) string {
	return articleKeyPrefix + utils.HashURL(url)
}

func (r *ArticleCacheImpl) Get(ctx context.Context, url string) (*entity.Article, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var article entity.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, fmt.Errorf("decode cached article for %s: %w", url, err)
	}
	return &article, nil
}

// Put caches article until ttl passes. SET with EX is atomic.
func (r *ArticleCacheImpl) Put(ctx context.Context, article entity.Article, ttl time.Duration) error {
	raw, err := json.Marshal(article)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(article.URL), raw, ttl).Err()
}
