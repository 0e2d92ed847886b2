package memory

import (
	"context"
	"sync"
	"time"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/utils"
)

type cachedArticle struct {
	article entity.Article
	expires time.Time
}

// ArticleCacheImpl keeps articles in process memory until their TTL passes.
type ArticleCacheImpl struct {
	mu    sync.Mutex
	items map[string]cachedArticle
	now   func() time.Time
}

func NewArticleCache() *ArticleCacheImpl {
	return &ArticleCacheImpl{items: make(map[string]cachedArticle), now: time.Now}
}

func (c *ArticleCacheImpl) Get(_ context.Context, url string) (*entity.Article, error) {
	key := utils.HashURL(url)
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	if !c.now().Before(item.expires) {
		delete(c.items, key)
		return nil, repository.ErrCacheMiss
	}
	a := item.article
	return &a, nil
}

func (c *ArticleCacheImpl) Put(_ context.Context, article entity.Article, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[utils.HashURL(article.URL)] = cachedArticle{article: article, expires: c.now().Add(ttl)}
	return nil
}
