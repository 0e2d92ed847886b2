package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestQueueRepo_FIFO(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	q := NewQueueRepo(client)
	first, second := uuid.New(), uuid.New()

	require.NoError(t, q.Push(ctx, first))
	require.NoError(t, q.Push(ctx, second))

	size, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	got, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = q.Pop(ctx)
	assert.ErrorIs(t, err, repository.ErrQueueEmpty)
}

func TestQueueRepo_MalformedEntry(t *testing.T) {
	mr, client := newTestClient(t)
	_, err := mr.Lpush(runQueueKey, "not-a-uuid")
	require.NoError(t, err)

	_, err = NewQueueRepo(client).Pop(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrQueueEmpty)
}

func TestArticleCache_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	cache := NewArticleCache(client)
	article := entity.Article{
		Source:    "BBC",
		Title:     "Storm hits coast",
		URL:       "https://www.bbc.com/news/storm",
		Content:   "Heavy rain fell overnight.",
		Timestamp: time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}

	_, err := cache.Get(ctx, article.URL)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)

	require.NoError(t, cache.Put(ctx, article, time.Hour))
	got, err := cache.Get(ctx, article.URL)
	require.NoError(t, err)
	assert.Equal(t, article, *got)

	mr.FastForward(2 * time.Hour)
	_, err = cache.Get(ctx, article.URL)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}
