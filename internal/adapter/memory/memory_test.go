package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

func TestRunRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepo()
	run := entity.NewScrapeRun([]entity.Source{{Name: "BBC", URLs: []string{"https://bbc.com"}, Enabled: true}}, nil)

	require.NoError(t, repo.Create(ctx, run))
	run.Status = entity.RunStatusRunning
	require.NoError(t, repo.Update(ctx, run))

	got, err := repo.FindByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusRunning, got.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, entity.NewScrapeRun(nil, nil)), repository.ErrNotFound)
}

func TestQueueRepo_FIFO(t *testing.T) {
	ctx := context.Background()
	q := NewQueueRepo()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, q.Push(ctx, first))
	require.NoError(t, q.Push(ctx, second))
	size, _ := q.Size(ctx)
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

func TestArticleCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewArticleCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	a := entity.Article{URL: "https://example.com/a", Title: "A", Content: "body"}
	require.NoError(t, c.Put(ctx, a, time.Hour))

	got, err := c.Get(ctx, a.URL)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	now = now.Add(time.Hour)
	_, err = c.Get(ctx, a.URL)
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestArticleRepo_ReplacesPerRun(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepo()
	runID := uuid.New()

	require.NoError(t, repo.SaveBatch(ctx, runID, []entity.Article{{URL: "https://x.com/1"}, {URL: "https://x.com/2"}}))
	require.NoError(t, repo.SaveBatch(ctx, runID, []entity.Article{{URL: "https://x.com/3"}}))

	got, err := repo.FindByRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://x.com/3", got[0].URL)

	got, err = repo.FindByRun(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}
