package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/user/newsscrape-service/internal/repository"
)

const runQueueKey = "newsscrape:runs"

// QueueRepoImpl implements repository.RunQueue on a Redis list.
type QueueRepoImpl struct {
	client *redis.Client
}

// NewQueueRepo creates a new instance of QueueRepoImpl.
func NewQueueRepo(client *redis.Client) *QueueRepoImpl {
	return &QueueRepoImpl{client: client}
}

// Push adds a run ID to the left side of the list.
func (r *QueueRepoImpl) Push(ctx context.Context, id uuid.UUID) error {
	return r.client.LPush(ctx, runQueueKey, id.String()).Err()
}

// Pop removes the oldest run ID from the right side of the list.
func (r *QueueRepoImpl) Pop(ctx context.Context) (uuid.UUID, error) {
	raw, err := r.client.RPop(ctx, runQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, repository.ErrQueueEmpty
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed run id %q in queue: %w", raw, err)
	}
	return id, nil
}

// Size returns the current number of items in the queue.
func (r *QueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, runQueueKey).Result()
}
