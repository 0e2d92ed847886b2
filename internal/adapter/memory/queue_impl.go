package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/newsscrape-service/internal/repository"
)

// QueueRepoImpl is a FIFO of run IDs.
type QueueRepoImpl struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func NewQueueRepo() *QueueRepoImpl {
	return &QueueRepoImpl{}
}

func (q *QueueRepoImpl) Push(_ context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, id)
	return nil
}

func (q *QueueRepoImpl) Pop(_ context.Context) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) == 0 {
		return uuid.Nil, repository.ErrQueueEmpty
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, nil
}

func (q *QueueRepoImpl) Size(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ids)), nil
}
