package repository

import (
	"context"

	"github.com/google/uuid"
)

// RunQueue is a FIFO of run IDs waiting for a worker.
type RunQueue interface {
	Push(ctx context.Context, id uuid.UUID) error
	// Pop returns ErrQueueEmpty when nothing is waiting.
	Pop(ctx context.Context) (uuid.UUID, error)
	Size(ctx context.Context) (int64, error)
}
