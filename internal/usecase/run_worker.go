package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/metrics"
)

// RunExecutor executes one run end to end.
type RunExecutor interface {
	Execute(ctx context.Context, run *entity.ScrapeRun, observer ProgressObserver) error
}

// RunWorker defines the interface for the queued run processing loop.
type RunWorker interface {
	// ProcessNextRun runs the oldest queued run. It returns
	// repository.ErrQueueEmpty when nothing is waiting.
	ProcessNextRun(ctx context.Context) error
}

type runWorkerUseCase struct {
	queue    repository.RunQueue
	runs     repository.RunRepository
	pipeline RunExecutor
	logger   *zap.Logger
}

// NewRunWorker creates a new instance of the run worker use case.
func NewRunWorker(queue repository.RunQueue, runs repository.RunRepository, pipeline RunExecutor, logger *zap.Logger) RunWorker {
	return &runWorkerUseCase{queue: queue, runs: runs, pipeline: pipeline, logger: logger}
}

func (uc *runWorkerUseCase) ProcessNextRun(ctx context.Context) error {
	id, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQueueEmpty) {
			return err
		}
		return fmt.Errorf("failed to pop run from queue: %w", err)
	}
	metrics.RunsInQueue.Dec()

	run, err := uc.runs.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", id, err)
	}
	if run.Status != entity.RunStatusIdle {
		uc.logger.Warn("skipping queued run that is not idle",
			zap.String("run_id", id.String()),
			zap.String("status", string(run.Status)),
		)
		return nil
	}

	log := uc.logger.With(zap.String("run_id", id.String()))
	log.Info("processing run", zap.Int("sources", len(run.Sources)))

	observer := func(percentage int, message string) {
		log.Debug("run progress", zap.Int("percentage", percentage), zap.String("message", message))
	}
	if err := uc.pipeline.Execute(ctx, run, observer); err != nil {
		// The run record carries the failure; the worker keeps going.
		log.Warn("run did not complete", zap.Error(err))
	}
	return nil
}
