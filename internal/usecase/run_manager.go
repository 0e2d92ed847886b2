package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/metrics"
)

// RunManager defines the interface for submitting and checking scrape runs.
type RunManager interface {
	Submit(ctx context.Context, sources []entity.Source, keywords []string) (*entity.ScrapeRun, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ScrapeRun, error)
	// Articles returns the articles archived for a run, in report order.
	Articles(ctx context.Context, id uuid.UUID) ([]entity.Article, error)
}

type runManagerUseCase struct {
	runs    repository.RunRepository
	queue   repository.RunQueue
	archive repository.ArticleRepository
	logger  *zap.Logger
}

// NewRunManager creates a new RunManager use case. archive may be nil, in
// which case no run has archived articles.
func NewRunManager(runs repository.RunRepository, queue repository.RunQueue, archive repository.ArticleRepository, logger *zap.Logger) RunManager {
	return &runManagerUseCase{runs: runs, queue: queue, archive: archive, logger: logger}
}

// Submit records an idle run and queues it for a worker.
func (uc *runManagerUseCase) Submit(ctx context.Context, sources []entity.Source, keywords []string) (*entity.ScrapeRun, error) {
	if len(runnableSources(sources)) == 0 {
		return nil, ErrNoSources
	}

	run := entity.NewScrapeRun(sources, cleanKeywords(keywords))
	if err := uc.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	if err := uc.queue.Push(ctx, run.ID); err != nil {
		run.Status = entity.RunStatusFailed
		run.Error = "could not queue run"
		if uerr := uc.runs.Update(ctx, run); uerr != nil {
			uc.logger.Error("failed to mark unqueued run as failed", zap.String("run_id", run.ID.String()), zap.Error(uerr))
		}
		return nil, fmt.Errorf("queue run %s: %w", run.ID, err)
	}
	metrics.RunsInQueue.Inc()

	uc.logger.Info("run submitted",
		zap.String("run_id", run.ID.String()),
		zap.Int("sources", len(sources)),
		zap.Strings("keywords", run.Keywords),
	)
	return run, nil
}

func (uc *runManagerUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.ScrapeRun, error) {
	return uc.runs.FindByID(ctx, id)
}

// Articles returns repository.ErrNotFound for unknown runs.
func (uc *runManagerUseCase) Articles(ctx context.Context, id uuid.UUID) ([]entity.Article, error) {
	if _, err := uc.runs.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if uc.archive == nil {
		return []entity.Article{}, nil
	}
	articles, err := uc.archive.FindByRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load articles for run %s: %w", id, err)
	}
	return articles, nil
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
