package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/report"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/metrics"
)

var (
	ErrNoArticles        = errors.New("no articles scraped")
	ErrNoSources         = errors.New("no enabled sources with urls")
	ErrInvalidTransition = errors.New("invalid run status transition")
)

const DefaultMaxArticles = 150

// ArticleScraper is the part of Scraper the pipeline depends on.
type ArticleScraper interface {
	ScrapeAll(ctx context.Context, sources []entity.Source, keywords []string, observer ProgressObserver) ([]entity.Article, RunStats)
}

// ReportPipeline takes a run from Idle to Done: scrape, compile, publish.
type ReportPipeline struct {
	scraper     ArticleScraper
	publisher   repository.Publisher
	credentials repository.CredentialProvider
	runs        repository.RunRepository
	archive     repository.ArticleRepository
	maxArticles int
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportPipeline wires a pipeline. credentials and archive may be nil:
// publishers that need no credential get "", and articles are not archived.
func NewReportPipeline(
	scraper ArticleScraper,
	publisher repository.Publisher,
	credentials repository.CredentialProvider,
	runs repository.RunRepository,
	archive repository.ArticleRepository,
	maxArticles int,
	logger *zap.Logger,
) *ReportPipeline {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	return &ReportPipeline{
		scraper:     scraper,
		publisher:   publisher,
		credentials: credentials,
		runs:        runs,
		archive:     archive,
		maxArticles: maxArticles,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute runs the whole pipeline for run, persisting every status and
// progress change. observer, if set, also receives progress. The returned
// error is the reason the run failed.
func (p *ReportPipeline) Execute(ctx context.Context, run *entity.ScrapeRun, observer ProgressObserver) error {
	start := time.Now()
	log := p.logger.With(zap.String("run_id", run.ID.String()))

	sources := runnableSources(run.Sources)
	if len(sources) == 0 {
		return p.fail(ctx, run, ErrNoSources)
	}

	if err := p.transition(ctx, run, entity.RunStatusRunning, 0, "Starting scrape..."); err != nil {
		return err
	}

	track := func(percentage int, message string) {
		run.Progress = percentage
		run.Message = message
		run.UpdatedAt = p.now()
		if err := p.runs.Update(context.WithoutCancel(ctx), run); err != nil {
			log.Warn("failed to persist run progress", zap.Error(err))
		}
		if observer != nil {
			observer(percentage, message)
		}
	}

	articles, stats := p.scraper.ScrapeAll(ctx, sources, run.Keywords, track)
	if err := ctx.Err(); err != nil {
		return p.fail(ctx, run, fmt.Errorf("scrape interrupted: %w", err))
	}
	log.Info("scrape complete",
		zap.Int("articles", len(articles)),
		zap.Int64("pages_opened", stats.PagesOpened),
		zap.Any("domain_failures", stats.DomainFailures),
	)

	if err := p.transition(ctx, run, entity.RunStatusAggregating, 100, "Processing complete - Creating document..."); err != nil {
		return err
	}
	if len(articles) == 0 {
		return p.fail(ctx, run, ErrNoArticles)
	}
	if len(articles) > p.maxArticles {
		log.Info("truncating articles", zap.Int("found", len(articles)), zap.Int("kept", p.maxArticles))
		articles = articles[:p.maxArticles]
	}

	credential, err := p.credential(ctx)
	if err != nil {
		return p.fail(ctx, run, fmt.Errorf("auth token error: %w", err))
	}

	req := report.Compile(articles, p.now())
	doc, err := p.publisher.Publish(ctx, req, credential)
	if err != nil {
		return p.fail(ctx, run, fmt.Errorf("publish report: %w", err))
	}

	if p.archive != nil {
		if err := p.archive.SaveBatch(ctx, run.ID, articles); err != nil {
			log.Warn("failed to archive articles", zap.Error(err))
		}
	}

	run.ArticleCount = len(articles)
	run.DocumentID = doc.ID
	run.DocumentURL = doc.URL
	if err := p.transition(ctx, run, entity.RunStatusDone, 100, "Report created"); err != nil {
		return err
	}

	metrics.RunsTotal.WithLabelValues(string(entity.RunStatusDone)).Inc()
	metrics.RunDuration.Observe(time.Since(start).Seconds())
	log.Info("run finished",
		zap.Int("articles", run.ArticleCount),
		zap.String("document_url", doc.URL),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (p *ReportPipeline) credential(ctx context.Context) (string, error) {
	if p.credentials == nil {
		return "", nil
	}
	token, err := p.credentials.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", repository.ErrCredentialUnavailable
	}
	return token, nil
}

func (p *ReportPipeline) transition(ctx context.Context, run *entity.ScrapeRun, next entity.RunStatus, progress int, message string) error {
	if !run.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, run.Status, next)
	}
	run.Status = next
	run.Progress = progress
	run.Message = message
	run.UpdatedAt = p.now()
	if err := p.runs.Update(context.WithoutCancel(ctx), run); err != nil {
		return fmt.Errorf("persist run %s as %s: %w", run.ID, next, err)
	}
	return nil
}

// fail marks run Failed with cause and returns cause.
func (p *ReportPipeline) fail(ctx context.Context, run *entity.ScrapeRun, cause error) error {
	if run.Status.Terminal() {
		return cause
	}
	run.Status = entity.RunStatusFailed
	run.Error = cause.Error()
	run.Message = "Scrape failed: " + cause.Error()
	run.UpdatedAt = p.now()
	if err := p.runs.Update(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Error("failed to persist failed run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}
	metrics.RunsTotal.WithLabelValues(string(entity.RunStatusFailed)).Inc()
	p.logger.Error("run failed", zap.String("run_id", run.ID.String()), zap.Error(cause))
	return cause
}

func runnableSources(sources []entity.Source) []entity.Source {
	out := make([]entity.Source, 0, len(sources))
	for _, s := range sources {
		if s.Runnable() {
			out = append(out, s)
		}
	}
	return out
}
