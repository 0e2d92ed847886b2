package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/adapter/postgres"
	redis_adapter "github.com/user/newsscrape-service/internal/adapter/redis"
	"github.com/user/newsscrape-service/internal/app"
	"github.com/user/newsscrape-service/internal/delivery/http/handler"
	"github.com/user/newsscrape-service/internal/delivery/http/router"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/internal/usecase"
	"github.com/user/newsscrape-service/pkg/config"
	"github.com/user/newsscrape-service/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load("")
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connections ---
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	defer dbpool.Close()
	if err := dbpool.Ping(ctx); err != nil {
		log.Fatal("unable to ping database", zap.Error(err))
	}
	log.Info("postgres connection pool established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("unable to connect to redis", zap.Error(err))
	}
	log.Info("redis connection established")

	// --- Repositories ---
	runRepo := postgres.NewRunRepo(dbpool)
	articleRepo := postgres.NewArticleRepo(dbpool)
	queueRepo := redis_adapter.NewQueueRepo(rdb)
	articleCache := redis_adapter.NewArticleCache(rdb)

	// --- Use Cases ---
	browser := app.NewBrowser(cfg, log.Named("browser"))
	defer browser.Close()

	publisher, credentials, err := app.NewPublisher(cfg.Publisher, cfg, log)
	if err != nil {
		log.Fatal("invalid publisher", zap.Error(err))
	}
	scraper := app.NewScraper(cfg, browser, articleCache, log)
	pipeline := usecase.NewReportPipeline(scraper, publisher, credentials, runRepo, articleRepo, cfg.MaxArticles, log.Named("pipeline"))
	runManager := usecase.NewRunManager(runRepo, queueRepo, articleRepo, log.Named("runs"))
	runWorker := usecase.NewRunWorker(queueRepo, runRepo, pipeline, log.Named("worker"))

	var workers sync.WaitGroup
	for i := range cfg.RunWorkers {
		workers.Add(1)
		go func() {
			defer workers.Done()
			pollRuns(ctx, runWorker, cfg.QueuePollInterval, log.With(zap.Int("worker", i)))
		}()
	}

	// --- HTTP Server ---
	checks := map[string]handler.HealthCheck{
		"postgres": dbpool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	apiHandler := handler.NewHandler(runManager, entity.DefaultSources(), checks, log.Named("http"))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler, log.Named("http")),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort), zap.Int("workers", cfg.RunWorkers))

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	workers.Wait()
	log.Info("server exiting")
}

// pollRuns processes queued runs until ctx is cancelled, sleeping for
// interval whenever the queue is empty or errors.
func pollRuns(ctx context.Context, worker usecase.RunWorker, interval time.Duration, log *zap.Logger) {
	for ctx.Err() == nil {
		err := worker.ProcessNextRun(ctx)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrQueueEmpty) && ctx.Err() == nil {
			log.Error("run worker failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
		case <-time.After(interval):
		}
	}
}
