package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/adapter/memory"
	"github.com/user/newsscrape-service/internal/app"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/usecase"
	"github.com/user/newsscrape-service/pkg/config"
	"github.com/user/newsscrape-service/pkg/logger"
)

type runOptions struct {
	sourcesFile string
	keywords    []string
	names       []string
	publisher   string
}

func newRunCmd(envFile *string) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape sources and publish a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd, *envFile, opts)
		},
	}
	cmd.Flags().StringVar(&opts.sourcesFile, "sources", "", "YAML file with keywords and sources (default: built-in sources)")
	cmd.Flags().StringArrayVarP(&opts.keywords, "keyword", "k", nil, "keyword to match in link titles (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.names, "source", "s", nil, "only scrape the named source (repeatable)")
	cmd.Flags().StringVar(&opts.publisher, "publisher", "", "gdocs or pdf (default from PUBLISHER)")
	return cmd
}

func runScrape(cmd *cobra.Command, envFile string, opts runOptions) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sources, keywords, err := resolveSources(opts)
	if err != nil {
		return err
	}
	kind := opts.publisher
	if kind == "" {
		kind = cfg.Publisher
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	publisher, credentials, err := app.NewPublisher(kind, cfg, log)
	if err != nil {
		return err
	}

	browser := app.NewBrowser(cfg, log.Named("browser"))
	defer browser.Close()

	runs := memory.NewRunRepo()
	scraper := app.NewScraper(cfg, browser, memory.NewArticleCache(), log)
	pipeline := usecase.NewReportPipeline(scraper, publisher, credentials, runs, memory.NewArticleRepo(), cfg.MaxArticles, log.Named("pipeline"))

	run := entity.NewScrapeRun(sources, keywords)
	if err := runs.Create(cmd.Context(), run); err != nil {
		return err
	}

	progress := cmd.ErrOrStderr()
	err = pipeline.Execute(cmd.Context(), run, func(percentage int, message string) {
		fmt.Fprintf(progress, "[%3d%%] %s\n", percentage, message)
	})
	if err != nil {
		log.Error("run failed", zap.String("run_id", run.ID.String()), zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d articles published: %s\n", run.ArticleCount, run.DocumentURL)
	return nil
}

// resolveSources picks the source list and keywords for a run. Keywords from
// flags are added to those in the sources file.
func resolveSources(opts runOptions) ([]entity.Source, []string, error) {
	sources := entity.DefaultSources()
	var keywords []string
	if opts.sourcesFile != "" {
		file, err := config.LoadSources(opts.sourcesFile)
		if err != nil {
			return nil, nil, err
		}
		sources = file.Sources
		keywords = append(keywords, file.Keywords...)
	}
	keywords = append(keywords, opts.keywords...)

	selected, err := usecase.SelectSources(sources, opts.names)
	if err != nil {
		return nil, nil, err
	}
	return selected, keywords, nil
}
