// Package app assembles the scraping pipeline from configuration. Both the
// API server and the CLI build their pipeline here.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/adapter/chromedp_browser"
	"github.com/user/newsscrape-service/internal/adapter/gdocs"
	"github.com/user/newsscrape-service/internal/adapter/pdf"
	"github.com/user/newsscrape-service/internal/discovery"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/internal/usecase"
	"github.com/user/newsscrape-service/pkg/config"
)

const (
	PublisherGoogleDocs = "gdocs"
	PublisherPDF        = "pdf"
)

// ScrapeConfig maps the orchestration settings out of cfg.
func ScrapeConfig(cfg *config.Config) usecase.ScrapeConfig {
	sc := usecase.DefaultScrapeConfig()
	sc.MaxConcurrentSources = cfg.MaxConcurrentSources
	sc.MaxConcurrentURLs = cfg.MaxConcurrentURLs
	sc.MaxConcurrentLinks = cfg.MaxConcurrentLinks
	sc.PageLoadTimeout = cfg.PageLoadTimeout
	sc.LinkLoadTimeout = cfg.LinkLoadTimeout
	sc.ListingSettleDelay = cfg.ListingSettleDelay
	sc.ArticleSettleDelay = cfg.ArticleSettleDelay
	sc.ListingResponseTimeout = cfg.ListingResponseTimeout
	sc.ArticleResponseTimeout = cfg.ArticleResponseTimeout
	sc.BatchPause = cfg.BatchPause
	sc.SkipDomains = cfg.SkipDomains
	sc.DomainInterval = cfg.DomainInterval
	sc.CacheTTL = cfg.ArticleCacheTTL
	sc.Retry.MaxRetries = cfg.MaxRetries
	sc.Retry.BaseDelay = cfg.RetryBaseDelay
	return sc
}

// NewBrowser creates the chromedp browser described by cfg.
func NewBrowser(cfg *config.Config, logger *zap.Logger) *chromedp_browser.BrowserImpl {
	return chromedp_browser.NewBrowser(chromedp_browser.Options{
		Headless:   cfg.BrowserHeadless,
		ExecPath:   cfg.ChromePath,
		Proxies:    cfg.Proxies,
		UserAgents: cfg.UserAgents,
	}, logger)
}

// NewScraper wires the orchestrator over browser. cache may be nil.
func NewScraper(cfg *config.Config, browser repository.Browser, cache repository.ArticleCache, logger *zap.Logger) *usecase.Scraper {
	discoverer := discovery.New(discovery.DefaultConfig(), logger.Named("discovery"))
	return usecase.NewScraper(browser, discoverer, cache, ScrapeConfig(cfg), logger.Named("scraper"))
}

// NewPublisher returns the publisher selected by kind and the credential
// provider it needs, which is nil for publishers that need none.
func NewPublisher(kind string, cfg *config.Config, logger *zap.Logger) (repository.Publisher, repository.CredentialProvider, error) {
	switch strings.ToLower(kind) {
	case PublisherGoogleDocs:
		return gdocs.NewPublisher(cfg.DocsEndpoint, nil, logger.Named("gdocs")), googleCredentials(cfg), nil
	case PublisherPDF:
		return pdf.NewPublisher(cfg.PDFOutputDir, logger.Named("pdf")), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown publisher %q", config.ErrInvalidConfig, kind)
	}
}

// googleCredentials prefers a refresh token, which keeps a long-running
// server publishing after the first access token expires.
func googleCredentials(cfg *config.Config) repository.CredentialProvider {
	if cfg.GoogleRefreshToken != "" {
		return gdocs.NewRefreshingToken(context.Background(), cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRefreshToken, cfg.GoogleTokenURL)
	}
	return gdocs.StaticToken(cfg.GoogleAccessToken)
}
