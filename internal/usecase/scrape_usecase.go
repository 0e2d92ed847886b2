package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/newsscrape-service/internal/discovery"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/extractor"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/metrics"
	"github.com/user/newsscrape-service/pkg/utils"
)

var (
	articlePath = regexp.MustCompile(`/(article|story|post|news)/`)
	datedPath   = regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`)
)

// IsListingURL reports whether rawURL looks like a section or home page
// rather than a single story.
func IsListingURL(rawURL string) bool {
	return !articlePath.MatchString(rawURL) && !datedPath.MatchString(rawURL)
}

// ScrapeConfig holds the orchestration limits and timings.
type ScrapeConfig struct {
	MaxConcurrentSources int
	MaxConcurrentURLs    int
	MaxConcurrentLinks   int

	PageLoadTimeout        time.Duration
	LinkLoadTimeout        time.Duration
	ListingSettleDelay     time.Duration
	ArticleSettleDelay     time.Duration
	ListingResponseTimeout time.Duration
	ArticleResponseTimeout time.Duration
	BatchPause             time.Duration

	SkipDomains    []string
	DomainInterval time.Duration
	CacheTTL       time.Duration
	Retry          RetryPolicy
}

func DefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		MaxConcurrentSources:   4,
		MaxConcurrentURLs:      6,
		MaxConcurrentLinks:     3,
		PageLoadTimeout:        35 * time.Second,
		LinkLoadTimeout:        30 * time.Second,
		ListingSettleDelay:     4 * time.Second,
		ArticleSettleDelay:     2 * time.Second,
		ListingResponseTimeout: 15 * time.Second,
		ArticleResponseTimeout: 5 * time.Second,
		BatchPause:             2 * time.Second,
		SkipDomains:            []string{"apnews.com"},
		CacheTTL:               6 * time.Hour,
		Retry:                  DefaultRetryPolicy(),
	}
}

// Scraper drives the browser across sources, listing pages and article pages.
type Scraper struct {
	browser    repository.Browser
	discoverer *discovery.Discoverer
	cache      repository.ArticleCache
	cfg        ScrapeConfig
	logger     *zap.Logger
	sleep      utils.SleepFunc
	now        func() time.Time
}

type ScraperOption func(*Scraper)

// WithScraperSleep replaces the pause function used between batches, for
// settling and for retry delays.
func WithScraperSleep(fn utils.SleepFunc) ScraperOption {
	return func(s *Scraper) { s.sleep = fn }
}

func WithClock(now func() time.Time) ScraperOption {
	return func(s *Scraper) { s.now = now }
}

// NewScraper wires a Scraper. cache may be nil.
func NewScraper(
	browser repository.Browser,
	discoverer *discovery.Discoverer,
	cache repository.ArticleCache,
	cfg ScrapeConfig,
	logger *zap.Logger,
	opts ...ScraperOption,
) *Scraper {
	s := &Scraper{
		browser:    browser,
		discoverer: discoverer,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		sleep:      utils.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeAll scrapes every source and returns the aggregated articles in
// source order along with run statistics. Per-page failures never abort the
// run; a cancelled ctx stops scheduling new work.
func (s *Scraper) ScrapeAll(ctx context.Context, sources []entity.Source, keywords []string, observer ProgressObserver) ([]entity.Article, RunStats) {
	state := NewRunState(s.cfg.DomainInterval)
	progress := newProgressReporter(observer)
	keywords = extractor.NormalizeKeywords(keywords)

	total := len(sources)
	progress.report(0, "Starting scrape...")

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}

	var completed atomic.Int64
	results := make([][]entity.Article, total)
	for ci, group := range chunk(indices, s.cfg.MaxConcurrentSources) {
		if ci > 0 {
			if err := s.sleep(ctx, s.cfg.BatchPause); err != nil {
				break
			}
		}

		var g errgroup.Group
		for _, idx := range group {
			g.Go(func() error {
				src := sources[idx]
				progress.report(percent(int(completed.Load()), total), fmt.Sprintf("Scraping %s...", src.Name))

				articles := s.scrapeSource(ctx, state, src, keywords)
				results[idx] = articles

				done := completed.Add(1)
				progress.report(percent(int(done), total), fmt.Sprintf("Completed %s - Found %d articles", src.Name, len(articles)))
				return nil
			})
		}
		_ = g.Wait()
	}

	articles := Aggregate(results)
	progress.report(100, "Processing complete - Creating document...")

	stats := state.Stats()
	s.logger.Info("scrape finished",
		zap.Int("sources", total),
		zap.Int("articles", len(articles)),
		zap.Int64("pages_opened", stats.PagesOpened),
		zap.Int64("retries", stats.Retries),
		zap.Int64("skipped_urls", stats.SkippedURLs),
	)
	return articles, stats
}

// Aggregate flattens per-source results in order, keeping the first article
// for each URL and dropping articles without content.
func Aggregate(results [][]entity.Article) []entity.Article {
	seen := make(map[string]struct{})
	var out []entity.Article
	for _, batch := range results {
		for _, a := range batch {
			if strings.TrimSpace(a.Content) == "" {
				continue
			}
			if _, dup := seen[a.URL]; dup {
				continue
			}
			seen[a.URL] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

func (s *Scraper) scrapeSource(ctx context.Context, state *RunState, src entity.Source, keywords []string) []entity.Article {
	urls := make([]string, 0, len(src.URLs))
	for _, u := range src.URLs {
		if s.skipped(u) {
			s.logger.Info("skipping url on skip list", zap.String("source", src.Name), zap.String("url", u))
			metrics.PagesFetchedTotal.WithLabelValues("listing", "skipped").Inc()
			state.urlSkipped()
			continue
		}
		urls = append(urls, u)
	}

	batches := chunk(urls, s.cfg.MaxConcurrentURLs)
	var out []entity.Article
	for _, batch := range batches {
		perURL := make([][]entity.Article, len(batch))
		var g errgroup.Group
		for i, u := range batch {
			g.Go(func() error {
				perURL[i] = s.scrapeURL(ctx, state, src.Name, u, keywords)
				return nil
			})
		}
		_ = g.Wait()
		for _, articles := range perURL {
			out = append(out, articles...)
		}

		if len(batches) > 1 {
			if err := s.sleep(ctx, s.cfg.BatchPause); err != nil {
				break
			}
		}
	}
	return out
}

func (s *Scraper) skipped(rawURL string) bool {
	domain := utils.Domain(rawURL)
	for _, skip := range s.cfg.SkipDomains {
		if skip != "" && strings.Contains(domain, skip) {
			return true
		}
	}
	return false
}

// scrapeURL loads one seed URL and follows any links discovered on it.
func (s *Scraper) scrapeURL(ctx context.Context, state *RunState, source, rawURL string, keywords []string) []entity.Article {
	result := s.loadAndExtract(ctx, state, source, rawURL, keywords)
	articles := result.Articles
	if len(result.Links) > 0 {
		s.logger.Info("following discovered links",
			zap.String("source", source),
			zap.String("url", rawURL),
			zap.Int("links", len(result.Links)),
		)
		articles = append(articles, s.fetchLinks(ctx, state, source, result.Links, keywords)...)
	}
	return articles
}

func (s *Scraper) loadAndExtract(ctx context.Context, state *RunState, source, rawURL string, keywords []string) entity.PageResult {
	settle, respond := s.cfg.ArticleSettleDelay, s.cfg.ArticleResponseTimeout
	if IsListingURL(rawURL) {
		settle, respond = s.cfg.ListingSettleDelay, s.cfg.ListingResponseTimeout
	}

	page, err := s.openPage(ctx, state, rawURL, s.cfg.PageLoadTimeout)
	if err != nil {
		s.pageFailed(state, "listing", rawURL, err)
		return entity.PageResult{}
	}
	defer page.Close()

	if err := s.sleep(ctx, settle); err != nil {
		return entity.PageResult{}
	}

	rctx, cancel := context.WithTimeout(ctx, respond)
	defer cancel()
	result, err := s.extractPage(rctx, page, source, rawURL, keywords, true)
	if err != nil {
		if errors.Is(rctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: no extraction response within %s", repository.ErrPageTimeout, respond)
		}
		s.pageFailed(state, "listing", rawURL, err)
		return entity.PageResult{}
	}

	metrics.PagesFetchedTotal.WithLabelValues("listing", "success").Inc()
	return result
}

// openPage waits for the domain limiter, opens a page and navigates it to
// rawURL within timeout. The caller owns the returned page.
func (s *Scraper) openPage(ctx context.Context, state *RunState, rawURL string, timeout time.Duration) (repository.Page, error) {
	domain := utils.Domain(rawURL)
	if err := state.Wait(ctx, domain); err != nil {
		return nil, err
	}

	page, err := s.browser.NewPage(ctx)
	if err != nil {
		return nil, err
	}

	nctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err = page.Navigate(nctx, rawURL)
	metrics.PageLoadDuration.WithLabelValues(domain).Observe(time.Since(start).Seconds())
	if err != nil {
		_ = page.Close()
		if errors.Is(nctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: loading %s took longer than %s", repository.ErrPageTimeout, rawURL, timeout)
		}
		return nil, err
	}

	state.pageOpened()
	return page, nil
}

// extractPage runs in-page extraction. Article-like pages with enough text
// yield an article; anything else yields discovered links when
// allowDiscovery is set, and nothing otherwise.
func (s *Scraper) extractPage(ctx context.Context, page repository.Page, source, requested string, keywords []string, allowDiscovery bool) (entity.PageResult, error) {
	location, err := page.Location(ctx)
	if err != nil {
		return entity.PageResult{}, err
	}
	html, err := page.HTML(ctx)
	if err != nil {
		return entity.PageResult{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return entity.PageResult{}, fmt.Errorf("%w: parse dom: %v", repository.ErrExtractionFailed, err)
	}

	if extractor.IsArticlePage(doc) {
		content := extractor.ExtractArticle(doc, utils.Domain(location))
		if content.Extracted() {
			metrics.ArticlesExtractedTotal.WithLabelValues(content.Strategy, "extracted").Inc()
			return entity.PageResult{Articles: []entity.Article{{
				Source:    source,
				Title:     content.Title,
				URL:       location,
				Content:   content.Body,
				Timestamp: s.now(),
			}}}, nil
		}
		metrics.ArticlesExtractedTotal.WithLabelValues(content.Strategy, "placeholder").Inc()
		s.logger.Debug("article content too short, treating as listing",
			zap.String("url", location),
			zap.String("strategy", content.Strategy),
		)
	}
	if !allowDiscovery {
		return entity.PageResult{}, nil
	}

	links, err := s.discoverer.Discover(ctx, page, location, keywords)
	if err != nil {
		if ctx.Err() != nil {
			return entity.PageResult{}, ctx.Err()
		}
		s.logger.Warn("scroll discovery failed, using single pass",
			zap.String("url", requested),
			zap.Error(err),
		)
		base, perr := url.Parse(location)
		if perr != nil {
			return entity.PageResult{}, fmt.Errorf("%w: bad location %q", repository.ErrExtractionFailed, location)
		}
		if links, err = discovery.SinglePass(ctx, page, base, keywords); err != nil {
			return entity.PageResult{}, err
		}
	}
	return entity.PageResult{Links: links}, nil
}

// fetchLinks fetches discovered article links in small sequential batches.
// Links that fail after retries are dropped.
func (s *Scraper) fetchLinks(ctx context.Context, state *RunState, source string, links []entity.CandidateLink, keywords []string) []entity.Article {
	var out []entity.Article
	for bi, batch := range chunk(links, s.cfg.MaxConcurrentLinks) {
		if bi > 0 {
			if err := s.sleep(ctx, s.cfg.BatchPause); err != nil {
				break
			}
		}

		fetched := make([]*entity.Article, len(batch))
		var g errgroup.Group
		for i, link := range batch {
			g.Go(func() error {
				fetched[i] = s.fetchArticleWithRetry(ctx, state, source, link, keywords)
				return nil
			})
		}
		_ = g.Wait()

		for _, a := range fetched {
			if a != nil {
				out = append(out, *a)
			}
		}
	}
	return out
}

func (s *Scraper) fetchArticleWithRetry(ctx context.Context, state *RunState, source string, link entity.CandidateLink, keywords []string) *entity.Article {
	if cached := s.cached(ctx, link.URL); cached != nil {
		cached.Source = source
		return cached
	}

	onRetry := func(attempt int, err error) {
		state.retried()
		s.logger.Info("retrying article fetch",
			zap.String("url", link.URL),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	article, err := withRetry(ctx, s.cfg.Retry, s.sleep, onRetry, func(ctx context.Context) (*entity.Article, error) {
		return s.fetchArticle(ctx, state, source, link, keywords)
	})
	if err != nil {
		s.pageFailed(state, "article", link.URL, err)
		return nil
	}
	if article == nil {
		metrics.PagesFetchedTotal.WithLabelValues("article", "empty").Inc()
		return nil
	}

	metrics.PagesFetchedTotal.WithLabelValues("article", "success").Inc()
	s.remember(ctx, *article)
	return article
}

// fetchArticle loads a single article page in article-only mode. A nil
// article with a nil error means the page had no usable content or did not
// answer within ArticleResponseTimeout; any other failure is returned.
func (s *Scraper) fetchArticle(ctx context.Context, state *RunState, source string, link entity.CandidateLink, keywords []string) (*entity.Article, error) {
	page, err := s.openPage(ctx, state, link.URL, s.cfg.LinkLoadTimeout)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := s.sleep(ctx, s.cfg.ArticleSettleDelay); err != nil {
		return nil, err
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.ArticleResponseTimeout)
	defer cancel()
	result, err := s.extractPage(rctx, page, source, link.URL, keywords, false)
	if err != nil {
		// An unanswered extraction is an empty page, not a failed load.
		if errors.Is(rctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			s.logger.Debug("article extraction timed out", zap.String("url", link.URL), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	if len(result.Articles) == 0 {
		return nil, nil
	}
	return &result.Articles[0], nil
}

func (s *Scraper) cached(ctx context.Context, rawURL string) *entity.Article {
	if s.cache == nil {
		return nil
	}
	a, err := s.cache.Get(ctx, rawURL)
	switch {
	case err == nil:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return a
	case errors.Is(err, repository.ErrCacheMiss):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("article cache lookup failed", zap.String("url", rawURL), zap.Error(err))
	}
	return nil
}

func (s *Scraper) remember(ctx context.Context, a entity.Article) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Put(ctx, a, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache article", zap.String("url", a.URL), zap.Error(err))
	}
}

func (s *Scraper) pageFailed(state *RunState, kind, rawURL string, err error) {
	outcome := "error"
	switch {
	case errors.Is(err, repository.ErrPermissionDenied):
		outcome = "permission"
	case errors.Is(err, repository.ErrPageTimeout), errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
	case errors.Is(err, repository.ErrNavigationFailed):
		outcome = "navigation"
	case errors.Is(err, context.Canceled):
		outcome = "cancelled"
	}
	metrics.PagesFetchedTotal.WithLabelValues(kind, outcome).Inc()
	state.RecordFailure(utils.Domain(rawURL))
	s.logger.Warn("page fetch failed",
		zap.String("kind", kind),
		zap.String("url", rawURL),
		zap.String("outcome", outcome),
		zap.Error(err),
	)
}

// chunk splits items into consecutive groups of at most size.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
