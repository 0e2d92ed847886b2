// Package discovery surfaces lazily loaded listing content by scrolling a live
// page and pressing "load more" controls between link extraction passes.
package discovery

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/extractor"
	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/utils"
	"go.uber.org/zap"
)

// LoadMoreControls are tried in order each time the page bottom is reached.
var LoadMoreControls = []repository.LoadMoreControl{
	{Selector: `button[data-testid="load-more"]`},
	{Selector: ".load-more"},
	{Selector: ".show-more"},
	{Selector: ".load-more-button"},
	{Selector: "button", Text: "Load More"},
	{Selector: "button", Text: "Show More"},
	{Selector: "button", Text: "More Stories"},
	{Selector: "[data-load-more]"},
	{Selector: ".pagination-next"},
	{Selector: ".next-page"},
	{Selector: ".load-more-posts"},
	{Selector: ".load-more-articles"},
}

// Config tunes the scroll loop.
type Config struct {
	MaxIterations   int
	ScrollDelay     time.Duration
	ClickDelay      time.Duration
	BottomDelay     time.Duration
	StepRatio       float64 // fraction of the viewport scrolled per step
	BottomThreshold float64 // pixels from the end that count as the bottom
	StagnationLimit int
	MaxLinks        int
}

func DefaultConfig() Config {
	return Config{
		MaxIterations:   5,
		ScrollDelay:     1500 * time.Millisecond,
		ClickDelay:      1000 * time.Millisecond,
		BottomDelay:     2000 * time.Millisecond,
		StepRatio:       0.8,
		BottomThreshold: 100,
		StagnationLimit: 2,
		MaxLinks:        50,
	}
}

type Discoverer struct {
	cfg    Config
	logger *zap.Logger
	sleep  utils.SleepFunc
}

type Option func(*Discoverer)

// WithSleep replaces the pause function.
func WithSleep(fn utils.SleepFunc) Option {
	return func(d *Discoverer) { d.sleep = fn }
}

func New(cfg Config, logger *zap.Logger, opts ...Option) *Discoverer {
	d := &Discoverer{cfg: cfg, logger: logger, sleep: utils.Sleep}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover scrolls page and returns the unique candidate links seen across
// all passes, in discovery order. Any page error during scrolling is returned
// so the caller can fall back to a single extraction pass.
func (d *Discoverer) Discover(ctx context.Context, page repository.Page, pageURL string, keywords []string) ([]entity.CandidateLink, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}
	found := newLinkSet()
	collect := func() (int, error) {
		links, err := SinglePass(ctx, page, base, keywords)
		if err != nil {
			return 0, err
		}
		return found.add(links), nil
	}

	if _, err := collect(); err != nil {
		return nil, err
	}
	initial := found.size()

	stagnant := 0
	for i := 0; i < d.cfg.MaxIterations; i++ {
		m, err := page.ScrollMetrics(ctx)
		if err != nil {
			return nil, err
		}
		startHeight := m.ScrollHeight

		target := math.Max(0, math.Min(m.ScrollY+m.ViewportHeight*d.cfg.StepRatio, m.ScrollHeight-m.ViewportHeight))
		if err := page.ScrollTo(ctx, target); err != nil {
			return nil, err
		}
		if err := d.sleep(ctx, d.cfg.ScrollDelay); err != nil {
			return nil, err
		}

		if m, err = page.ScrollMetrics(ctx); err != nil {
			return nil, err
		}
		if m.ScrollY+m.ViewportHeight >= m.ScrollHeight-d.cfg.BottomThreshold {
			if err := d.pressLoadMore(ctx, page); err != nil {
				return nil, err
			}
			if err := d.sleep(ctx, d.cfg.BottomDelay); err != nil {
				return nil, err
			}
			if m, err = page.ScrollMetrics(ctx); err != nil {
				return nil, err
			}
		}
		grew := m.ScrollHeight > startHeight

		added, err := collect()
		if err != nil {
			return nil, err
		}
		d.logger.Debug("scroll pass",
			zap.String("url", pageURL),
			zap.Int("iteration", i+1),
			zap.Int("new_links", added),
			zap.Bool("height_grew", grew),
		)

		if added == 0 && !grew {
			stagnant++
			if stagnant >= d.cfg.StagnationLimit {
				break
			}
		} else {
			stagnant = 0
		}
	}

	if _, err := collect(); err != nil {
		return nil, err
	}
	_ = page.ScrollTo(ctx, 0)

	links := found.list(d.cfg.MaxLinks)
	d.logger.Info("scroll discovery finished",
		zap.String("url", pageURL),
		zap.Int("links", len(links)),
		zap.Int("from_scrolling", found.size()-initial),
	)
	return links, nil
}

func (d *Discoverer) pressLoadMore(ctx context.Context, page repository.Page) error {
	for _, control := range LoadMoreControls {
		clicked, err := page.ClickLoadMore(ctx, control)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Debug("load more click failed", zap.String("selector", control.Selector), zap.Error(err))
			continue
		}
		if !clicked {
			continue
		}
		if err := d.sleep(ctx, d.cfg.ClickDelay); err != nil {
			return err
		}
	}
	return nil
}

// SinglePass snapshots the page DOM and runs one link extraction over it.
func SinglePass(ctx context.Context, page repository.Page, base *url.URL, keywords []string) ([]entity.CandidateLink, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parse dom: %v", repository.ErrExtractionFailed, err)
	}
	return extractor.ExtractLinks(doc, base, keywords), nil
}

// linkSet keeps the first link seen for each URL, in insertion order.
type linkSet struct {
	index map[string]struct{}
	links []entity.CandidateLink
}

func newLinkSet() *linkSet {
	return &linkSet{index: make(map[string]struct{})}
}

func (s *linkSet) add(links []entity.CandidateLink) int {
	added := 0
	for _, l := range links {
		if _, ok := s.index[l.URL]; ok {
			continue
		}
		s.index[l.URL] = struct{}{}
		s.links = append(s.links, l)
		added++
	}
	return added
}

func (s *linkSet) size() int { return len(s.links) }

func (s *linkSet) list(max int) []entity.CandidateLink {
	if max > 0 && len(s.links) > max {
		return s.links[:max]
	}
	return s.links
}
