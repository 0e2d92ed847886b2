package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/user/newsscrape-service/internal/discovery"
	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
	"go.uber.org/zap"
)

// fakeSite serves canned HTML per URL and records page traffic.
type fakeSite struct {
	mu        sync.Mutex
	html      map[string]string
	navErrs   map[string][]error // consumed one per navigation
	denied    map[string]bool
	blockNav  map[string]bool
	blockHTML map[string]bool
	htmlErrs  map[string]error

	navigations []string
	opened      int
	closed      int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		html:      make(map[string]string),
		navErrs:   make(map[string][]error),
		denied:    make(map[string]bool),
		blockNav:  make(map[string]bool),
		blockHTML: make(map[string]bool),
		htmlErrs:  make(map[string]error),
	}
}

func (s *fakeSite) NewPage(context.Context) (repository.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened++
	return &fakePage{site: s}, nil
}

func (s *fakeSite) Close() error { return nil }

func (s *fakeSite) navigationsTo(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.navigations {
		if u == url {
			n++
		}
	}
	return n
}

type fakePage struct {
	site *fakeSite
	url  string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	s := p.site
	s.mu.Lock()
	s.navigations = append(s.navigations, url)
	block := s.blockNav[url]
	var err error
	if queued := s.navErrs[url]; len(queued) > 0 {
		err, s.navErrs[url] = queued[0], queued[1:]
	}
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	p.url = url
	return nil
}

func (p *fakePage) Location(context.Context) (string, error) {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if p.site.denied[p.url] {
		return "", repository.ErrPermissionDenied
	}
	return p.url, nil
}

func (p *fakePage) HTML(ctx context.Context) (string, error) {
	p.site.mu.Lock()
	block := p.site.blockHTML[p.url]
	html, ok := p.site.html[p.url]
	err := p.site.htmlErrs[p.url]
	p.site.mu.Unlock()

	if err != nil {
		return "", err
	}
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if !ok {
		return "<html><body></body></html>", nil
	}
	return html, nil
}

func (p *fakePage) ScrollMetrics(context.Context) (repository.ScrollMetrics, error) {
	return repository.ScrollMetrics{ViewportHeight: 1000, ScrollHeight: 1000}, nil
}

func (p *fakePage) ScrollTo(context.Context, float64) error { return nil }

func (p *fakePage) ClickLoadMore(context.Context, repository.LoadMoreControl) (bool, error) {
	return false, nil
}

func (p *fakePage) Close() error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	p.site.closed++
	return nil
}

// sleepRecorder records requested pauses without waiting.
type sleepRecorder struct {
	mu     sync.Mutex
	pauses []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.pauses = append(r.pauses, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) count(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.pauses {
		if p == d {
			n++
		}
	}
	return n
}

func (r *sleepRecorder) all() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.pauses...)
}

// Distinct values so recorded pauses can be told apart.
const (
	testBatchPause    = 7 * time.Second
	testListingSettle = 4 * time.Second
	testArticleSettle = 1 * time.Second
)

func testScrapeConfig() ScrapeConfig {
	cfg := DefaultScrapeConfig()
	cfg.BatchPause = testBatchPause
	cfg.ListingSettleDelay = testListingSettle
	cfg.ArticleSettleDelay = testArticleSettle
	return cfg
}

func newTestScraper(site *fakeSite, cfg ScrapeConfig, cache repository.ArticleCache) (*Scraper, *sleepRecorder) {
	rec := &sleepRecorder{}
	noPause := func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	disc := discovery.New(discovery.DefaultConfig(), zap.NewNop(), discovery.WithSleep(noPause))
	fixed := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	s := NewScraper(site, disc, cache, cfg, zap.NewNop(),
		WithScraperSleep(rec.sleep),
		WithClock(func() time.Time { return fixed }),
	)
	return s, rec
}

func paragraph(i int) string {
	return fmt.Sprintf("Paragraph %d reports that officials reached an agreement late on Tuesday night.", i)
}

func articleHTML(title string) string {
	return "<html><head><title>" + title + "</title></head><body><article><h1>" + title + "</h1><p>" +
		paragraph(1) + "</p><p>" + paragraph(2) + "</p><p>" + paragraph(3) + "</p></article></body></html>"
}

func listingHTML(hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i, h := range hrefs {
		fmt.Fprintf(&b, `<li><a href="%s">Headline for world story number %d</a></li>`, h, i)
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

type progressEvent struct {
	percentage int
	message    string
}

type progressLog struct {
	mu     sync.Mutex
	events []progressEvent
}

func (l *progressLog) observe(percentage int, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, progressEvent{percentage, message})
}

func (l *progressLog) indexOf(message string) int {
	for i, e := range l.events {
		if e.message == message {
			return i
		}
	}
	return -1
}

func source(name string, urls ...string) entity.Source {
	return entity.Source{Name: name, URLs: urls, Enabled: true}
}
