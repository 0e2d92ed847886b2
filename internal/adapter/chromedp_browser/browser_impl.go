package chromedp_browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/repository"
)

// Options configures the Chrome processes behind a BrowserImpl.
type Options struct {
	Headless   bool
	ExecPath   string
	Proxies    []string
	UserAgents []string
}

// process is one Chrome instance. Proxies are a process-level setting, so
// each proxy gets its own process.
type process struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// BrowserImpl implements repository.Browser with chromedp. Every page is a
// separate tab.
type BrowserImpl struct {
	opts     Options
	identity *IdentityRotator
	logger   *zap.Logger

	mu        sync.Mutex
	processes map[string]*process
	closed    bool
}

// NewBrowser prepares a browser. Chrome is started lazily by the first NewPage.
func NewBrowser(opts Options, logger *zap.Logger) *BrowserImpl {
	return &BrowserImpl{
		opts:      opts,
		identity:  NewIdentityRotator(opts.Proxies, opts.UserAgents),
		logger:    logger,
		processes: make(map[string]*process),
	}
}

func (b *BrowserImpl) allocatorOptions(proxy string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ExecPath))
	}
	if proxy != "" {
		opts = append(opts, chromedp.ProxyServer(proxy))
	}
	return opts
}

func (b *BrowserImpl) process(proxy string) (*process, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("%w: browser closed", repository.ErrBrowserUnavailable)
	}
	if p, ok := b.processes[proxy]; ok {
		return p, nil
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), b.allocatorOptions(proxy)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(b.logger.Sugar().Debugf))
	// Running with no actions launches Chrome.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", repository.ErrBrowserUnavailable, err)
	}

	p := &process{allocCancel: allocCancel, browserCtx: browserCtx, browserCancel: browserCancel}
	b.processes[proxy] = p
	b.logger.Info("chrome started", zap.Bool("headless", b.opts.Headless), zap.Bool("proxied", proxy != ""))
	return p, nil
}

// NewPage opens a tab with a rotated user agent, and proxy when configured.
func (b *BrowserImpl) NewPage(ctx context.Context) (repository.Page, error) {
	proc, err := b.process(b.identity.NextProxy())
	if err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(proc.browserCtx)
	page := &pageImpl{ctx: tabCtx, cancel: cancel}
	if err := page.run(ctx, emulation.SetUserAgentOverride(b.identity.UserAgent())); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: open tab: %v", repository.ErrBrowserUnavailable, err)
	}
	return page, nil
}

// Close shuts down every Chrome process.
func (b *BrowserImpl) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for key, p := range b.processes {
		p.browserCancel()
		p.allocCancel()
		delete(b.processes, key)
	}
	return nil
}
