package chromedp_browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"

	"github.com/user/newsscrape-service/internal/repository"
	"github.com/user/newsscrape-service/pkg/utils"
)

const scrollMetricsScript = `({
	scrollY: window.scrollY,
	viewportHeight: window.innerHeight,
	scrollHeight: Math.max(document.body ? document.body.scrollHeight : 0, document.documentElement.scrollHeight)
})`

// clickScript clicks the first visible, enabled element matching a selector
// whose text contains the wanted string, and reports whether it did.
const clickScript = `((selector, text) => {
	for (const el of document.querySelectorAll(selector)) {
		if (text && !(el.textContent || '').includes(text)) continue;
		if (el.offsetParent === null || el.disabled) continue;
		el.click();
		return true;
	}
	return false;
})(%s, %s)`

type scrollState struct {
	ScrollY        float64 `json:"scrollY"`
	ViewportHeight float64 `json:"viewportHeight"`
	ScrollHeight   float64 `json:"scrollHeight"`
}

// pageImpl is one chromedp tab. Cancelling ctx closes the tab.
type pageImpl struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes actions on the tab, bounded by the caller's ctx as well as
// the tab's lifetime. Cancelling the derived context aborts the actions
// without closing the tab.
func (p *pageImpl) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *pageImpl) Navigate(ctx context.Context, url string) error {
	err := p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", repository.ErrNavigationFailed, url, err)
	}
	return nil
}

// Location returns the current URL. Browser-internal pages (error pages,
// about:, data:, chrome:) are not scriptable and yield ErrPermissionDenied.
func (p *pageImpl) Location(ctx context.Context) (string, error) {
	var location string
	if err := p.run(ctx, chromedp.Location(&location)); err != nil {
		return "", err
	}
	if !utils.IsHTTP(location) {
		return "", fmt.Errorf("%w: %s", repository.ErrPermissionDenied, location)
	}
	return location, nil
}

func (p *pageImpl) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *pageImpl) ScrollMetrics(ctx context.Context) (repository.ScrollMetrics, error) {
	var s scrollState
	if err := p.run(ctx, chromedp.Evaluate(scrollMetricsScript, &s)); err != nil {
		return repository.ScrollMetrics{}, err
	}
	return repository.ScrollMetrics{ScrollY: s.ScrollY, ViewportHeight: s.ViewportHeight, ScrollHeight: s.ScrollHeight}, nil
}

func (p *pageImpl) ScrollTo(ctx context.Context, y float64) error {
	return p.run(ctx, chromedp.Evaluate(fmt.Sprintf("window.scrollTo({top: %g, behavior: 'smooth'})", y), nil))
}

func (p *pageImpl) ClickLoadMore(ctx context.Context, control repository.LoadMoreControl) (bool, error) {
	script, err := buildClickScript(control)
	if err != nil {
		return false, err
	}
	var clicked bool
	if err := p.run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (p *pageImpl) Close() error {
	p.cancel()
	return nil
}

func buildClickScript(control repository.LoadMoreControl) (string, error) {
	selector, err := json.Marshal(control.Selector)
	if err != nil {
		return "", err
	}
	text, err := json.Marshal(control.Text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(clickScript, selector, text), nil
}
