package repository

import "context"

// ScrollMetrics is a snapshot of a page's vertical scroll state in CSS pixels.
type ScrollMetrics struct {
	ScrollY        float64
	ViewportHeight float64
	ScrollHeight   float64
}

// LoadMoreControl describes a "load more" button: a CSS selector and,
// optionally, text the element must contain.
type LoadMoreControl struct {
	Selector string
	Text     string
}

// Browser opens isolated pages.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a single live, scriptable page. A Page is owned by one task and
// must be closed by it.
type Page interface {
	// Navigate loads url and waits until the document body is ready.
	Navigate(ctx context.Context, url string) error
	// Location returns the URL of the loaded document.
	Location(ctx context.Context) (string, error)
	// HTML returns a snapshot of the current DOM.
	HTML(ctx context.Context) (string, error)
	ScrollMetrics(ctx context.Context) (ScrollMetrics, error)
	ScrollTo(ctx context.Context, y float64) error
	// ClickLoadMore clicks the first visible, enabled element matching the
	// control and reports whether a click happened.
	ClickLoadMore(ctx context.Context, control LoadMoreControl) (bool, error)
	Close() error
}
