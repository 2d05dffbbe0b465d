package page

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	FetchPage(ctx context.Context, path string) ([]byte, error)
}

// Window owns the currently loaded page. Every Load or Reload replaces the
// document and runs the load listeners against the new one, in the order
// they were registered.
type Window struct {
	fetcher Fetcher
	path    string

	mu        sync.Mutex
	current   *Page
	loads     int
	listeners []func(*Page)
}

// NewWindow creates a window that loads path through f.
func NewWindow(f Fetcher, path string) *Window {
	return &Window{fetcher: f, path: path}
}

// NewStaticWindow creates a window over an already-built page. Reloading
// it re-runs the load listeners against the same document.
func NewStaticWindow(p *Page) *Window {
	return &Window{path: p.Path(), current: p}
}

// OnLoad registers fn to run after each load.
func (w *Window) OnLoad(fn func(*Page)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Load fetches and parses the page, then runs the load listeners. When
// loads overlap, the one that replaced the document last wins: a load
// whose page has been replaced skips its remaining listeners.
func (w *Window) Load(ctx context.Context) error {
	p, err := w.fetch(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.current = p
	w.loads++
	seq := w.loads
	listeners := append([]func(*Page){}, w.listeners...)
	w.mu.Unlock()

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("page loaded", "path", w.path, "triggers", len(p.Triggers()))
	}
	for _, fn := range listeners {
		if w.superseded(seq) {
			slog.Debug("page replaced by a newer load", "path", w.path)
			return nil
		}
		fn(p)
	}
	return nil
}

// superseded reports whether a load newer than seq has replaced the page.
func (w *Window) superseded(seq int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loads != seq
}

// Reload performs a full reload of the current page.
func (w *Window) Reload(ctx context.Context) error {
	slog.Debug("reloading page", "path", w.path)
	return w.Load(ctx)
}

// Page returns the currently loaded page, or nil before the first load.
func (w *Window) Page() *Page {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Loads returns how many times the window has loaded.
func (w *Window) Loads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loads
}

func (w *Window) fetch(ctx context.Context) (*Page, error) {
	if w.fetcher == nil {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.current == nil {
			return nil, fmt.Errorf("no page to load")
		}
		return w.current, nil
	}

	body, err := w.fetcher.FetchPage(ctx, w.path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", w.displayPath(), err)
	}
	return Parse(bytes.NewReader(body), w.path)
}

func (w *Window) displayPath() string {
	if w.path == "" {
		return "page"
	}
	return w.path
}
