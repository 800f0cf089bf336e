// Package feed exposes a bounded, lazily growing window over a list, driven
// by "fully seen" signals from whatever renders the items.
package feed

import "sync"

// DefaultPageSize is the number of items revealed per window advance.
const DefaultPageSize = 5

// Pager maintains the visible window of a list. It starts with the first
// page and reveals the next page each time every currently visible item has
// signaled fully-seen. Once the window covers the whole source list the
// seen-tracking is disabled and further signals are ignored.
type Pager[T any] struct {
	mu sync.Mutex

	items    []T
	id       func(T) string
	pageSize int

	view      []T
	pageIndex int
	// seen counts fully-seen signals; it is monotonic for the lifetime of
	// the pager.
	seen     int
	tracking bool
}

// Option customizes a Pager.
type Option func(*config)

type config struct {
	pageSize int
	initial  int
}

// WithPageSize overrides the default page size.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithInitialPage starts the window at the given offset instead of 0.
func WithInitialPage(index int) Option {
	return func(c *config) {
		if index >= 0 {
			c.initial = index
		}
	}
}

// NewPager creates a pager over items. The id function extracts the identity
// used for deduplication between windows.
func NewPager[T any](items []T, id func(T) string, opts ...Option) *Pager[T] {
	cfg := config{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pager[T]{
		items:     items,
		id:        id,
		pageSize:  cfg.pageSize,
		pageIndex: cfg.initial,
		tracking:  true,
	}
	p.fillLocked()
	return p
}

// View returns the currently visible window.
func (p *Pager[T]) View() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.view))
	copy(out, p.view)
	return out
}

// Tracking reports whether seen signals still advance the window.
func (p *Pager[T]) Tracking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracking
}

// MarkSeen records that one visible item has been fully seen. When every
// visible item has signaled, the window advances by a page. Returns true if
// the window grew.
func (p *Pager[T]) MarkSeen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.tracking {
		return false
	}

	p.seen++
	if p.seen < len(p.view) {
		return false
	}

	before := len(p.view)
	p.pageIndex = p.seen
	p.fillLocked()
	return len(p.view) > before
}

// Reset swaps the underlying list and re-runs the windowing pass at the
// current offset, keeping only items not already visible.
func (p *Pager[T]) Reset(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.fillLocked()
}

// fillLocked appends the next page of items not already in the view, then
// turns tracking off once the window covers the source list.
func (p *Pager[T]) fillLocked() {
	if p.pageIndex <= len(p.items) {
		p.view = append(p.view, p.distinctPageLocked()...)
	}
	if p.pageIndex+p.pageSize >= len(p.items) {
		p.tracking = false
	}
}

func (p *Pager[T]) distinctPageLocked() []T {
	shown := make(map[string]struct{}, len(p.view))
	for _, item := range p.view {
		shown[p.id(item)] = struct{}{}
	}

	end := p.pageIndex + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	var out []T
	for _, item := range p.items[p.pageIndex:end] {
		if _, dup := shown[p.id(item)]; dup {
			continue
		}
		out = append(out, item)
	}
	return out
}
