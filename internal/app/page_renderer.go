package app

import (
	"html"
	"sync"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultTransitionDelay is the fade between clearing and repainting the list.
const DefaultTransitionDelay = 200 * time.Millisecond

// ReadMoreText labels the secondary link of every entry.
const ReadMoreText = "Read More"

// ListView is the rendered item list. Pending is true between a clear and
// the deferred repaint that follows it.
type ListView struct {
	Entries []domain.ListEntry `json:"entries"`
	Pending bool               `json:"pending"`
}

// PageRenderer materializes the visible slice into list entries. The clear is
// immediate; the repaint runs after the transition delay and is superseded by
// any later Render.
type PageRenderer struct {
	delay  time.Duration
	policy *bluemonday.Policy

	mu        sync.Mutex
	view      ListView
	next      []domain.ListEntry
	timer     *time.Timer
	gen       uint64
	painted   int
	onRepaint func(ListView)
}

// PageRendererOption configures a PageRenderer.
type PageRendererOption func(*PageRenderer)

// WithRepaintHook registers fn to run after every repaint.
func WithRepaintHook(fn func(ListView)) PageRendererOption {
	return func(r *PageRenderer) { r.onRepaint = fn }
}

func NewPageRenderer(delay time.Duration, opts ...PageRendererOption) *PageRenderer {
	if delay < 0 {
		delay = 0
	}
	r := &PageRenderer{
		delay:  delay,
		policy: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render clears the list and schedules the repaint of items.
func (r *PageRenderer) Render(items domain.FeedCollection) {
	entries := r.materialize(items)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		if r.timer.Stop() {
			metrics.RepaintsSuperseded.Inc()
		}
		r.timer = nil
	}
	r.gen++
	r.view = ListView{Pending: true}
	r.next = entries

	if r.delay == 0 {
		r.paintLocked()
		return
	}

	gen := r.gen
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		// A newer Render owns the view now.
		if gen != r.gen || !r.view.Pending {
			return
		}
		r.paintLocked()
	})
}

// Flush performs a pending repaint immediately.
func (r *PageRenderer) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.view.Pending {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.paintLocked()
}

// View returns a copy of the current list.
func (r *PageRenderer) View() ListView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ListView{
		Entries: append([]domain.ListEntry(nil), r.view.Entries...),
		Pending: r.view.Pending,
	}
}

// Repaints counts completed repaints.
func (r *PageRenderer) Repaints() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.painted
}

func (r *PageRenderer) paintLocked() {
	r.view = ListView{Entries: r.next}
	r.next = nil
	r.timer = nil
	r.painted++
	if r.onRepaint != nil {
		r.onRepaint(ListView{Entries: append([]domain.ListEntry(nil), r.view.Entries...)})
	}
}

func (r *PageRenderer) materialize(items domain.FeedCollection) []domain.ListEntry {
	entries := make([]domain.ListEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, domain.ListEntry{
			Date:         item.Date,
			Title:        r.plainText(item.Title),
			Href:         item.RedirectTarget,
			ReadMoreText: ReadMoreText,
		})
	}
	return entries
}

// plainText strips markup from feed-supplied text. The strict policy escapes
// entities, which the HTML template would escape again, so they are undone here.
func (r *PageRenderer) plainText(s string) string {
	return html.UnescapeString(r.policy.Sanitize(s))
}
