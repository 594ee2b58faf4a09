package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
	"github.com/google/uuid"
)

// Origins of a page change.
const (
	OriginLoad     = "load"
	OriginNavigate = "navigate"
	OriginHistory  = "history"
)

// NoResultsMessage is shown in place of the list when a block has nothing to show.
const NoResultsMessage = "There are no results. Please try again."

// Session owns one block instance: its item collection, paging position,
// navigation strip, rendered list and URL state. All state changes go
// through SetPage and HandlePopState.
type Session struct {
	block     string
	items     domain.FeedCollection
	state     domain.PaginationState
	navigator *Navigator
	renderer  *PageRenderer
	url       *URLState
	events    domain.EventPublisher
	logger    *slog.Logger

	mu  sync.Mutex
	nav domain.Navigation
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithEventPublisher publishes every page change.
func WithEventPublisher(p domain.EventPublisher) SessionOption {
	return func(s *Session) { s.events = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithRenderer overrides the default (immediate) page renderer.
func WithRenderer(r *PageRenderer) SessionOption {
	return func(s *Session) { s.renderer = r }
}

// NewSession creates a session over items (already reverse-chronological and
// normalized). The session shows nothing until Start.
func NewSession(block string, items domain.FeedCollection, itemsPerPage int, url *URLState, opts ...SessionOption) *Session {
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}
	total := ComputeTotalPages(len(items), itemsPerPage)
	s := &Session{
		block: block,
		items: items,
		state: domain.PaginationState{
			ItemsPerPage: itemsPerPage,
			TotalPages:   total,
		},
		navigator: NewNavigator(total),
		url:       url,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NewPageRenderer(0)
	}
	return s
}

// Start shows the page named by the URL state, or page 1.
func (s *Session) Start(ctx context.Context) {
	if s.Empty() {
		s.logger.Debug("Block has no items", "block", s.block)
		return
	}
	s.setPage(ctx, s.url.Read(s.state.TotalPages), OriginLoad, true)
}

// SetPage moves to requested. Out-of-range requests are ignored, as is a
// request for the page already shown. It reports whether the page changed.
func (s *Session) SetPage(ctx context.Context, requested int) bool {
	return s.setPage(ctx, requested, OriginNavigate, true)
}

// Prev moves one page back.
func (s *Session) Prev(ctx context.Context) bool {
	return s.SetPage(ctx, s.CurrentPage()-1)
}

// Next moves one page forward.
func (s *Session) Next(ctx context.Context) bool {
	return s.SetPage(ctx, s.CurrentPage()+1)
}

// HandlePopState reacts to back/forward navigation: when the page in the
// current history entry differs from the one shown, the session follows it
// without pushing a new entry.
func (s *Session) HandlePopState(ctx context.Context) bool {
	if s.Empty() {
		return false
	}
	page := s.url.Read(s.state.TotalPages)
	if page == s.CurrentPage() {
		return false
	}
	return s.setPage(ctx, page, OriginHistory, false)
}

func (s *Session) setPage(ctx context.Context, requested int, origin string, push bool) bool {
	s.mu.Lock()
	if requested < 1 || requested > s.state.TotalPages {
		s.mu.Unlock()
		metrics.PageOutOfRange.WithLabelValues(s.block).Inc()
		s.logger.Debug("Ignoring out of range page", "block", s.block, "requested", requested, "total_pages", s.state.TotalPages)
		return false
	}
	if requested == s.state.CurrentPage {
		s.mu.Unlock()
		return false
	}

	from := s.state.CurrentPage
	s.state.CurrentPage = requested
	start, end := SliceBounds(requested, s.state.TotalPages, len(s.items), s.state.ItemsPerPage)
	s.nav = s.navigator.Update(requested)
	s.mu.Unlock()

	s.renderer.Render(s.items[start:end])
	if push {
		s.url.Write(requested)
	}

	metrics.PageChanges.WithLabelValues(s.block, origin).Inc()
	s.publish(ctx, from, requested, origin)
	return true
}

func (s *Session) publish(ctx context.Context, from, to int, origin string) {
	if s.events == nil {
		return
	}
	event := &domain.PageChange{
		ID:         uuid.NewString(),
		Block:      s.block,
		From:       from,
		To:         to,
		TotalPages: s.state.TotalPages,
		Origin:     origin,
		At:         time.Now().UTC(),
	}
	if err := s.events.PublishPageChange(ctx, event); err != nil {
		metrics.PublishErrors.WithLabelValues(s.block).Inc()
		s.logger.Warn("Failed to publish page change", "block", s.block, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(s.block).Inc()
}

// Empty reports whether the session has no pages to show.
func (s *Session) Empty() bool {
	return s.state.TotalPages == 0
}

// State returns the current pagination state.
func (s *Session) State() domain.PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentPage returns the page shown, 0 before Start or for an empty session.
func (s *Session) CurrentPage() int {
	return s.State().CurrentPage
}

// Navigation returns the navigation strip for the current page.
func (s *Session) Navigation() domain.Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	nav := s.nav
	nav.Buttons = append([]domain.NavButton(nil), s.nav.Buttons...)
	return nav
}

// Renderer returns the page renderer of the session.
func (s *Session) Renderer() *PageRenderer {
	return s.renderer
}

// URL returns the URL state of the session.
func (s *Session) URL() *URLState {
	return s.url
}
