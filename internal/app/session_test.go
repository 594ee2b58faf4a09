package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func numberedItems(n int) domain.FeedCollection {
	out := make(domain.FeedCollection, n)
	for i := range out {
		out[i] = domain.FeedItem{
			Title:          fmt.Sprintf("item-%d", i),
			RedirectTarget: fmt.Sprintf("https://example.com/%d", i),
			Date:           "1/1/2024",
		}
	}
	return out
}

func newTestSession(t *testing.T, n, perPage int, query string, opts ...SessionOption) (*Session, *History) {
	t.Helper()
	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	h := NewHistory(q)
	return NewSession("press", numberedItems(n), perPage, NewURLState(h), opts...), h
}

func titles(v ListView) []string {
	out := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		out[i] = e.Title
	}
	return out
}

func TestSession_StartDefaultsToFirstPage(t *testing.T) {
	s, h := newTestSession(t, 95, 10, "")
	s.Start(context.Background())

	state := s.State()
	assert.Equal(t, domain.PaginationState{ItemsPerPage: 10, TotalPages: 10, CurrentPage: 1}, state)

	view := s.Renderer().View()
	require.Len(t, view.Entries, 10)
	assert.Equal(t, "item-0", view.Entries[0].Title)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "1", h.Current().Get("p"))
	assert.True(t, s.Navigation().PrevDisabled)
}

func TestSession_StartFromQuery(t *testing.T) {
	s, _ := newTestSession(t, 95, 10, "p=10")
	s.Start(context.Background())

	assert.Equal(t, 10, s.CurrentPage())
	assert.Equal(t, []string{"item-90", "item-91", "item-92", "item-93", "item-94"}, titles(s.Renderer().View()))

	s2, _ := newTestSession(t, 95, 10, "p=11")
	s2.Start(context.Background())
	assert.Equal(t, 1, s2.CurrentPage(), "a page past the end falls back to 1")
}

func TestSession_SetPageOutOfRangeIsNoop(t *testing.T) {
	s, h := newTestSession(t, 95, 10, "p=3")
	s.Start(context.Background())
	before := s.Renderer().View()
	repaints := s.Renderer().Repaints()
	entries := h.Len()

	for _, requested := range []int{0, -1, 11, 999} {
		assert.False(t, s.SetPage(context.Background(), requested))
	}

	assert.Equal(t, 3, s.CurrentPage())
	assert.Equal(t, before, s.Renderer().View())
	assert.Equal(t, repaints, s.Renderer().Repaints())
	assert.Equal(t, entries, h.Len())
}

func TestSession_SetPageIsIdempotent(t *testing.T) {
	s, h := newTestSession(t, 95, 10, "")
	s.Start(context.Background())

	require.True(t, s.SetPage(context.Background(), 4))
	repaints := s.Renderer().Repaints()
	entries := h.Len()

	assert.False(t, s.SetPage(context.Background(), 4))
	assert.Equal(t, repaints, s.Renderer().Repaints())
	assert.Equal(t, entries, h.Len())
}

func TestSession_SetPageUpdatesEverything(t *testing.T) {
	s, h := newTestSession(t, 200, 10, "")
	s.Start(context.Background())

	require.True(t, s.SetPage(context.Background(), 10))

	assert.Equal(t, 10, s.CurrentPage())
	assert.Equal(t, "item-90", s.Renderer().View().Entries[0].Title)
	assert.Equal(t, "10", h.Current().Get("p"))

	nav := s.Navigation()
	assert.Equal(t, 10, nav.CurrentPage)
	assert.True(t, nav.LeadingEllipsis)
	assert.True(t, nav.TrailingEllipsis)
	b, _ := nav.Button(10)
	assert.True(t, b.Active)
}

func TestSession_PrevNext(t *testing.T) {
	s, _ := newTestSession(t, 30, 10, "")
	s.Start(context.Background())

	assert.False(t, s.Prev(context.Background()))
	assert.True(t, s.Next(context.Background()))
	assert.True(t, s.Next(context.Background()))
	assert.Equal(t, 3, s.CurrentPage())
	assert.False(t, s.Next(context.Background()), "no page after the last")
	assert.True(t, s.Prev(context.Background()))
	assert.Equal(t, 2, s.CurrentPage())
}

func TestSession_HandlePopState(t *testing.T) {
	s, h := newTestSession(t, 200, 10, "")
	ctx := context.Background()
	s.Start(ctx)
	s.SetPage(ctx, 5)
	s.SetPage(ctx, 2)
	entries := h.Len()

	require.True(t, h.Back())
	assert.True(t, s.HandlePopState(ctx))
	assert.Equal(t, 5, s.CurrentPage())
	assert.Equal(t, "item-40", s.Renderer().View().Entries[0].Title)
	assert.Equal(t, entries, h.Len(), "a pop does not push a history entry")

	require.True(t, h.Forward(), "forward history survives the pop")
	assert.True(t, s.HandlePopState(ctx))
	assert.Equal(t, 2, s.CurrentPage())

	assert.False(t, s.HandlePopState(ctx), "nothing to do when the URL already matches")
}

func TestSession_HandlePopStateOutOfRangeFallsBack(t *testing.T) {
	s, h := newTestSession(t, 100, 10, "")
	ctx := context.Background()
	s.Start(ctx)
	s.SetPage(ctx, 2)

	h.Push(url.Values{"p": {"999"}})
	assert.True(t, s.HandlePopState(ctx))
	assert.Equal(t, 1, s.CurrentPage())
}

func TestSession_PublishesPageChanges(t *testing.T) {
	publisher := new(mocks.MockEventPublisher)
	publisher.On("PublishPageChange", mock.Anything, mock.MatchedBy(func(e *domain.PageChange) bool {
		return e.Origin == OriginLoad && e.From == 0 && e.To == 1
	})).Return(nil).Once()
	publisher.On("PublishPageChange", mock.Anything, mock.MatchedBy(func(e *domain.PageChange) bool {
		return e.Origin == OriginNavigate && e.From == 1 && e.To == 3 && e.Block == "press" && e.ID != ""
	})).Return(errors.New("broker down")).Once()

	s, _ := newTestSession(t, 50, 10, "", WithEventPublisher(publisher))
	s.Start(context.Background())

	assert.True(t, s.SetPage(context.Background(), 3), "publish failures do not undo the page change")
	assert.Equal(t, 3, s.CurrentPage())
	publisher.AssertExpectations(t)
}

func TestSession_Empty(t *testing.T) {
	s := NewSession("press", nil, 10, NewURLState(NewHistory(url.Values{})))
	s.Start(context.Background())

	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.CurrentPage())
	assert.False(t, s.SetPage(context.Background(), 1))
	assert.False(t, s.HandlePopState(context.Background()))

	view := s.View()
	assert.True(t, view.Empty)
	assert.Equal(t, NoResultsMessage, view.Message)
	assert.Nil(t, view.Navigation)
	assert.Empty(t, view.Entries)
}

func TestSession_InvalidItemsPerPageFallsBack(t *testing.T) {
	s, _ := newTestSession(t, 25, 0, "")
	assert.Equal(t, DefaultItemsPerPage, s.State().ItemsPerPage)
	assert.Equal(t, 3, s.State().TotalPages)
}
