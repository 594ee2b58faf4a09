package app

import (
	"net/url"
	"strconv"
	"sync"
)

// PageParam is the query parameter that carries the 1-indexed page number.
const PageParam = "p"

// ReadPage returns the page named by query when it is a whole number in
// [1, totalPages]; anything else resolves to page 1.
func ReadPage(query url.Values, totalPages int) int {
	raw := query.Get(PageParam)
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > totalPages {
		return 1
	}
	return page
}

// History is a browser-style stack of query strings with a cursor.
type History struct {
	mu      sync.Mutex
	entries []url.Values
	index   int
}

// NewHistory starts a history whose only entry is initial.
func NewHistory(initial url.Values) *History {
	return &History{entries: []url.Values{cloneValues(initial)}}
}

// Current returns a copy of the entry under the cursor.
func (h *History) Current() url.Values {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneValues(h.entries[h.index])
}

// Push adds an entry after the cursor, dropping any forward entries.
func (h *History) Push(q url.Values) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], cloneValues(q))
	h.index++
}

// Back moves the cursor one entry back. It reports false at the start.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves the cursor one entry forward. It reports false at the end.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// URLState keeps the page number in the query string of a History.
type URLState struct {
	history *History
}

func NewURLState(history *History) *URLState {
	return &URLState{history: history}
}

// Read returns the page of the current history entry, see ReadPage.
func (u *URLState) Read(totalPages int) int {
	return ReadPage(u.history.Current(), totalPages)
}

// Write pushes a new entry with p=page, keeping all other parameters.
func (u *URLState) Write(page int) {
	u.history.Push(u.withPage(page))
}

// Href returns the relative link ("?...") for page.
func (u *URLState) Href(page int) string {
	return "?" + u.withPage(page).Encode()
}

func (u *URLState) withPage(page int) url.Values {
	q := u.history.Current()
	q.Set(PageParam, strconv.Itoa(page))
	return q
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
