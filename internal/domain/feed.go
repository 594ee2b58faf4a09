package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoResults is returned when a source answers but carries no feed items.
var ErrNoResults = errors.New("no feed items")

// FeedItem is one record of an externally sourced news feed.
type FeedItem struct {
	Title          string   `json:"title" bson:"title"`
	RedirectTarget string   `json:"redirectTarget" bson:"redirect_target"`
	SerialDate     *float64 `json:"-" bson:"serial_date,omitempty"` // day count since 1899-12-30, nil once normalized
	Date           string   `json:"date" bson:"date,omitempty"`     // display date
}

// FeedCollection is an ordered, fixed-after-load sequence of feed items.
type FeedCollection []FeedItem

// Reversed returns a copy of the collection in reverse order.
func (c FeedCollection) Reversed() FeedCollection {
	out := make(FeedCollection, len(c))
	for i, item := range c {
		out[len(c)-1-i] = item
	}
	return out
}

// LoadFailure wraps any transport or parse error raised while loading a source.
type LoadFailure struct {
	Source string
	Err    error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}

// Source loads the raw item collection of a block. Items come back oldest-first.
type Source interface {
	Load(ctx context.Context) (FeedCollection, error)
	GetName() string
}

// ItemStore persists block items for sources backed by a database.
type ItemStore interface {
	LoadItems(ctx context.Context, block string) (FeedCollection, error)
	ReplaceItems(ctx context.Context, block string, items FeedCollection) error
}

// PageChange is emitted every time a session moves to a new page.
type PageChange struct {
	ID         string    `json:"id"`
	Block      string    `json:"block"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	TotalPages int       `json:"total_pages"`
	Origin     string    `json:"origin"` // "load", "navigate" or "history"
	At         time.Time `json:"at"`
}

// EventPublisher publishes page-change events.
type EventPublisher interface {
	PublishPageChange(ctx context.Context, event *PageChange) error
	Close() error
}
