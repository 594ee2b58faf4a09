package transformer

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/pkg/serialdate"
	"github.com/mmcdole/gofeed"
)

const RSSName = "rss"

// RSSTransformer decodes RSS and Atom documents.
type RSSTransformer struct {
	parser *gofeed.Parser
}

func NewRSSTransformer() *RSSTransformer {
	return &RSSTransformer{parser: gofeed.NewParser()}
}

func (t *RSSTransformer) Transform(reader io.Reader) (domain.FeedCollection, error) {
	feed, err := t.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, domain.ErrNoResults
	}

	type dated struct {
		item domain.FeedItem
		at   time.Time
	}
	rows := make([]dated, 0, len(feed.Items))
	for _, fi := range feed.Items {
		item := domain.FeedItem{
			Title:          fi.Title,
			RedirectTarget: fi.Link,
		}

		// Handle PublishedParsed with nil check, falling back to UpdatedParsed
		var at time.Time
		switch {
		case fi.PublishedParsed != nil:
			at = *fi.PublishedParsed
		case fi.UpdatedParsed != nil:
			at = *fi.UpdatedParsed
		}
		if !at.IsZero() {
			s := serialdate.FromTime(at)
			item.SerialDate = &s
		} else {
			item.Date = fi.Published
		}
		rows = append(rows, dated{item: item, at: at})
	}

	// Sources hand items over oldest-first; feeds usually list newest first.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].at.Before(rows[j].at)
	})

	items := make(domain.FeedCollection, len(rows))
	for i, r := range rows {
		items[i] = r.item
	}
	return items, nil
}
