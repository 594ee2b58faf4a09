package transformer

import (
	"strings"
	"testing"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/pkg/serialdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Press</title>
    <link>https://example.com</link>
    <description>Press releases</description>
    <item>
      <title>Second release</title>
      <link>https://example.com/second</link>
      <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>First release</title>
      <link>https://example.com/first</link>
      <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSTransformer_Transform(t *testing.T) {
	items, err := NewRSSTransformer().Transform(strings.NewReader(rssFixture))
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Oldest first, regardless of document order.
	assert.Equal(t, "First release", items[0].Title)
	assert.Equal(t, "https://example.com/first", items[0].RedirectTarget)
	assert.Equal(t, "Second release", items[1].Title)

	require.NotNil(t, items[0].SerialDate)
	assert.Equal(t, "1/1/2024", serialdate.Format(*items[0].SerialDate))
	assert.Equal(t, "1/2/2024", serialdate.Format(*items[1].SerialDate))
}

func TestRSSTransformer_Empty(t *testing.T) {
	doc := `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`
	_, err := NewRSSTransformer().Transform(strings.NewReader(doc))
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestRSSTransformer_Malformed(t *testing.T) {
	_, err := NewRSSTransformer().Transform(strings.NewReader(`{"data": []}`))
	assert.Error(t, err)
}
