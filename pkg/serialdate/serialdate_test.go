package serialdate

import (
	"testing"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serial(v float64) *float64 { return &v }

func TestFormat_EpochAnchor(t *testing.T) {
	assert.Equal(t, "12/30/1899", Format(0))
	assert.Equal(t, "12/31/1899", Format(1))
	assert.Equal(t, "1/1/1900", Format(2))
}

func TestFormat_ModernDates(t *testing.T) {
	// 45292 is 2024-01-01 in spreadsheet serial form.
	assert.Equal(t, "1/1/2024", Format(45292))
	assert.Equal(t, "2/29/2024", Format(45351))
	// Midday fractions stay on the same calendar day.
	assert.Equal(t, "1/1/2024", Format(45292.5))
}

func TestFromTime_RoundTrip(t *testing.T) {
	ts := time.Date(2023, time.July, 14, 0, 0, 0, 0, time.UTC)
	s := FromTime(ts)
	assert.Equal(t, 45121.0, s)
	assert.True(t, ToTime(s).Equal(ts))
}

func TestNormalize(t *testing.T) {
	items := domain.FeedCollection{
		{Title: "a", SerialDate: serial(0)},
		{Title: "b", SerialDate: serial(1)},
		{Title: "c", Date: "3/4/2020"},
	}

	out := Normalize(items)
	require.Len(t, out, 3)
	assert.Equal(t, "12/30/1899", out[0].Date)
	assert.Equal(t, "12/31/1899", out[1].Date)
	assert.Equal(t, "3/4/2020", out[2].Date)
	for _, item := range out {
		assert.Nil(t, item.SerialDate)
	}

	// The input is left untouched.
	assert.NotNil(t, items[0].SerialDate)
	assert.Empty(t, items[0].Date)
}
