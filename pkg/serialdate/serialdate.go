// Package serialdate converts spreadsheet serial day counts into calendar dates.
// Day 0 is 1899-12-30, the epoch used by Google Sheets and Excel exports.
package serialdate

import (
	"math"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
)

// DisplayLayout matches the en-US short date format (no zero padding).
const DisplayLayout = "1/2/2006"

const day = 24 * time.Hour

var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ToTime converts a serial day count to a UTC time. Fractional days are kept.
// Whole days go through AddDate so serials beyond the time.Duration range still resolve.
func ToTime(serial float64) time.Time {
	whole := math.Floor(serial)
	frac := serial - whole
	return epoch.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(day)))
}

// FromTime converts t to a serial day count.
func FromTime(t time.Time) float64 {
	secs := t.Unix() - epoch.Unix()
	return float64(secs)/day.Seconds() + float64(t.Nanosecond())/float64(day)
}

// Format renders a serial day count as an en-US short date.
func Format(serial float64) string {
	return ToTime(serial).Format(DisplayLayout)
}

// Normalize returns a copy of items with serial dates replaced by display dates.
// Items that already carry a display date are passed through.
func Normalize(items domain.FeedCollection) domain.FeedCollection {
	out := make(domain.FeedCollection, len(items))
	for i, item := range items {
		if item.SerialDate != nil {
			item.Date = Format(*item.SerialDate)
			item.SerialDate = nil
		}
		out[i] = item
	}
	return out
}
