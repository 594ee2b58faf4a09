package transformer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/NewsFeedBlocks/internal/domain"
)

const SheetName = "sheet"

// SheetRow is one row of a spreadsheet JSON export.
type SheetRow struct {
	Title          string          `json:"title"`
	RedirectTarget string          `json:"redirectTarget"`
	Date           json.RawMessage `json:"date"`
}

// SheetResponse is the envelope of a spreadsheet JSON export.
type SheetResponse struct {
	Data *[]SheetRow `json:"data"`
}

// SheetTransformer decodes spreadsheet exports. Rows arrive oldest-first.
type SheetTransformer struct{}

func NewSheetTransformer() *SheetTransformer {
	return &SheetTransformer{}
}

func (t *SheetTransformer) Transform(reader io.Reader) (domain.FeedCollection, error) {
	var resp SheetResponse
	if err := json.NewDecoder(reader).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode sheet response: %w", err)
	}
	if resp.Data == nil || len(*resp.Data) == 0 {
		return nil, domain.ErrNoResults
	}

	items := make(domain.FeedCollection, 0, len(*resp.Data))
	for _, row := range *resp.Data {
		items = append(items, t.normalize(row))
	}
	return items, nil
}

func (t *SheetTransformer) normalize(row SheetRow) domain.FeedItem {
	item := domain.FeedItem{
		Title:          row.Title,
		RedirectTarget: row.RedirectTarget,
	}

	raw := bytes.TrimSpace(row.Date)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return item
	}

	// Sheets export numeric cells either as numbers or as numeric strings.
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		item.SerialDate = &num
		return item
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
		if v, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			item.SerialDate = &v
		} else {
			item.Date = text
		}
	}
	return item
}
