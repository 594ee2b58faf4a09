package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NewsFeedBlocks/pkg/serialdate"
)

const defaultCount = 45

type sheetRow struct {
	Title          string  `json:"title"`
	RedirectTarget string  `json:"redirectTarget"`
	Date           float64 `json:"date"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

type rssDocument struct {
	XMLName xml.Name  `xml:"rss"`
	Version string    `xml:"version,attr"`
	Title   string    `xml:"channel>title"`
	Items   []rssItem `xml:"channel>item"`
}

// count reads ?count=, so local runs can try out the pagination window.
func count(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil && n >= 0 {
		return n
	}
	return defaultCount
}

// published dates item i of n, one day apart, the last one today.
func published(i, n int) time.Time {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, i-n+1)
}

func main() {
	// Sheet rows are oldest-first, like the spreadsheet export.
	http.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		n := count(r)
		rows := make([]sheetRow, n)
		for i := range rows {
			rows[i] = sheetRow{
				Title:          fmt.Sprintf("Press release %d", i+1),
				RedirectTarget: fmt.Sprintf("https://example.com/press/%d", i+1),
				Date:           serialdate.FromTime(published(i, n)),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"data": rows}); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	})

	http.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		n := count(r)
		doc := rssDocument{Version: "2.0", Title: "Mock news"}
		for i := n - 1; i >= 0; i-- {
			doc.Items = append(doc.Items, rssItem{
				Title:   fmt.Sprintf("Story %d", i+1),
				Link:    fmt.Sprintf("https://example.com/story/%d", i+1),
				PubDate: published(i, n).Format(time.RFC1123Z),
			})
		}

		w.Header().Set("Content-Type", "application/rss+xml")
		if err := xml.NewEncoder(w).Encode(doc); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	})

	slog.Info("Mock feed server running on :8081")
	if err := http.ListenAndServe(":8081", nil); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
