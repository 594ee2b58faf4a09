package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_loads_total",
			Help: "The total number of feed loads by outcome",
		},
		[]string{"source", "status"},
	)

	FeedLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_load_duration_seconds",
			Help:    "Duration of feed source loads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	FeedItemsLoaded = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_items_loaded",
			Help:    "Number of items returned by a feed load",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"block"},
	)

	PageChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_changes_total",
			Help: "The total number of accepted page changes",
		},
		[]string{"block", "origin"},
	)

	PageOutOfRange = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_out_of_range_total",
			Help: "Page requests ignored because they fell outside the page range",
		},
		[]string{"block"},
	)

	RepaintsSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "page_repaints_superseded_total",
			Help: "Deferred page repaints cancelled by a newer page request",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_change_events_published_total",
			Help: "Total number of page-change events published",
		},
		[]string{"block"},
	)

	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_change_publish_errors_total",
			Help: "Total number of page-change events that failed to publish",
		},
		[]string{"block"},
	)

	BlockRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "block_requests_total",
			Help: "Block page requests by response format and outcome",
		},
		[]string{"block", "format", "status"},
	)
)
