package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RunsInQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsscrape_runs_in_queue",
			Help: "Current number of scrape runs waiting for a worker.",
		},
	)

	// PagesFetchedTotal counts page loads. kind: listing, article; outcome:
	// success, empty, skipped, navigation, timeout, permission, cancelled, error.
	PagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsscrape_pages_fetched_total",
			Help: "Total number of pages loaded by the scraper.",
		},
		[]string{"kind", "outcome"},
	)

	PageLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsscrape_page_load_duration_seconds",
			Help:    "Duration of page navigation.",
			Buckets: []float64{1, 2, 5, 10, 15, 30, 45},
		},
		[]string{"domain"},
	)

	ArticlesExtractedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsscrape_articles_extracted_total",
			Help: "Body extractions by strategy and outcome.",
		},
		[]string{"strategy", "outcome"}, // outcome: extracted, placeholder
	)

	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsscrape_article_retries_total",
			Help: "Total number of article fetch retries.",
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsscrape_article_cache_lookups_total",
			Help: "Article cache lookups by result.",
		},
		[]string{"result"}, // hit, miss, error
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsscrape_runs_total",
			Help: "Finished scrape runs by final status.",
		},
		[]string{"status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsscrape_run_duration_seconds",
			Help:    "Wall time of complete scrape runs.",
			Buckets: []float64{30, 60, 120, 300, 600, 1200, 2400},
		},
	)
)
