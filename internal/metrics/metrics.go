// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the application's Prometheus metrics.
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   prometheus.Histogram
	storeFallbacks *prometheus.CounterVec
	viewIncrements prometheus.Counter
	articlesSaved  prometheus.Counter
	pageCacheHits  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gameguide_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gameguide_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		storeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gameguide_store_fallbacks_total",
			Help: "Operations served by the mirror after a remote store failure.",
		}, []string{"op"}),
		viewIncrements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameguide_view_increments_total",
			Help: "Article view counter increments.",
		}),
		articlesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameguide_articles_saved_total",
			Help: "Articles saved through the admin API.",
		}),
		pageCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gameguide_page_cache_hits_total",
			Help: "Public pages served from the page cache.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.storeFallbacks,
		c.viewIncrements,
		c.articlesSaved,
		c.pageCacheHits,
	)

	return c
}

// RecordHTTPRequest records one finished request.
func (c *Collector) RecordHTTPRequest(statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// ObserveStoreFallback records a mirror-served operation.
func (c *Collector) ObserveStoreFallback(op string) {
	c.storeFallbacks.WithLabelValues(op).Inc()
}

// RecordViewIncrement records one article view counter bump.
func (c *Collector) RecordViewIncrement() {
	c.viewIncrements.Inc()
}

// RecordArticleSaved records one admin save.
func (c *Collector) RecordArticleSaved() {
	c.articlesSaved.Inc()
}

// RecordPageCacheHit records a page served from cache.
func (c *Collector) RecordPageCacheHit() {
	c.pageCacheHits.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
