// Package metrics holds the Prometheus collectors of the web application.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors; /metrics serves only this.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})

	httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yatube_http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "route"})

	cacheLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_page_cache_lookups_total",
		Help: "Page cache lookups by result.",
	}, []string{"result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled request under its route template.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}
