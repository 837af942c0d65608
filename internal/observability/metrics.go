package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	announcementsRequests *prometheus.CounterVec
	announcementsLatency  prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bienestar_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bienestar_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bienestar_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		announcementsRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bienestar_announcements_requests_total",
			Help: "Active announcement listing requests by cache outcome.",
		}, []string{"outcome"})

		announcementsLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bienestar_announcements_latency_seconds",
			Help:    "Latency distribution for the active announcement listing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, announcementsRequests, announcementsLatency)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// AnnouncementsRequests exposes the cache-outcome counter for the active
// announcement listing.
func AnnouncementsRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return announcementsRequests
}

// AnnouncementsLatency exposes the latency histogram for the active
// announcement listing.
func AnnouncementsLatency() prometheus.Histogram {
	RegisterMetrics()
	return announcementsLatency
}
