package metrics

import "github.com/prometheus/client_golang/prometheus"

// Geocoding Prometheus metrics.
var (
	GeocodingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "geocoding_requests_total",
			Help:      "Total number of geocoding provider requests",
		},
		[]string{"endpoint", "status"},
	)

	GeocodingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "geocoding_request_duration_seconds",
			Help:      "Geocoding provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	GeocodingResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "geocoding_resolutions_total",
			Help:      "Location resolutions by source tier",
		},
		[]string{"source"}, // "gazetteer" / "provider" / "fallback"
	)
)

var geoMetricsRegistered bool

// RegisterGeocodingMetrics registers Prometheus geocoding metrics. Must be called once from main.
func RegisterGeocodingMetrics() {
	if geoMetricsRegistered {
		return
	}
	prometheus.MustRegister(GeocodingRequestsTotal)
	prometheus.MustRegister(GeocodingRequestDuration)
	prometheus.MustRegister(GeocodingResolutionsTotal)
	geoMetricsRegistered = true
}
