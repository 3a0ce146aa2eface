package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the client runtime: API round trips, the SOS poll
// loop, and geocoder cache behavior.
type Metrics struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec

	pollTicksTotal    prometheus.Counter
	pollFailuresTotal prometheus.Counter
	alertActive       prometheus.Gauge

	geocodeLookupsTotal  prometheus.Counter
	geocodeCacheHitTotal prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		apiRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"operation", "status"},
		),
		apiRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "Backend API request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		pollTicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sos_poll_ticks_total",
			Help: "Total number of SOS poll ticks",
		}),
		pollFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sos_poll_failures_total",
			Help: "Total number of failed SOS poll ticks",
		}),
		alertActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sos_alert_active",
			Help: "1 while an alert occupies the active slot",
		}),
		geocodeLookupsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Total number of reverse geocoding lookups",
		}),
		geocodeCacheHitTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geocode_cache_hits_total",
			Help: "Reverse geocoding lookups served from cache",
		}),
	}
}

func (m *Metrics) ObserveAPIRequest(operation, status string, d time.Duration) {
	m.apiRequestsTotal.WithLabelValues(operation, status).Inc()
	m.apiRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) PollTick()    { m.pollTicksTotal.Inc() }
func (m *Metrics) PollFailure() { m.pollFailuresTotal.Inc() }

func (m *Metrics) SetAlertActive(active bool) {
	if active {
		m.alertActive.Set(1)
	} else {
		m.alertActive.Set(0)
	}
}

func (m *Metrics) GeocodeLookup()   { m.geocodeLookupsTotal.Inc() }
func (m *Metrics) GeocodeCacheHit() { m.geocodeCacheHitTotal.Inc() }

// Serve exposes /metrics on addr. Intended for local diagnosis; not
// started unless METRICS_ADDR is set.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
