package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the request metrics shared by every storefront endpoint
type HTTPMetrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewHTTPMetrics creates the request metrics and registers them on reg
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_requests_total",
				Help: "Total number of requests to the storefront service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_request_duration_seconds",
				Help:    "Duration of storefront requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		// Summary metric for percentile calculation (p50, p90, p95, p99)
		requestSummary: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "storefront_request_duration_summary",
				Help: "Summary of request durations with percentiles (client-side quantiles)",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.01,
					0.99: 0.001,
				},
				MaxAge: 10 * time.Minute,
			},
			[]string{"method", "endpoint"},
		),
	}

	reg.MustRegister(m.requestCounter, m.requestLatency, m.requestSummary)
	return m
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Wrap records metrics for an endpoint. endpoint is the route template, not the raw path.
func (m *HTTPMetrics) Wrap(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// BasketMetrics counts stock units moved in and out of the basket
type BasketMetrics struct {
	unitsReserved prometheus.Counter
	unitsReleased prometheus.Counter
	orphansPurged prometheus.Counter
}

// NewBasketMetrics creates the basket counters and registers them on reg
func NewBasketMetrics(reg prometheus.Registerer) *BasketMetrics {
	m := &BasketMetrics{
		unitsReserved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_basket_units_reserved_total",
			Help: "Stock units moved into the basket",
		}),
		unitsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_basket_units_released_total",
			Help: "Stock units returned from the basket",
		}),
		orphansPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_basket_orphans_purged_total",
			Help: "Basket lines removed because their product no longer exists",
		}),
	}

	reg.MustRegister(m.unitsReserved, m.unitsReleased, m.orphansPurged)
	return m
}

// Reserved records units taken from stock. Safe on a nil receiver.
func (m *BasketMetrics) Reserved(units int) {
	if m != nil {
		m.unitsReserved.Add(float64(units))
	}
}

// Released records units returned to stock. Safe on a nil receiver.
func (m *BasketMetrics) Released(units int) {
	if m != nil {
		m.unitsReleased.Add(float64(units))
	}
}

// Purged records orphaned lines removed by reconciliation. Safe on a nil receiver.
func (m *BasketMetrics) Purged(lines int64) {
	if m != nil {
		m.orphansPurged.Add(float64(lines))
	}
}
