// Package metrics provides Prometheus instrumentation for the storefront.
//
// Each Metrics value owns its registry, so several applications (or tests)
// can live in one process. Wire it up once when building the router:
//
//	r.Use(m.Middleware())
//	r.Get("/metrics", m.Handler())
//
// Storefront counters are fed from the service event bus via Observe.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shashiranjanraj/storefront/pkg/event"
)

const namespace = "storefront"

// Metrics holds the registry and every collector registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge
	ResponseSize    *prometheus.HistogramVec

	// Storage
	StoreOpDuration    *prometheus.HistogramVec
	StoreWriteFailures *prometheus.CounterVec

	// Shop
	CartMutations      *prometheus.CounterVec
	OrdersPlaced       prometheus.Counter
	OrderAmount        prometheus.Histogram
	CheckoutRejections *prometheus.CounterVec
	CatalogChanges     *prometheus.CounterVec
}

// New creates a Metrics with Go runtime and process collectors plus the
// storefront collectors registered.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),

		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),

		ResponseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		}, []string{"method", "route"}),

		StoreOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of key-value store operations in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .5, 1},
		}, []string{"op", "result"}), // op: "get" | "put" | "delete"

		StoreWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "write_failures_total",
			Help:      "Record writes that failed and were kept in memory only.",
		}, []string{"key"}),

		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Cart changes by operation.",
		}, []string{"op"}),

		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders appended to the order log.",
		}),

		OrderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "amount",
			Help:      "Order totals in the store currency.",
			Buckets:   []float64{5, 10, 20, 50, 100, 200, 500},
		}),

		CheckoutRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "checkout_rejections_total",
			Help:      "Checkouts refused, by reason.",
		}, []string{"reason"}),

		CatalogChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "changes_total",
			Help:      "Catalog edits by kind.",
		}, []string{"kind"}), // "add" | "reset"
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.ResponseSize,
		m.StoreOpDuration,
		m.StoreWriteFailures,
		m.CartMutations,
		m.OrdersPlaced,
		m.OrderAmount,
		m.CheckoutRejections,
		m.CatalogChanges,
	)
	return m
}

// Observe subscribes the shop counters to bus.
func (m *Metrics) Observe(bus *event.Bus) {
	bus.Listen(event.CartUpdated, func(p interface{}) {
		if c, ok := p.(event.CartChange); ok {
			m.CartMutations.WithLabelValues(c.Op).Inc()
		}
	})
	bus.Listen(event.OrderPlaced, func(p interface{}) {
		if o, ok := p.(event.OrderSummary); ok {
			m.OrdersPlaced.Inc()
			m.OrderAmount.Observe(o.Total)
		}
	})
	bus.Listen(event.CheckoutRejected, func(p interface{}) {
		if r, ok := p.(event.Rejection); ok {
			m.CheckoutRejections.WithLabelValues(r.Reason).Inc()
		}
	})
	bus.Listen(event.StoreWriteFailed, func(p interface{}) {
		if f, ok := p.(event.WriteFailure); ok {
			m.StoreWriteFailures.WithLabelValues(f.Key).Inc()
		}
	})
	bus.Listen(event.CatalogItemAdded, func(interface{}) { m.CatalogChanges.WithLabelValues("add").Inc() })
	bus.Listen(event.CatalogReset, func(interface{}) { m.CatalogChanges.WithLabelValues("reset").Inc() })
}

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records duration, count, in-flight and response size for every
// request. Requests are labelled by chi route pattern, not raw path, so ids
// in the URL do not explode cardinality.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.RequestInFlight.Inc()
			defer m.RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			status := strconv.Itoa(rr.status)

			m.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			m.RequestTotal.WithLabelValues(r.Method, route, status).Inc()
			m.ResponseSize.WithLabelValues(r.Method, route).Observe(float64(rr.size))
		})
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveStoreOp records one store call:
//
//	defer m.ObserveStoreOp("get", time.Now(), &err)
func (m *Metrics) ObserveStoreOp(op string, start time.Time, err *error) {
	result := "ok"
	if err != nil && *err != nil {
		result = "error"
	}
	m.StoreOpDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
