package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/RMahshie/rfdesk/pkg/rf"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of the HTTP API and the
// calculators behind it. A nil *Collector records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	CalculatorErrors  *prometheus.CounterVec
	TouchstoneSamples *prometheus.CounterVec
	TouchstoneSkipped *prometheus.CounterVec
	DatasetsProcessed *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfdesk_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, route pattern and status code.",
	}, []string{"method", "route", "code"}), "rfdesk_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rfdesk_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"}), "rfdesk_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	calcErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfdesk_calculator_domain_errors_total",
		Help: "Calculator inputs rejected as outside their domain, labeled by calculator and parameter.",
	}, []string{"calculator", "param"}), "rfdesk_calculator_domain_errors_total")
	if err != nil {
		return nil, err
	}

	samples, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfdesk_touchstone_samples_total",
		Help: "Touchstone data rows parsed, labeled by source and port count.",
	}, []string{"source", "ports"}), "rfdesk_touchstone_samples_total")
	if err != nil {
		return nil, err
	}

	skipped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfdesk_touchstone_skipped_rows_total",
		Help: "Malformed touchstone data rows skipped, labeled by source.",
	}, []string{"source"}), "rfdesk_touchstone_skipped_rows_total")
	if err != nil {
		return nil, err
	}

	datasets, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfdesk_datasets_processed_total",
		Help: "Datasets that finished processing, labeled by final status.",
	}, []string{"status"}), "rfdesk_datasets_processed_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		CalculatorErrors:  calcErrors,
		TouchstoneSamples: samples,
		TouchstoneSkipped: skipped,
		DatasetsProcessed: datasets,
	}, nil
}

// Middleware records request counts and durations keyed by the chi route
// pattern so path parameters do not explode label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.HTTPDurations.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// CalculatorError counts a rejected calculator input. Errors that are not
// domain errors are ignored.
func (c *Collector) CalculatorError(calculator string, err error) {
	if c == nil {
		return
	}
	var de *rf.DomainError
	if !errors.As(err, &de) {
		return
	}
	c.CalculatorErrors.WithLabelValues(calculator, de.Param).Inc()
}

// TouchstoneParsed counts the rows of a parsed document.
func (c *Collector) TouchstoneParsed(source string, doc *touchstone.Document) {
	if c == nil || doc == nil {
		return
	}
	c.TouchstoneSamples.WithLabelValues(source, strconv.Itoa(doc.Ports)).Add(float64(len(doc.Samples)))
	c.TouchstoneSkipped.WithLabelValues(source).Add(float64(doc.Skipped))
}

// DatasetProcessed counts a dataset reaching a final status.
func (c *Collector) DatasetProcessed(status string) {
	if c == nil {
		return
	}
	c.DatasetsProcessed.WithLabelValues(status).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
