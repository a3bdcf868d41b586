package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/kgviz/pkg/errors"
)

// Metrics implements ConvertHooks and HTTPHooks on a private Prometheus
// registry.
type Metrics struct {
	registry *prometheus.Registry

	convertTotal    *prometheus.CounterVec
	convertSeconds  *prometheus.HistogramVec
	decodeTotal     *prometheus.CounterVec
	graphElements   *prometheus.HistogramVec
	missingNodes    prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestSeconds  *prometheus.HistogramVec
	requestsPending prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		convertTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kgviz_conversions_total",
			Help: "Total number of conversions by result code",
		}, []string{"code"}),
		convertSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kgviz_conversion_seconds",
			Help:    "Conversion duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"success"}),
		decodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kgviz_decodes_total",
			Help: "Documents decoded by text encoding",
		}, []string{"encoding"}),
		graphElements: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kgviz_graph_elements",
			Help:    "Nodes and links per converted graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
		missingNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kgviz_missing_nodes_total",
			Help: "Node ids referenced by links but absent from the node set",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kgviz_http_requests_total",
			Help: "HTTP responses by route and status",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kgviz_http_request_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kgviz_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
	m.registry.MustRegister(
		m.convertTotal, m.convertSeconds, m.decodeTotal, m.graphElements,
		m.missingNodes, m.requestsTotal, m.requestSeconds, m.requestsPending,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnDecode(_ context.Context, _, encoding string) {
	m.decodeTotal.WithLabelValues(encoding).Inc()
}

func (m *Metrics) OnConvertStart(context.Context, string) {}

func (m *Metrics) OnConvertComplete(_ context.Context, _ string, stats ConvertStats, duration time.Duration, err error) {
	code := "OK"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	m.convertTotal.WithLabelValues(code).Inc()
	m.convertSeconds.WithLabelValues(strconv.FormatBool(err == nil)).Observe(duration.Seconds())
	if err == nil {
		m.graphElements.WithLabelValues("nodes").Observe(float64(stats.Nodes))
		m.graphElements.WithLabelValues("links").Observe(float64(stats.Links))
	}
}

func (m *Metrics) OnIntegrityFailure(_ context.Context, _ string, missing int) {
	m.missingNodes.Add(float64(missing))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.requestsPending.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.requestsPending.Dec()
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.requestSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
