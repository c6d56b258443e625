package mapbench

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics publishes the results of a sweep as prometheus metrics.
type Metrics struct {
	throughput *prometheus.GaugeVec
	latency    *prometheus.GaugeVec
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mapbench",
			Name:      "throughput_ops_per_second",
			Help:      "Throughput of the last case of a backend and thread count.",
		}, []string{"backend", "threads"}),
		latency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mapbench",
			Name:      "latency_seconds",
			Help:      "Mean operation latency of the last case of a backend and thread count.",
		}, []string{"backend", "threads"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapbench",
			Name:      "operations_total",
			Help:      "Operations performed in measured phases.",
		}, []string{"backend"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapbench",
			Name:      "case_failures_total",
			Help:      "Cases which produced no measurement.",
		}, []string{"backend", "reason"}),
	}
	reg.MustRegister(m.throughput, m.latency, m.operations, m.failures)
	return m
}

func (self *Metrics) Observe(r *Record) {
	if self == nil {
		return
	}
	threads := strconv.Itoa(r.Threads)
	self.throughput.WithLabelValues(r.Name, threads).Set(r.Throughput)
	self.latency.WithLabelValues(r.Name, threads).Set(r.Latency.Seconds())
	self.operations.WithLabelValues(r.Name).Add(float64(r.TotalOps))
}

func (self *Metrics) Failure(backend string, err error) {
	if self == nil {
		return
	}
	self.failures.WithLabelValues(backend, failureReason(err)).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrBackendConstruction):
		return "construction"
	case errors.Is(err, ErrWorkerFailed):
		return "worker"
	case errors.Is(err, ErrHandlesOutstanding):
		return "handles"
	default:
		return "other"
	}
}

// ServeMetrics serves the metrics of gatherer on addr until the returned
// server is shut down.
func ServeMetrics(addr string, gatherer prometheus.Gatherer, logger hclog.Logger) *http.Server {
	logger = loggerOrNull(logger)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return server
}
