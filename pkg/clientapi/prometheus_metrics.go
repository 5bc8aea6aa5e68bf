package clientapi

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/migalabs/gascheck/pkg/metrics"
	"github.com/migalabs/gascheck/pkg/utils"
)

const (
	clientAPIMetricsName    = "clientapi"
	clientAPIMetricsDetails = "metrics about rpc client interactions"
)

// Request metrics are shared between all the API clients of a run: one
// client exists per endpoint, but the exporter observes the whole run.
var (
	registerRequestMetricsOnce sync.Once
	requestMethods             = []string{methodChainID, methodClientVersion, methodBlockNumber, methodGetBlock}

	sharedRequestMetrics = newRequestMetrics()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: clientAPIMetricsName,
			Name:      "rpc_requests_total",
			Help:      "Total number of JSON-RPC requests issued, by method.",
		},
		[]string{"method"},
	)

	rpcRequestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: clientAPIMetricsName,
			Name:      "rpc_request_failures_total",
			Help:      "Total number of JSON-RPC requests that ended in error, by method.",
		},
		[]string{"method"},
	)

	rpcRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: clientAPIMetricsName,
			Name:      "rpc_request_duration_seconds",
			Help:      "Duration of the JSON-RPC requests, by method.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method"},
	)
)

type requestMetrics struct {
	mu       sync.Mutex
	failures map[string]int64
}

func newRequestMetrics() *requestMetrics {
	return &requestMetrics{
		failures: make(map[string]int64),
	}
}

func (m *requestMetrics) record(method string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	rpcRequests.WithLabelValues(method).Inc()
	rpcRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())

	if err == nil {
		return
	}
	rpcRequestFailures.WithLabelValues(method).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method]++
}

func (m *requestMetrics) snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64, len(requestMethods))
	for _, method := range requestMethods {
		out[method] = m.failures[method]
	}
	return out
}

func GetPrometheusMetrics() *metrics.MetricsModule {
	mod := metrics.NewMetricsModule(
		clientAPIMetricsName,
		clientAPIMetricsDetails,
	)

	initFn := func() error {
		registerRequestMetricsOnce.Do(func() {
			prometheus.MustRegister(rpcRequests)
			prometheus.MustRegister(rpcRequestFailures)
			prometheus.MustRegister(rpcRequestDuration)
			for _, method := range requestMethods {
				rpcRequests.WithLabelValues(method).Add(0)
				rpcRequestFailures.WithLabelValues(method).Add(0)
				_, _ = rpcRequestDuration.GetMetricWithLabelValues(method)
			}
		})
		return nil
	}

	updateFn := func() (interface{}, error) {
		return sharedRequestMetrics.snapshot(), nil
	}

	indvMetrics, err := metrics.NewIndvMetrics(
		"rpc_request_failures",
		initFn,
		updateFn,
	)
	if err != nil {
		log.Error(errors.Wrap(err, "unable to init rpc_request_failures metrics"))
		return nil
	}

	if err := mod.AddIndvMetric(indvMetrics); err != nil {
		log.Error(errors.Wrap(err, "unable to register rpc request metrics module"))
		return nil
	}

	return mod
}
