package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsUpdateInterval = 15 * time.Second
)

// PrometheusMetrics is the central exporting service: it keeps the list
// of metrics modules and serves them over an http /metrics endpoint.
type PrometheusMetrics struct {
	ctx            context.Context
	ExposedIP      string
	ExposedPort    int
	MetricsModules []*MetricsModule
}

func NewPrometheusMetrics(ctx context.Context, ip string, port int) *PrometheusMetrics {
	return &PrometheusMetrics{
		ctx:            ctx,
		ExposedIP:      ip,
		ExposedPort:    port,
		MetricsModules: make([]*MetricsModule, 0),
	}
}

func (s *PrometheusMetrics) AddMeticsModule(mod *MetricsModule) {
	if mod == nil {
		// modules report their own registration errors, skip silently
		return
	}
	s.MetricsModules = append(s.MetricsModules, mod)
}

// Start registers all the modules and spawns the http exporter and the
// background update routine. Non-blocking.
func (s *PrometheusMetrics) Start() {
	log.Infof("initializing prometheus metrics at %s:%d", s.ExposedIP, s.ExposedPort)

	for _, mod := range s.MetricsModules {
		if err := mod.Init(); err != nil {
			log.Errorf("unable to init metrics module %s: %s", mod.Name(), err.Error())
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.ExposedIP, s.ExposedPort),
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("prometheus metrics server failed: %s", err.Error())
		}
	}()

	go func() {
		ticker := time.NewTicker(metricsUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, mod := range s.MetricsModules {
					summary := mod.UpdateSummary()
					log.Tracef("metrics module %s: %v", mod.Name(), summary)
				}
			case <-s.ctx.Done():
				_ = srv.Close()
				return
			}
		}
	}()
}
