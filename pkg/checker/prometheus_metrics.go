package checker

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/migalabs/gascheck/pkg/metrics"
	"github.com/migalabs/gascheck/pkg/spec"
	"github.com/migalabs/gascheck/pkg/utils"
)

var (
	modName    = "checker"
	modDetails = "general metrics about the gas soundness checker"

	registerCheckerMetricsOnce sync.Once

	EndpointsAnalyzed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "endpoints_analyzed",
		Help:      "The number of endpoints successfully summarized in the last run",
	})
	EndpointsFailed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "endpoints_failed",
		Help:      "The number of endpoints that could not be queried in the last run",
	})
	ChainGroups = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "chain_groups",
		Help:      "The number of chain-id groups assembled in the last run",
	})
	OutliersDetected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "outliers_detected",
		Help:      "The number of endpoints flagged outside the tolerance band in the last run",
	})
)

// runStats carries the aggregation results over to the metrics update
// loop, which runs on its own ticker.
type runStats struct {
	m        sync.Mutex
	analyzed int
	failed   int
	groups   int
	outliers int
}

func newRunStats() *runStats {
	return &runStats{}
}

func (r *runStats) update(report *spec.Report) {
	outliers := 0
	analyzed := 0
	for _, group := range report.Groups {
		analyzed += len(group.Endpoints)
		for _, ep := range group.Endpoints {
			if ep.IsOutlier {
				outliers++
			}
		}
	}

	r.m.Lock()
	defer r.m.Unlock()
	r.analyzed = analyzed
	r.failed = len(report.Failures)
	r.groups = len(report.Groups)
	r.outliers = outliers
}

func (r *runStats) snapshot() (int, int, int, int) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.analyzed, r.failed, r.groups, r.outliers
}

func (c *GasChecker) GetPrometheusMetrics() *metrics.MetricsModule {
	metricsMod := metrics.NewMetricsModule(
		modName,
		modDetails,
	)
	// compose all the metrics

	if err := metricsMod.AddIndvMetric(c.getEndpointCounts()); err != nil {
		log.Error(errors.Wrap(err, "unable to register endpoint_counts metric"))
	}
	if err := metricsMod.AddIndvMetric(c.getConsensusCounts()); err != nil {
		log.Error(errors.Wrap(err, "unable to register consensus_counts metric"))
	}

	return metricsMod
}

func (c *GasChecker) getEndpointCounts() *metrics.IndvMetrics {

	initFn := func() error {
		registerCheckerMetricsOnce.Do(func() {
			prometheus.MustRegister(EndpointsAnalyzed)
			prometheus.MustRegister(EndpointsFailed)
			prometheus.MustRegister(ChainGroups)
			prometheus.MustRegister(OutliersDetected)
		})
		return nil
	}

	updateFn := func() (interface{}, error) {
		analyzed, failed, _, _ := c.stats.snapshot()
		EndpointsAnalyzed.Set(float64(analyzed))
		EndpointsFailed.Set(float64(failed))
		return map[string]int{"analyzed": analyzed, "failed": failed}, nil
	}

	indvMetr, err := metrics.NewIndvMetrics(
		"endpoint_counts",
		initFn,
		updateFn,
	)
	if err != nil {
		log.Error(errors.Wrap(err, "unable to init endpoint_counts"))
		return nil
	}

	return indvMetr
}

func (c *GasChecker) getConsensusCounts() *metrics.IndvMetrics {

	initFn := func() error {
		// gauges registered by endpoint_counts
		return nil
	}

	updateFn := func() (interface{}, error) {
		_, _, groups, outliers := c.stats.snapshot()
		ChainGroups.Set(float64(groups))
		OutliersDetected.Set(float64(outliers))
		return map[string]int{"groups": groups, "outliers": outliers}, nil
	}

	indvMetr, err := metrics.NewIndvMetrics(
		"consensus_counts",
		initFn,
		updateFn,
	)
	if err != nil {
		log.Error(errors.Wrap(err, "unable to init consensus_counts"))
		return nil
	}

	return indvMetr
}
