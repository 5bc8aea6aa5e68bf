package metrics

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField(
		"module", "metrics",
	)
)

// MetricsModule groups the individual metrics of one part of the tool
// (checker, clientapi, routine books...) under a common name.
type MetricsModule struct {
	name        string
	details     string
	indvMetrics []*IndvMetrics
}

func NewMetricsModule(name string, details string) *MetricsModule {
	return &MetricsModule{
		name:        name,
		details:     details,
		indvMetrics: make([]*IndvMetrics, 0),
	}
}

func (m *MetricsModule) AddIndvMetric(indv *IndvMetrics) error {
	if indv == nil {
		return errors.Errorf("unable to add nil metric to module %s", m.name)
	}
	m.indvMetrics = append(m.indvMetrics, indv)
	return nil
}

func (m *MetricsModule) Name() string {
	return m.name
}

func (m *MetricsModule) Details() string {
	return m.details
}

// Init registers every individual metric of the module into the
// prometheus default registry.
func (m *MetricsModule) Init() error {
	for _, indv := range m.indvMetrics {
		if err := indv.Init(); err != nil {
			return errors.Wrapf(err, "unable to init metric %s", indv.Name())
		}
	}
	return nil
}

// UpdateSummary refreshes every individual metric, returning the last
// read values for debugging purposes.
func (m *MetricsModule) UpdateSummary() map[string]interface{} {
	summary := make(map[string]interface{}, len(m.indvMetrics))
	for _, indv := range m.indvMetrics {
		value, err := indv.Update()
		if err != nil {
			log.Errorf("unable to update metric %s: %s", indv.Name(), err.Error())
			continue
		}
		summary[indv.Name()] = value
	}
	return summary
}

// IndvMetrics is a single exposed metric, with a hook to register it and
// a hook to read/refresh its value.
type IndvMetrics struct {
	name     string
	initFn   func() error
	updateFn func() (interface{}, error)
}

func NewIndvMetrics(
	name string,
	initFn func() error,
	updateFn func() (interface{}, error)) (*IndvMetrics, error) {

	if initFn == nil || updateFn == nil {
		return nil, errors.Errorf("unable to generate metric %s: empty init or update functions", name)
	}
	return &IndvMetrics{
		name:     name,
		initFn:   initFn,
		updateFn: updateFn,
	}, nil
}

func (m *IndvMetrics) Name() string {
	return m.name
}

func (m *IndvMetrics) Init() error {
	return m.initFn()
}

func (m *IndvMetrics) Update() (interface{}, error) {
	return m.updateFn()
}
