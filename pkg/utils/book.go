package utils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/migalabs/gascheck/pkg/metrics"
)

var (
	emptyKey = ""
)

// RoutineBook keeps track of the routines running at any given moment,
// limiting how many may be active at once. Acquire blocks until a page
// frees up, so a burst of endpoint tasks never exceeds the book size.
type RoutineBook struct {
	sync.Mutex
	pages         map[string]string
	freeSpaceChan chan struct{}
	size          int64
	name          string
	activeGauge   prometheus.Gauge
}

func NewRoutineBook(size int, name string) *RoutineBook {

	r := &RoutineBook{
		pages:         make(map[string]string, size), // contains a list of keys identifying routines
		freeSpaceChan: make(chan struct{}, size),     // indicates the free position in the array
		size:          int64(size),
		name:          name,
		activeGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: strings.ToLower(CliName),
			Subsystem: ModName,
			Name:      fmt.Sprintf("%s_book_active_pages", name),
			Help:      fmt.Sprintf("The number of active pages in the %s routine book", name),
		}),
	}
	r.Init()
	return r

}

func (r *RoutineBook) Init() {
	for i := 0; i < int(r.size); i++ {
		r.freeSpaceChan <- struct{}{}
	}
}

func (r *RoutineBook) Acquire(key string) {
	<-r.freeSpaceChan
	r.Set(key, "active")
}

func (r *RoutineBook) FreePage(key string) {

	r.Lock()
	defer r.Unlock()
	_, ok := r.pages[key]
	// If the key exists
	if ok {
		delete(r.pages, key)
		r.freeSpaceChan <- struct{}{}
	}

}

func (r *RoutineBook) Set(key string, value string) {
	r.Lock()
	defer r.Unlock()
	r.pages[key] = value // book page

}

func (r *RoutineBook) ActivePages() int {
	r.Lock()
	defer r.Unlock()
	result := 0
	for _, item := range r.pages {
		if item != emptyKey {
			result += 1
		}
	}

	return result
}

func (r *RoutineBook) NumFreePages() int {

	r.Lock()
	defer r.Unlock()
	return int(r.size) - len(r.pages)
}

func (r *RoutineBook) GetPrometheusMetrics() *metrics.MetricsModule {
	metricsMod := metrics.NewMetricsModule(
		r.name+"_book",
		"metrics about the routine book usage",
	)

	initFn := func() error {
		if err := prometheus.Register(r.activeGauge); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if errors.As(err, &are) {
				// another book with the same name already registered it
				r.activeGauge = are.ExistingCollector.(prometheus.Gauge)
				return nil
			}
			return err
		}
		return nil
	}

	updateFn := func() (interface{}, error) {
		active := r.ActivePages()
		r.activeGauge.Set(float64(active))
		return active, nil
	}

	indvMetr, err := metrics.NewIndvMetrics(
		r.name+"_active_pages",
		initFn,
		updateFn,
	)
	if err != nil {
		log.Error(errors.Wrap(err, "unable to init active_pages metric"))
		return nil
	}
	if err := metricsMod.AddIndvMetric(indvMetr); err != nil {
		log.Error(errors.Wrap(err, "unable to register active_pages metric"))
		return nil
	}

	return metricsMod
}
