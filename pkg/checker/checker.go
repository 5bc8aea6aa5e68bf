package checker

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/migalabs/gascheck/pkg/clientapi"
	"github.com/migalabs/gascheck/pkg/config"
	"github.com/migalabs/gascheck/pkg/metrics"
	"github.com/migalabs/gascheck/pkg/spec"
	"github.com/migalabs/gascheck/pkg/utils"
)

var (
	log = logrus.WithField(
		"module", "checker",
	)

	endpointKeyTag = "endpoint="
)

// EndpointAPI is the capability set the checker needs from an endpoint,
// whatever wire dialect serves it.
type EndpointAPI interface {
	GetChainID() (uint64, error)
	GetClientVersion() (string, error)
	GetHeadHeight() (uint64, error)
	GetBlockBaseFee(height uint64) (*big.Int, error)
}

var _ EndpointAPI = (*clientapi.APIClient)(nil)

// endpointResult is the isolated slot each endpoint routine writes into.
// Exactly one of the two fields is set once the routine finishes.
type endpointResult struct {
	summary *spec.EndpointSummary
	failure *spec.EndpointFailure
}

type GasChecker struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg config.CheckerConfig

	// newClient generates the per-endpoint API client, swapped in tests
	newClient func(ctx context.Context, endpoint string, timeout time.Duration) (EndpointAPI, error)

	// Control Variables
	queryBook     *utils.RoutineBook // bounds the endpoint routines running at once
	wgQuery       *sync.WaitGroup    // wait group for the endpoint query routines
	results       []endpointResult   // one slot per configured endpoint, no shared state
	routineClosed chan struct{}      // signal that everything was closed successfully

	stats *runStats

	initTime    time.Time
	PromMetrics *metrics.PrometheusMetrics
}

func NewGasChecker(
	pCtx context.Context,
	iConfig config.CheckerConfig) (*GasChecker, error) {

	// generate new ctx from parent
	ctx, cancel := context.WithCancel(pCtx)

	// reject broken configurations before any network activity
	if err := iConfig.Validate(); err != nil {
		cancel()
		return &GasChecker{}, errors.Wrap(err, "invalid configuration.")
	}

	// generate the central exporting service
	promethMetrics := metrics.NewPrometheusMetrics(ctx, "0.0.0.0", iConfig.PrometheusPort)

	checker := &GasChecker{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           iConfig,
		queryBook:     utils.NewRoutineBook(iConfig.WorkerNum, "query"),
		wgQuery:       &sync.WaitGroup{},
		results:       make([]endpointResult, len(iConfig.RPCUrls)),
		routineClosed: make(chan struct{}, 1),
		stats:         newRunStats(),
		PromMetrics:   promethMetrics,
	}
	checker.newClient = func(ctx context.Context, endpoint string, timeout time.Duration) (EndpointAPI, error) {
		return clientapi.NewAPIClient(ctx, endpoint, timeout)
	}

	promethMetrics.AddMeticsModule(checker.GetPrometheusMetrics())
	promethMetrics.AddMeticsModule(checker.queryBook.GetPrometheusMetrics())
	promethMetrics.AddMeticsModule(clientapi.GetPrometheusMetrics())

	return checker, nil
}

// Run queries every configured endpoint in parallel and assembles the
// final report in a single deterministic pass once all routines joined.
func (s *GasChecker) Run() *spec.Report {
	defer s.cancel()
	s.initTime = time.Now()

	log.Infof("starting gas soundness check over %d endpoints: blocks=%d step=%d tolerance=%.1f%%",
		len(s.cfg.RPCUrls), s.cfg.Blocks, s.cfg.Step, s.cfg.TolerancePct)

	s.PromMetrics.Start()

	timeout := s.cfg.TimeoutDuration()
	for idx, url := range s.cfg.RPCUrls {
		s.wgQuery.Add(1)
		go s.analyzeEndpoint(idx, spec.EndpointConfig{URL: url, Timeout: timeout})
	}
	s.wgQuery.Wait()

	report := s.aggregate()

	log.Infof("gas soundness check finished in %.2fs: %d groups, %d failed endpoints",
		report.TimingSec, len(report.Groups), len(report.Failures))

	s.routineClosed <- struct{}{}
	return report
}

func (s *GasChecker) Close() {
	log.Info("sudden shutdown detected, closing GasChecker")
	s.cancel()
	<-s.routineClosed // wait for the run to settle before returning
}

// analyzeEndpoint performs the whole per-endpoint sequence: identify the
// endpoint, sample the base-fee window and reduce it to a summary. Any
// failure on a required call turns into a failure entry; siblings are
// never affected.
func (s *GasChecker) analyzeEndpoint(idx int, ep spec.EndpointConfig) {
	defer s.wgQuery.Done()

	routineKey := fmt.Sprintf("%s%s", endpointKeyTag, ep.URL)
	s.queryBook.Acquire(routineKey)
	defer s.queryBook.FreePage(routineKey)

	t0 := time.Now()

	cli, err := s.newClient(s.ctx, ep.URL, ep.Timeout)
	if err != nil {
		s.recordFailure(idx, ep.URL, err)
		return
	}
	if closer, ok := cli.(interface{ Close() }); ok {
		defer closer.Close()
	}

	chainID, err := cli.GetChainID()
	if err != nil {
		s.recordFailure(idx, ep.URL, err)
		return
	}
	head, err := cli.GetHeadHeight()
	if err != nil {
		s.recordFailure(idx, ep.URL, err)
		return
	}
	version, err := cli.GetClientVersion()
	if err != nil {
		// metadata only, the endpoint is still statistically usable
		log.Warnf("could not read client version from %s: %s", ep.URL, err)
		version = "unknown"
	}

	log.Infof("connected to %s (chainId %d, tip %d) via %s in %.0f ms",
		spec.NetworkName(chainID), chainID, head, version,
		float64(time.Since(t0))/float64(time.Millisecond))

	samples, start := s.sampleBaseFees(cli, head)
	summary := summarizeEndpoint(ep.URL, chainID, version, head, start, s.cfg.Blocks, s.cfg.Step, samples)
	if summary.SampledBlocks == 0 {
		log.Warnf("no baseFeePerGas data found on %s in the requested range, "+
			"this network or RPC may not support EIP-1559", ep.URL)
	}

	s.results[idx] = endpointResult{summary: &summary}
}

func (s *GasChecker) recordFailure(idx int, url string, err error) {
	log.Warnf("failed to analyze RPC %s: %s", url, err)
	s.results[idx] = endpointResult{
		failure: &spec.EndpointFailure{
			RPCUrl: url,
			Error:  err.Error(),
		},
	}
}

// aggregate runs strictly after every endpoint routine finished, so it
// reads the result slots without any locking.
func (s *GasChecker) aggregate() *spec.Report {
	summaries := make([]spec.EndpointSummary, 0, len(s.results))
	failures := make([]spec.EndpointFailure, 0)

	for _, res := range s.results {
		switch {
		case res.summary != nil:
			summaries = append(summaries, *res.summary)
		case res.failure != nil:
			failures = append(failures, *res.failure)
		}
	}

	groups := buildChainGroups(summaries, s.cfg.TolerancePct)

	report := &spec.Report{
		Mode:           spec.ReportMode,
		GeneratedAtUTC: time.Now().UTC().Format(spec.TimestampLayout),
		TimingSec:      spec.RoundTo(time.Since(s.initTime).Seconds(), 2),
		Params: spec.RunParams{
			Blocks:       s.cfg.Blocks,
			Step:         s.cfg.Step,
			TolerancePct: s.cfg.TolerancePct,
			TimeoutSec:   s.cfg.Timeout,
		},
		Groups:   groups,
		Failures: failures,
	}

	s.stats.update(report)
	return report
}
