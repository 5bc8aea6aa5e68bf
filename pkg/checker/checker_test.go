package checker

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/migalabs/gascheck/pkg/clientapi"
	"github.com/migalabs/gascheck/pkg/config"
	"github.com/migalabs/gascheck/pkg/spec"
)

var errFetch = errors.New("block fetch failed")

// fakeEndpoint implements EndpointAPI over canned answers.
type fakeEndpoint struct {
	chainID    uint64
	chainIDErr error
	version    string
	versionErr error
	head       uint64
	headErr    error
	baseFees   map[uint64]*big.Int
	feeErrs    map[uint64]error
}

func (f *fakeEndpoint) GetChainID() (uint64, error) {
	if f.chainIDErr != nil {
		return 0, f.chainIDErr
	}
	return f.chainID, nil
}

func (f *fakeEndpoint) GetClientVersion() (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}
	return f.version, nil
}

func (f *fakeEndpoint) GetHeadHeight() (uint64, error) {
	if f.headErr != nil {
		return 0, f.headErr
	}
	return f.head, nil
}

func (f *fakeEndpoint) GetBlockBaseFee(height uint64) (*big.Int, error) {
	if err, ok := f.feeErrs[height]; ok {
		return nil, err
	}
	if fee, ok := f.baseFees[height]; ok {
		return fee, nil
	}
	return nil, nil // block exists but carries no baseFeePerGas
}

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
}

// flatFeeEndpoint answers the same base fee for every block in range.
func flatFeeEndpoint(chainID uint64, head uint64, feeGwei int64) *fakeEndpoint {
	fees := make(map[uint64]*big.Int)
	for h := uint64(0); h <= head; h++ {
		fees[h] = gwei(feeGwei)
	}
	return &fakeEndpoint{
		chainID:  chainID,
		version:  "fake/v0.1.0",
		head:     head,
		baseFees: fees,
	}
}

func testConfig(urls []string, port int) config.CheckerConfig {
	return config.CheckerConfig{
		LogLevel:       "error",
		RPCUrls:        urls,
		Blocks:         40,
		Step:           4,
		TolerancePct:   30,
		Timeout:        5,
		WorkerNum:      4,
		PrometheusPort: port,
	}
}

func newTestChecker(t *testing.T, cfg config.CheckerConfig, endpoints map[string]*fakeEndpoint) *GasChecker {
	t.Helper()

	gasChecker, err := NewGasChecker(context.Background(), cfg)
	require.NoError(t, err)

	gasChecker.newClient = func(ctx context.Context, endpoint string, timeout time.Duration) (EndpointAPI, error) {
		ep, ok := endpoints[endpoint]
		if !ok {
			return nil, &clientapi.ConnectionError{Endpoint: endpoint, Err: errors.New("unreachable")}
		}
		return ep, nil
	}
	return gasChecker
}

func TestNewGasCheckerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(nil, 19080) // empty endpoint list
	_, err := NewGasChecker(context.Background(), cfg)
	require.Error(t, err)
}

func TestRunAllSucceeded(t *testing.T) {
	urls := []string{"http://node-a", "http://node-b"}
	endpoints := map[string]*fakeEndpoint{
		"http://node-a": flatFeeEndpoint(1, 1000, 100),
		"http://node-b": flatFeeEndpoint(1, 1002, 100),
	}

	gasChecker := newTestChecker(t, testConfig(urls, 19081), endpoints)
	report := gasChecker.Run()

	require.Equal(t, spec.OutcomeAllSucceeded, report.Outcome())
	require.Len(t, report.Groups, 1)
	require.Empty(t, report.Failures)

	group, ok := report.Groups["1"]
	require.True(t, ok)
	require.Equal(t, "Ethereum Mainnet", group.Network)
	require.Equal(t, float64(100), group.GlobalMedianBaseFeeGwei)
	require.Len(t, group.Endpoints, 2)

	// endpoints are reported in configuration order
	require.Equal(t, "http://node-a", group.Endpoints[0].RPCUrl)
	require.Equal(t, "http://node-b", group.Endpoints[1].RPCUrl)
	for _, ep := range group.Endpoints {
		require.False(t, ep.IsOutlier)
		require.Equal(t, float64(0), ep.DeviationPct)
	}
}

func TestRunPartialSuccess(t *testing.T) {
	// Scenario D: one endpoint fails the chain-id lookup among three
	urls := []string{"http://node-a", "http://node-b", "http://node-down"}
	endpoints := map[string]*fakeEndpoint{
		"http://node-a": flatFeeEndpoint(1, 500, 80),
		"http://node-b": flatFeeEndpoint(1, 500, 80),
		"http://node-down": {
			chainIDErr: &clientapi.ConnectionError{Endpoint: "http://node-down", Err: errors.New("timeout")},
		},
	}

	gasChecker := newTestChecker(t, testConfig(urls, 19082), endpoints)
	report := gasChecker.Run()

	require.Equal(t, spec.OutcomePartialSuccess, report.Outcome())
	require.Len(t, report.Groups, 1)
	require.Len(t, report.Groups["1"].Endpoints, 2)

	require.Len(t, report.Failures, 1)
	require.Equal(t, "http://node-down", report.Failures[0].RPCUrl)
	require.Contains(t, report.Failures[0].Error, "timeout")
}

func TestRunTotalFailure(t *testing.T) {
	urls := []string{"http://node-x", "http://node-y"}
	// no endpoints behind the urls at all
	gasChecker := newTestChecker(t, testConfig(urls, 19083), map[string]*fakeEndpoint{})
	report := gasChecker.Run()

	require.Equal(t, spec.OutcomeTotalFailure, report.Outcome())
	require.Empty(t, report.Groups)
	require.Len(t, report.Failures, 2)
}

func TestRunEmptySampledEndpointJoinsItsGroup(t *testing.T) {
	// Scenario E: every sampled block lacks baseFeePerGas
	urls := []string{"http://node-a", "http://node-legacy"}
	endpoints := map[string]*fakeEndpoint{
		"http://node-a": flatFeeEndpoint(137, 900, 100),
		"http://node-legacy": {
			chainID:  137,
			version:  "legacy/v0.0.1",
			head:     900,
			baseFees: map[uint64]*big.Int{}, // no EIP-1559 data anywhere
		},
	}

	gasChecker := newTestChecker(t, testConfig(urls, 19084), endpoints)
	report := gasChecker.Run()

	group, ok := report.Groups["137"]
	require.True(t, ok)
	require.Len(t, group.Endpoints, 2)

	legacy := group.Endpoints[1]
	require.Equal(t, "http://node-legacy", legacy.RPCUrl)
	require.Equal(t, 0, legacy.SampledBlocks)
	require.Equal(t, float64(0), legacy.BaseFeeMedianGwei)
	require.Equal(t, float64(0), legacy.HeadBaseFeeGwei)

	// the zero median contributes to the group consensus
	require.Equal(t, float64(50), group.GlobalMedianBaseFeeGwei)
}

func TestRunClientVersionFailureIsNonFatal(t *testing.T) {
	urls := []string{"http://node-a"}
	ep := flatFeeEndpoint(1, 300, 50)
	ep.versionErr = errors.New("method web3_clientVersion does not exist")
	endpoints := map[string]*fakeEndpoint{"http://node-a": ep}

	gasChecker := newTestChecker(t, testConfig(urls, 19085), endpoints)
	report := gasChecker.Run()

	require.Equal(t, spec.OutcomeAllSucceeded, report.Outcome())
	require.Equal(t, "unknown", report.Groups["1"].Endpoints[0].ClientVersion)
}

func TestRunIsIdempotentForFixedChainState(t *testing.T) {
	urls := []string{"http://node-a", "http://node-b"}
	build := func(port int) *spec.Report {
		endpoints := map[string]*fakeEndpoint{
			"http://node-a": flatFeeEndpoint(1, 1000, 100),
			"http://node-b": flatFeeEndpoint(1, 1000, 140),
		}
		return newTestChecker(t, testConfig(urls, port), endpoints).Run()
	}

	first := build(19086)
	second := build(19087)

	// timing and timestamps naturally differ, the statistical content may not
	require.Equal(t, first.Groups, second.Groups)
	require.Equal(t, first.Failures, second.Failures)
	require.Equal(t, first.Params, second.Params)
}

func TestReportParamsEchoConfiguration(t *testing.T) {
	urls := []string{"http://node-a"}
	cfg := testConfig(urls, 19088)
	cfg.Blocks = 16
	cfg.Step = 2
	cfg.TolerancePct = 12.5
	cfg.Timeout = 7

	endpoints := map[string]*fakeEndpoint{"http://node-a": flatFeeEndpoint(1, 64, 10)}
	report := newTestChecker(t, cfg, endpoints).Run()

	require.Equal(t, spec.ReportMode, report.Mode)
	require.Equal(t, 16, report.Params.Blocks)
	require.Equal(t, 2, report.Params.Step)
	require.Equal(t, 12.5, report.Params.TolerancePct)
	require.Equal(t, float64(7), report.Params.TimeoutSec)
	require.NotEmpty(t, report.GeneratedAtUTC)
}
