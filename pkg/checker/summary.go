package checker

import (
	"github.com/migalabs/gascheck/pkg/spec"
)

// summarizeEndpoint reduces the raw samples of one endpoint into its
// robust summary. Gap samples are excluded from the statistics, never
// treated as zero; if every sample gapped the summary is valid but
// zero-valued, so the endpoint still joins its chain group.
func summarizeEndpoint(
	url string,
	chainID uint64,
	clientVersion string,
	head uint64,
	start uint64,
	blocks int,
	step int,
	samples []spec.RawSample) spec.EndpointSummary {

	feesGwei := make([]float64, 0, len(samples))
	headFeeGwei := float64(0)

	for _, sample := range samples {
		if !sample.Present() {
			continue
		}
		fee := spec.WeiToGwei(sample.BaseFeeWei)
		feesGwei = append(feesGwei, fee)
		if sample.Height == head {
			headFeeGwei = fee
		}
	}

	summary := spec.EndpointSummary{
		RPCUrl:        url,
		ChainID:       chainID,
		Network:       spec.NetworkName(chainID),
		ClientVersion: clientVersion,
		Head:          head,
		Start:         start,
		RequestedSpan: blocks,
		Step:          step,
		SampledBlocks: len(feesGwei),
	}

	if len(feesGwei) == 0 {
		return summary
	}

	minFee := feesGwei[0]
	maxFee := feesGwei[0]
	for _, fee := range feesGwei[1:] {
		if fee < minFee {
			minFee = fee
		}
		if fee > maxFee {
			maxFee = fee
		}
	}

	summary.BaseFeeMedianGwei = spec.RoundTo(spec.Median(feesGwei), 3)
	summary.BaseFeeMinGwei = spec.RoundTo(minFee, 3)
	summary.BaseFeeMaxGwei = spec.RoundTo(maxFee, 3)
	summary.HeadBaseFeeGwei = spec.RoundTo(headFeeGwei, 3)
	return summary
}
