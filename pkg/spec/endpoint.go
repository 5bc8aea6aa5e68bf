package spec

import (
	"math/big"
	"time"
)

// EndpointConfig identifies one RPC endpoint to be analyzed. The timeout
// applies to every individual call issued against the endpoint.
type EndpointConfig struct {
	URL     string
	Timeout time.Duration
}

// RawSample is the base fee read from a single sampled block. A nil
// BaseFeeWei marks a gap: the block could not be fetched or the network
// does not expose the EIP-1559 field. Gaps are kept out of the statistics
// but still count towards the requested window.
type RawSample struct {
	Height     uint64
	BaseFeeWei *big.Int
}

func (s RawSample) Present() bool {
	return s.BaseFeeWei != nil
}

// EndpointSummary is the robust per-endpoint reduction of the sampled
// window. Immutable once produced. The json keys are a compatibility
// contract with downstream dashboards and must not change.
type EndpointSummary struct {
	RPCUrl            string  `json:"rpcUrl"`
	ChainID           uint64  `json:"chainId"`
	Network           string  `json:"network"`
	ClientVersion     string  `json:"clientVersion"`
	Head              uint64  `json:"head"`
	Start             uint64  `json:"start"`
	RequestedSpan     int     `json:"requestedSpan"`
	Step              int     `json:"step"`
	SampledBlocks     int     `json:"sampledBlocks"`
	BaseFeeMedianGwei float64 `json:"baseFeeMedianGwei"`
	BaseFeeMinGwei    float64 `json:"baseFeeMinGwei"`
	BaseFeeMaxGwei    float64 `json:"baseFeeMaxGwei"`
	HeadBaseFeeGwei   float64 `json:"headBaseFeeGwei"`
}

// EndpointReport is the summary enriched with the consensus verdict.
type EndpointReport struct {
	EndpointSummary
	DeviationPct float64 `json:"deviationPct"`
	IsOutlier    bool    `json:"isOutlier"`
}

// EndpointFailure records an endpoint that could not be queried at all
// (connection or protocol error before any sampling happened). Failed
// endpoints never join a chain group.
type EndpointFailure struct {
	RPCUrl string `json:"rpcUrl"`
	Error  string `json:"error"`
}
