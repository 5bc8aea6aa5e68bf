package spec

// RunParams echoes the sampling parameters the run was executed with.
type RunParams struct {
	Blocks       int     `json:"blocks"`
	Step         int     `json:"step"`
	TolerancePct float64 `json:"tolerancePct"`
	TimeoutSec   float64 `json:"timeoutSec"`
}

// ChainGroup gathers every endpoint that reported the same chain id,
// together with the group consensus (median of the per-endpoint medians).
type ChainGroup struct {
	ChainID                 uint64           `json:"chainId"`
	Network                 string           `json:"network"`
	GlobalMedianBaseFeeGwei float64          `json:"globalMedianBaseFeeGwei"`
	Endpoints               []EndpointReport `json:"endpoints"`
}

// Report is the root output of a run. It is assembled once, after all
// endpoint tasks have finished, and never mutated afterwards.
type Report struct {
	Mode           string                `json:"mode"`
	GeneratedAtUTC string                `json:"generatedAtUtc"`
	TimingSec      float64               `json:"timingSec"`
	Params         RunParams             `json:"params"`
	Groups         map[string]ChainGroup `json:"groups"`
	Failures       []EndpointFailure     `json:"failures,omitempty"`
}

// Outcome classifies the terminal state of a run.
type Outcome int

const (
	OutcomeAllSucceeded Outcome = iota
	OutcomePartialSuccess
	OutcomeTotalFailure
)

// Outcome derives the result class of the run: every endpoint analyzed,
// at least one group with some failures, or nothing analyzable at all.
func (r *Report) Outcome() Outcome {
	if len(r.Groups) == 0 {
		return OutcomeTotalFailure
	}
	if len(r.Failures) > 0 {
		return OutcomePartialSuccess
	}
	return OutcomeAllSucceeded
}
