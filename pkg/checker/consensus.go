package checker

import (
	"math"
	"strconv"

	"github.com/migalabs/gascheck/pkg/spec"
)

// buildChainGroups partitions the endpoint summaries by the chain id
// each endpoint reported for itself, computes every group's consensus
// (the median of the per-endpoint medians, zero-valued members included)
// and classifies each member against the tolerance band. Members keep
// the order their summaries were produced in.
func buildChainGroups(summaries []spec.EndpointSummary, tolerancePct float64) map[string]spec.ChainGroup {
	order := make([]uint64, 0)
	members := make(map[uint64][]spec.EndpointSummary)

	for _, summary := range summaries {
		if summary.ChainID == 0 {
			// no resolved chain id, the endpoint belongs to no group
			continue
		}
		if _, ok := members[summary.ChainID]; !ok {
			order = append(order, summary.ChainID)
		}
		members[summary.ChainID] = append(members[summary.ChainID], summary)
	}

	groups := make(map[string]spec.ChainGroup, len(order))
	for _, chainID := range order {
		groupMembers := members[chainID]

		medians := make([]float64, 0, len(groupMembers))
		for _, member := range groupMembers {
			medians = append(medians, member.BaseFeeMedianGwei)
		}
		groupMedian := spec.RoundTo(spec.Median(medians), 3)

		endpoints := make([]spec.EndpointReport, 0, len(groupMembers))
		for _, member := range groupMembers {
			// a zero baseline gives no meaningful deviation: every
			// member stays at 0% and nothing is flagged
			deviation := float64(0)
			outlier := false
			if groupMedian != 0 {
				deviation = spec.RoundTo(math.Abs(spec.PctDiff(member.BaseFeeMedianGwei, groupMedian)), 2)
				outlier = deviation >= tolerancePct
			}
			endpoints = append(endpoints, spec.EndpointReport{
				EndpointSummary: member,
				DeviationPct:    deviation,
				IsOutlier:       outlier,
			})
		}

		groups[strconv.FormatUint(chainID, 10)] = spec.ChainGroup{
			ChainID:                 chainID,
			Network:                 spec.NetworkName(chainID),
			GlobalMedianBaseFeeGwei: groupMedian,
			Endpoints:               endpoints,
		}
	}
	return groups
}
