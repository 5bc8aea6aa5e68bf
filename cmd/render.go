package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/migalabs/gascheck/pkg/spec"
)

func renderJSON(w io.Writer, report *spec.Report) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func renderText(w io.Writer, report *spec.Report) {
	fmt.Fprintf(w, "\nMulti-RPC gas soundness report (completed in %.2fs)\n", report.TimingSec)

	// fixed ascending chain-id order, map iteration is not deterministic
	chainIDs := make([]uint64, 0, len(report.Groups))
	byID := make(map[uint64]spec.ChainGroup, len(report.Groups))
	for _, group := range report.Groups {
		chainIDs = append(chainIDs, group.ChainID)
		byID[group.ChainID] = group
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for _, chainID := range chainIDs {
		group := byID[chainID]
		fmt.Fprintf(w, "\n=== %s (chainId %d) ===\n", group.Network, group.ChainID)
		fmt.Fprintf(w, "Global median base fee: %.3f Gwei\n", group.GlobalMedianBaseFeeGwei)
		for _, ep := range group.Endpoints {
			flag := "[ok]     "
			if ep.IsOutlier {
				flag = "[OUTLIER]"
			}
			fmt.Fprintf(w, "%s RPC: %s\n", flag, ep.RPCUrl)
			fmt.Fprintf(w, "   client: %s\n", ep.ClientVersion)
			fmt.Fprintf(w, "   sampledBlocks: %d (range %d..%d step=%d)\n",
				ep.SampledBlocks, ep.Start, ep.Head, ep.Step)
			fmt.Fprintf(w, "   median baseFee: %.3f Gwei (min=%.3f, max=%.3f)\n",
				ep.BaseFeeMedianGwei, ep.BaseFeeMinGwei, ep.BaseFeeMaxGwei)
			fmt.Fprintf(w, "   head baseFee: %.3f Gwei\n", ep.HeadBaseFeeGwei)
			fmt.Fprintf(w, "   deviation from group median: %.2f%%\n", ep.DeviationPct)
		}
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "\nFailed endpoints:\n")
		for _, failure := range report.Failures {
			fmt.Fprintf(w, "[failed]  RPC: %s\n   error: %s\n", failure.RPCUrl, failure.Error)
		}
	}

	fmt.Fprintln(w, "\nLegend:")
	fmt.Fprintln(w, "  [ok]      RPC within tolerance band.")
	fmt.Fprintln(w, "  [OUTLIER] RPC deviates from group median by >= tolerance (possible gas view inconsistency).")
	fmt.Fprintln(w, "\nNote: significant, systematic deviations between RPC endpoints on the same chain")
	fmt.Fprintln(w, "may indicate node misconfiguration, different EIP-1559 behavior, or data soundness issues.")
	fmt.Fprintf(w, "\nFinished at %s UTC.\n", report.GeneratedAtUTC)
}
