package spec

import "fmt"

const (
	// ReportMode identifies the report layout for downstream dashboards.
	ReportMode = "multi_rpc_gas_soundness"

	// TimestampLayout is the UTC layout used in generatedAtUtc.
	TimestampLayout = "2006-01-02 15:04:05"
)

// NetworkNames maps the well-known EVM chain ids to a human name.
var NetworkNames = map[uint64]string{
	1:        "Ethereum Mainnet",
	11155111: "Sepolia Testnet",
	10:       "Optimism",
	137:      "Polygon",
	42161:    "Arbitrum One",
	8453:     "Base",
}

func NetworkName(chainID uint64) string {
	if name, ok := NetworkNames[chainID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (chainId %d)", chainID)
}
