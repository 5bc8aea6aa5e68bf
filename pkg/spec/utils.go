package spec

import (
	"math"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/params"
)

// Median returns the standard median of the given values: the middle
// element for odd counts, the mean of the two middle elements for even
// counts. An empty input yields 0. The input slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// WeiToGwei converts a wei amount into gwei as a float64. Realistic base
// fees sit well below 2^53 wei, so the conversion stays exact within the
// IEEE double mantissa.
func WeiToGwei(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	gwei, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(params.GWei),
	).Float64()
	return gwei
}

// PctDiff returns the signed percent difference of a against baseline b,
// defined as 0 when the baseline is 0.
func PctDiff(a float64, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
