package spec_test

import (
	"math/big"
	"testing"

	"github.com/migalabs/gascheck/pkg/spec"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		median float64
	}{
		{
			name:   "Empty",
			values: []float64{},
			median: 0,
		},
		{
			name:   "Single",
			values: []float64{42},
			median: 42,
		},
		{
			name:   "Odd count",
			values: []float64{100, 100, 200},
			median: 100,
		},
		{
			name:   "Even count",
			values: []float64{100, 140},
			median: 120,
		},
		{
			name:   "Unsorted input",
			values: []float64{200, 100, 100},
			median: 100,
		},
		{
			name:   "Even count unsorted",
			values: []float64{9, 1, 3, 7},
			median: 5,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			median := spec.Median(test.values)
			if median != test.median {
				t.Errorf("Median() returned %f, expected %f", median, test.median)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	spec.Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Median() mutated its input: %v", values)
	}
}

func TestWeiToGwei(t *testing.T) {
	tests := []struct {
		name string
		wei  *big.Int
		gwei float64
	}{
		{
			name: "Nil",
			wei:  nil,
			gwei: 0,
		},
		{
			name: "One gwei",
			wei:  big.NewInt(1_000_000_000),
			gwei: 1,
		},
		{
			name: "Hundred gwei",
			wei:  big.NewInt(100_000_000_000),
			gwei: 100,
		},
		{
			name: "Sub gwei",
			wei:  big.NewInt(500_000_000),
			gwei: 0.5,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gwei := spec.WeiToGwei(test.wei)
			if gwei != test.gwei {
				t.Errorf("WeiToGwei() returned %f, expected %f", gwei, test.gwei)
			}
		})
	}
}

func TestPctDiff(t *testing.T) {
	tests := []struct {
		name string
		a    float64
		b    float64
		pct  float64
	}{
		{
			name: "Zero baseline",
			a:    100,
			b:    0,
			pct:  0,
		},
		{
			name: "Above baseline",
			a:    150,
			b:    100,
			pct:  50,
		},
		{
			name: "Below baseline",
			a:    50,
			b:    100,
			pct:  -50,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pct := spec.PctDiff(test.a, test.b)
			if pct != test.pct {
				t.Errorf("PctDiff() returned %f, expected %f", pct, test.pct)
			}
		})
	}
}

func TestNetworkName(t *testing.T) {
	if name := spec.NetworkName(1); name != "Ethereum Mainnet" {
		t.Errorf("NetworkName(1) returned %s", name)
	}
	if name := spec.NetworkName(999999); name != "Unknown (chainId 999999)" {
		t.Errorf("NetworkName(999999) returned %s", name)
	}
}
