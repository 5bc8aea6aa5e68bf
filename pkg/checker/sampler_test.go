package checker

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/migalabs/gascheck/pkg/config"
)

func TestSampleHeights(t *testing.T) {
	tests := []struct {
		name    string
		head    uint64
		blocks  int
		step    int
		heights []uint64
		start   uint64
	}{
		{
			name:    "Defaults",
			head:    1000,
			blocks:  40,
			step:    4,
			heights: []uint64{1000, 996, 992, 988, 984, 980, 976, 972, 968, 964, 960},
			start:   960,
		},
		{
			name:    "Head near genesis",
			head:    5,
			blocks:  40,
			step:    4,
			heights: []uint64{5, 1},
			start:   0,
		},
		{
			name:    "Step larger than window",
			head:    100,
			blocks:  10,
			step:    50,
			heights: []uint64{100},
			start:   90,
		},
		{
			name:    "Stride misaligned with window edge",
			head:    103,
			blocks:  10,
			step:    4,
			heights: []uint64{103, 99, 95},
			start:   93,
		},
		{
			name:    "Step one covers every block",
			head:    10,
			blocks:  3,
			step:    1,
			heights: []uint64{10, 9, 8, 7},
			start:   7,
		},
		{
			name:    "Genesis head",
			head:    0,
			blocks:  40,
			step:    4,
			heights: []uint64{0},
			start:   0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			heights, start := sampleHeights(test.head, test.blocks, test.step)
			require.Equal(t, test.heights, heights)
			require.Equal(t, test.start, start)
		})
	}
}

func TestSampleHeightsAlwaysIncludeHead(t *testing.T) {
	for _, head := range []uint64{0, 1, 7, 40, 41, 1000, 22963451} {
		for _, step := range []int{1, 3, 4, 7, 100} {
			heights, _ := sampleHeights(head, 40, step)
			require.NotEmpty(t, heights)
			require.Equal(t, head, heights[0], "head %d step %d", head, step)
		}
	}
}

func TestSampleBaseFeesKeepsGaps(t *testing.T) {
	cli := &fakeEndpoint{
		head: 100,
		baseFees: map[uint64]*big.Int{
			100: gwei(10),
			96:  gwei(12),
			// 92 missing on purpose: pre-EIP-1559 style answer
		},
		feeErrs: map[uint64]error{
			88: errFetch,
		},
	}
	s := &GasChecker{cfg: config.CheckerConfig{Blocks: 12, Step: 4}}

	samples, start := s.sampleBaseFees(cli, 100)
	require.Equal(t, uint64(88), start)
	require.Len(t, samples, 4)

	require.True(t, samples[0].Present())
	require.True(t, samples[1].Present())
	require.False(t, samples[2].Present(), "missing field must yield a gap")
	require.False(t, samples[3].Present(), "failed fetch must yield a gap")
}
