package checker

import (
	"github.com/migalabs/gascheck/pkg/spec"
)

// sampleHeights selects the block heights to inspect: the head and every
// step-th block below it, down to startHeight = max(0, head-blocks). The
// head itself is always part of the set regardless of stride alignment.
func sampleHeights(head uint64, blocks int, step int) ([]uint64, uint64) {
	start := uint64(0)
	if head > uint64(blocks) {
		start = head - uint64(blocks)
	}

	heights := make([]uint64, 0, blocks/step+1)
	h := head
	for {
		heights = append(heights, h)
		if h < start+uint64(step) { // next stride would leave the window
			break
		}
		h -= uint64(step)
	}
	return heights, start
}

// sampleBaseFees reads the base fee of every selected height. Failed
// fetches and blocks without the EIP-1559 field become gap samples: they
// stay in the slice so the sampled range is comparable across endpoints,
// but carry no value.
func (s *GasChecker) sampleBaseFees(cli EndpointAPI, head uint64) ([]spec.RawSample, uint64) {
	heights, start := sampleHeights(head, s.cfg.Blocks, s.cfg.Step)

	log.Debugf("sampling base fees from blocks [%d, %d] every %d block(s)", start, head, s.cfg.Step)

	samples := make([]spec.RawSample, 0, len(heights))
	for _, height := range heights {
		baseFee, err := cli.GetBlockBaseFee(height)
		if err != nil {
			log.Warnf("failed to fetch block %d: %s", height, err)
			samples = append(samples, spec.RawSample{Height: height})
			continue
		}
		samples = append(samples, spec.RawSample{Height: height, BaseFeeWei: baseFee})
	}
	return samples, start
}
