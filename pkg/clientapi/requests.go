package clientapi

import (
	"math/big"
	"time"

	"github.com/pkg/errors"
)

const (
	methodChainID       = "eth_chainId"
	methodClientVersion = "web3_clientVersion"
	methodBlockNumber   = "eth_blockNumber"
	methodGetBlock      = "eth_getBlockByNumber"
)

// GetChainID requests the chain id the endpoint claims to serve. The
// grouping key of the whole run is derived from this answer, never from
// configuration.
func (s *APIClient) GetChainID() (uint64, error) {
	ctx, cancel := s.callCtx()
	defer cancel()

	start := time.Now()
	chainID, err := s.Api.ChainID(ctx)
	s.reqMetrics.record(methodChainID, time.Since(start), err)
	if err != nil {
		return 0, classifyError(s.endpoint, err)
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return 0, &ProtocolError{
			Endpoint: s.endpoint,
			Err:      errors.Errorf("endpoint returned no usable chain id"),
		}
	}
	return chainID.Uint64(), nil
}

// GetClientVersion requests the node software banner. Callers treat a
// failure here as non-fatal, the field is metadata only.
func (s *APIClient) GetClientVersion() (string, error) {
	ctx, cancel := s.callCtx()
	defer cancel()

	var version string
	start := time.Now()
	err := s.rpcCli.CallContext(ctx, &version, methodClientVersion)
	s.reqMetrics.record(methodClientVersion, time.Since(start), err)
	if err != nil {
		return "", classifyError(s.endpoint, err)
	}
	if version == "" {
		return "", &ProtocolError{
			Endpoint: s.endpoint,
			Err:      errors.Errorf("endpoint returned an empty client version"),
		}
	}
	return version, nil
}

// GetHeadHeight requests the chain tip the endpoint currently reports.
func (s *APIClient) GetHeadHeight() (uint64, error) {
	ctx, cancel := s.callCtx()
	defer cancel()

	start := time.Now()
	head, err := s.Api.BlockNumber(ctx)
	s.reqMetrics.record(methodBlockNumber, time.Since(start), err)
	if err != nil {
		return 0, classifyError(s.endpoint, err)
	}
	return head, nil
}

// GetBlockBaseFee reads the EIP-1559 base fee of the block at the given
// height. A reachable block without the field yields (nil, nil): that is
// a sample gap, not an error.
func (s *APIClient) GetBlockBaseFee(height uint64) (*big.Int, error) {
	ctx, cancel := s.callCtx()
	defer cancel()

	start := time.Now()
	header, err := s.Api.HeaderByNumber(ctx, new(big.Int).SetUint64(height))
	s.reqMetrics.record(methodGetBlock, time.Since(start), err)
	if err != nil {
		return nil, classifyError(s.endpoint, err)
	}
	if header == nil {
		return nil, &ProtocolError{
			Endpoint: s.endpoint,
			Err:      errors.Errorf("endpoint returned no header for block %d", height),
		}
	}
	return header.BaseFee, nil
}
