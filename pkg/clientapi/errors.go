package clientapi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// ConnectionError covers endpoints that could not be reached at all:
// dial failures, network errors and per-call timeouts.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error on %s: %s", e.Endpoint, e.Err.Error())
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ProtocolError covers endpoints that answered, but with malformed or
// unsupported data (a JSON-RPC level error, a missing chain id...).
// Both categories exclude the endpoint from every chain group.
type ProtocolError struct {
	Endpoint string
	Err      error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on %s: %s", e.Endpoint, e.Err.Error())
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// classifyError splits call failures into the two reporting categories.
// A JSON-RPC error means the endpoint answered, so it counts as a
// protocol issue; anything else is a transport problem.
func classifyError(endpoint string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &ProtocolError{Endpoint: endpoint, Err: err}
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return &ProtocolError{Endpoint: endpoint, Err: err}
	}
	return &ConnectionError{Endpoint: endpoint, Err: err}
}
