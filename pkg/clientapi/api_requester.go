package clientapi

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"
)

var (
	moduleName = "api-cli"
	log        = logrus.WithField(
		"module", moduleName)
)

// APIClient wraps the raw JSON-RPC connection to one execution endpoint.
// It is stateless beyond the connection itself: every call is safe to
// repeat and runs under its own timeout, so a slow first request never
// eats the budget of the following ones.
type APIClient struct {
	ctx      context.Context
	endpoint string
	timeout  time.Duration

	Api    *ethclient.Client
	rpcCli *rpc.Client

	reqMetrics *requestMetrics
}

func NewAPIClient(ctx context.Context, endpoint string, timeout time.Duration) (*APIClient, error) {
	log.Debugf("generating rpc client at %s", endpoint)

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rpcCli, err := rpc.DialContext(dialCtx, endpoint)
	if err != nil {
		return &APIClient{}, &ConnectionError{Endpoint: endpoint, Err: err}
	}

	return &APIClient{
		ctx:        ctx,
		endpoint:   endpoint,
		timeout:    timeout,
		Api:        ethclient.NewClient(rpcCli),
		rpcCli:     rpcCli,
		reqMetrics: sharedRequestMetrics,
	}, nil
}

func (s *APIClient) Endpoint() string {
	return s.endpoint
}

// callCtx derives the per-call timeout context. The timeout applies to
// each request individually, not to the endpoint as a whole.
func (s *APIClient) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.timeout)
}

func (s *APIClient) Close() {
	s.rpcCli.Close()
}
