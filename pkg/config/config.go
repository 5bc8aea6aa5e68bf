package config

import (
	"time"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type CheckerConfig struct {
	LogLevel       string   `json:"log-level"`
	RPCUrls        []string `json:"rpc-urls"`
	Blocks         int      `json:"blocks"`
	Step           int      `json:"step"`
	TolerancePct   float64  `json:"tolerance-pct"`
	Timeout        float64  `json:"timeout"`
	WorkerNum      int      `json:"worker-num"`
	PrometheusPort int      `json:"prometheus-port"`
}

func NewCheckerConfig() *CheckerConfig {
	// Return default values for the checker configuration, with the
	// environment fallbacks already resolved
	return &CheckerConfig{
		LogLevel:       DefaultLogLevel,
		RPCUrls:        envRPCList(),
		Blocks:         envInt(envBlocks, DefaultBlocks),
		Step:           envInt(envStep, DefaultStep),
		TolerancePct:   envFloat(envTolerancePct, DefaultTolerancePct),
		Timeout:        envFloat(envTimeout, DefaultTimeout),
		WorkerNum:      DefaultWorkerNum,
		PrometheusPort: DefaultPrometheusPort,
	}
}

func (c *CheckerConfig) Apply(ctx *cli.Context) {
	// apply to the existing default configuration the set flags
	// log level
	if ctx.IsSet("log-level") {
		c.LogLevel = ctx.String("log-level")
	}
	// rpc endpoints
	if ctx.IsSet("rpc") {
		c.RPCUrls = ctx.StringSlice("rpc")
	}
	// sampling window
	if ctx.IsSet("blocks") {
		c.Blocks = ctx.Int("blocks")
	}
	// sampling stride
	if ctx.IsSet("step") {
		c.Step = ctx.Int("step")
	}
	// tolerance band
	if ctx.IsSet("tolerance-pct") {
		c.TolerancePct = ctx.Float64("tolerance-pct")
	}
	// per-call timeout
	if ctx.IsSet("timeout") {
		c.Timeout = ctx.Float64("timeout")
	}
	// worker num
	if ctx.IsSet("workers-num") {
		c.WorkerNum = ctx.Int("workers-num")
	}
	// prometheus port
	if ctx.IsSet("prometheus-port") {
		c.PrometheusPort = ctx.Int("prometheus-port")
	}
}

// Validate rejects configurations the core must never run with. It is
// checked before any network activity happens.
func (c *CheckerConfig) Validate() error {
	if len(c.RPCUrls) == 0 {
		return errors.Errorf("no RPC endpoints provided, use --rpc or set %s", envRPCUrls)
	}
	if c.Blocks <= 0 {
		return errors.Errorf("blocks must be > 0, got %d", c.Blocks)
	}
	if c.Step <= 0 {
		return errors.Errorf("step must be > 0, got %d", c.Step)
	}
	if c.TolerancePct < 0 {
		return errors.Errorf("tolerance-pct must be >= 0, got %f", c.TolerancePct)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be > 0, got %f", c.Timeout)
	}
	if c.WorkerNum <= 0 {
		return errors.Errorf("workers-num must be > 0, got %d", c.WorkerNum)
	}
	return nil
}

func (c *CheckerConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}
