package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/migalabs/gascheck/pkg/checker"
	"github.com/migalabs/gascheck/pkg/config"
	"github.com/migalabs/gascheck/pkg/spec"
	"github.com/migalabs/gascheck/pkg/utils"
)

var CheckCommand = &cli.Command{
	Name:   "check",
	Usage:  "sample recent base fees from every RPC endpoint and flag gas-view outliers",
	Action: LaunchGasCheck,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "rpc",
			Usage: "RPC URL, can be given multiple times (fallback: RPC_URLS env, comma-separated)",
		},
		&cli.IntFlag{
			Name:  "blocks",
			Usage: "how many recent blocks to consider",
		},
		&cli.IntFlag{
			Name:  "step",
			Usage: "sample every Nth block for speed",
		},
		&cli.Float64Flag{
			Name:  "tolerance-pct",
			Usage: "flag RPCs whose median base fee deviates by this percent or more from the group median",
		},
		&cli.Float64Flag{
			Name:  "timeout",
			Usage: "per-call RPC timeout in seconds",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit a JSON report instead of human-readable text",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, warn, info, error",
		},
		&cli.IntFlag{
			Name:  "workers-num",
			Usage: "example: 4",
		},
		&cli.IntFlag{
			Name:  "prometheus-port",
			Usage: "example: 9080",
		}},
}

var logCmdCheck = logrus.WithField(
	"module", "checkCommand",
)

func LaunchGasCheck(c *cli.Context) error {

	conf := config.NewCheckerConfig()
	conf.Apply(c)

	logrus.SetLevel(utils.ParseLogLevel(conf.LogLevel))

	// generate the gas checker
	gasChecker, err := checker.NewGasChecker(c.Context, *conf)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	procDoneC := make(chan struct{}, 1)
	sigtermC := make(chan os.Signal, 1)

	signal.Notify(sigtermC, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	var report *spec.Report
	go func() {
		report = gasChecker.Run()
		procDoneC <- struct{}{}
	}()

	select {
	case <-sigtermC:
		logCmdCheck.Info("Sudden shutdown detected, controlled shutdown of the cli triggered")
		gasChecker.Close()
		close(sigtermC)
		close(procDoneC)
		return cli.Exit("aborted by user", 1)

	case <-procDoneC:
		logCmdCheck.Info("Process successfully finish!")
	}
	close(sigtermC)
	close(procDoneC)

	if c.Bool("json") {
		if err := renderJSON(os.Stdout, report); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		renderText(os.Stdout, report)
	}

	if report.Outcome() == spec.OutcomeTotalFailure {
		return cli.Exit("no endpoints could be analyzed successfully", 2)
	}
	return nil
}
