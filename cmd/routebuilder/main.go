package main

import (
	"fmt"
	"os"

	"github.com/AbhinavAnand241201/lightning-payment-route-builder/routing"
	"github.com/btcsuite/btclog"
	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[routebuilder] %v\n", err)
	os.Exit(1)
}

// actionDecorator is used to wrap command actions so that errors surface
// through a single exit path.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if err := f(c); err != nil {
			return cli.NewExitError(
				fmt.Sprintf("[routebuilder] %v", err), 1,
			)
		}

		return nil
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "routebuilder"
	app.Usage = "compute per-hop htlc amounts and expiries for a " +
		"payment route"
	app.ArgsUsage = "output-dir input-csv payment-request current-height"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "the network the payment request is for: " +
				"mainnet, testnet, regtest or signet",
			Value: "mainnet",
		},
		cli.StringFlag{
			Name:  "debuglevel",
			Usage: "logging level: trace, debug, info, warn, " +
				"error or critical",
			Value: "info",
		},
	}
	app.Action = actionDecorator(buildRoute)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// setupLogging installs a stderr backed logger for the routing package at
// the requested level.
func setupLogging(debugLevel string) error {
	level, ok := btclog.LevelFromString(debugLevel)
	if !ok {
		return fmt.Errorf("unknown debug level: %v", debugLevel)
	}

	backend := btclog.NewBackend(os.Stderr)
	logger := backend.Logger("RTBD")
	logger.SetLevel(level)
	routing.UseLogger(logger)

	return nil
}
