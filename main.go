// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/goschtalt/goschtalt"
	"github.com/schmidtw/lis2dh-monitor/httpserver"
	"github.com/schmidtw/lis2dh-monitor/ratemeter"
	"github.com/schmidtw/lis2dh-monitor/report"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
)

const (
	applicationName = "lis2dh-monitor"
	metricsNS       = "lis2dh"
)

// CLI is the structure that is used to capture the command line arguments.
type CLI struct {
	Dev   bool     `optional:"" short:"d" help:"Run in development mode (simulated sensor, console logging)."`
	Show  bool     `optional:"" short:"s" help:"Show the configuration and exit."`
	Mode  string   `optional:"" short:"m" enum:",trigger,poll" default:"" help:"Override the capture mode: trigger or poll."`
	Files []string `optional:"" short:"f" help:"Specific configuration files or directories."`
}

type cliArgs []string

func provideCLI(args cliArgs) (*CLI, error) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(applicationName),
		kong.Description("Prints the latest LIS2DH sensor sample every period."),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}

	if _, err = parser.Parse(args); err != nil {
		parser.FatalIfErrorf(err)
	}

	return &cli, nil
}

func newApp(args []string) (*fx.App, error) {
	var (
		gscfg *goschtalt.Config
		cli   *CLI
	)

	app := fx.New(
		fx.Supply(cliArgs(args)),
		fx.Populate(&gscfg),
		fx.Populate(&cli),

		sallust.WithLogger(),
		fx.Provide(
			provideCLI,
			provideConfig,
			goschtalt.UnmarshalFn[sallust.Config]("logging"),
			goschtalt.UnmarshalFn[map[string]DeviceConfig]("devices"),
			goschtalt.UnmarshalFn[report.Config]("report"),
			goschtalt.UnmarshalFn[ratemeter.Config]("rate_meter"),
			goschtalt.UnmarshalFn[httpserver.Config]("http", goschtalt.Optional()),
			provideCaptureConfig,
			provideRegistry,
			provideMetrics,
			provideSource,
			provideReport,
			provideHandler,
		),

		fx.Invoke(
			func(*report.Loop) {},
			httpserver.New,
		),

		sallust.SyncOnShutdown(),
	)

	if cli != nil && cli.Show && gscfg != nil {
		// Show the configuration and exit.
		out, err := gscfg.Marshal(goschtalt.FormatAs("yml"), goschtalt.IncludeOrigins())
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(os.Stdout, "## Configuration "+gscfg.Explain())
		fmt.Fprintln(os.Stdout, "## ---------------------------------------------------------------")
		fmt.Fprintln(os.Stdout, string(out))
		return nil, nil
	}

	if err := app.Err(); err != nil {
		return nil, err
	}

	return app, nil
}

func main() {
	app, err := newApp(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if app != nil {
		// Run exits with a non-zero code when a start hook fails.
		app.Run()
	}
}
