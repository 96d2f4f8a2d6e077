/*
Command boxdump builds the box tree for an HTML document and prints it.

	boxdump [-c config.yaml] tree [--css FILE]... [--dot FILE] [--set 'SELECTOR=PROP:VALUE']... [FILE]

Without FILE, the document is read from stdin. Each --set restyles the
elements matching a CSS selector after the first pass, and the box tree is
re-built incrementally and printed again.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/npillmayer/schuko/tracing"
)

// env is the state shared by all commands.
type env struct {
	cfg *Config
	log *zap.Logger
}

type envKey struct{}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop()}
}

// initializeAppContext loads the configuration and prepares logging, after
// the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)
	var err error
	if e.cfg, err = LoadConfiguration(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("trace") {
		e.cfg.Tracing.Level = cmd.String("trace")
	}
	if e.log, err = e.cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	tracing.SetTraceSelector(newTraceSelector(e.log, e.cfg))
	e.log.Debug("Program started", zap.Strings("args", os.Args))
	return context.WithValue(ctx, envKey{}, e), nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	e.log.Debug("Program ended", zap.Strings("parsed args", cmd.Args().Slice()))
	_ = e.log.Sync()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{}),
		os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "boxdump",
		Usage:           "builds and prints the box tree of an HTML document",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "trace", Aliases: []string{"t"}, Usage: "default trace `LEVEL` (error, info, debug)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "tree",
				Usage:  "Prints the box tree of an HTML document",
				Action: runTree,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "css", Usage: "add style sheet `FILE`"},
					&cli.StringFlag{Name: "dot", Usage: "write a GraphViz diagram of the box tree to `FILE`"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "maximum number of concurrent `WORKERS`"},
					&cli.StringSliceFlag{Name: "set", Usage: "restyle elements, given as `SELECTOR=PROPERTY:VALUE`"},
				},
				ArgsUsage: "[FILE]",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				Action: outputConfiguration,
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	data := defaultConfig
	if !cmd.Bool("default") {
		var err error
		if data, err = Dump(e.cfg); err != nil {
			return fmt.Errorf("unable to get configuration: %w", err)
		}
	}
	_, err := os.Stdout.Write(data)
	return err
}
