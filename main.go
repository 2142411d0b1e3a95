// Package main implements the main entry point for a 6502 instruction set simulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	simapp "github.com/retroenv/sim6502/internal/app"
	"github.com/retroenv/sim6502/internal/cli"
	"github.com/retroenv/sim6502/internal/config"
	"github.com/retroenv/sim6502/internal/fileprocessor"
	"github.com/retroenv/sim6502/internal/frontend"
	"github.com/retroenv/sim6502/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	// log output would overwrite the terminal monitor
	quiet := opts.Quiet || opts.Monitor
	logger := config.CreateLogger(opts.Debug && !opts.Monitor, quiet)
	if opts.Mode == options.ModeRun {
		fileprocessor.PrintBanner(logger, opts, version, commit, date)
	}

	if err := execute(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Simulation failed", log.Err(err))
		os.Exit(1)
	}
}

func execute(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if opts.Mode == options.ModeRun {
		return fileprocessor.ProcessFile(ctx, logger, opts, os.Stdout)
	}

	m := simapp.NewMachine(logger, opts)
	fe := frontend.New(logger, m, os.Stdin, os.Stdout, uint32(opts.Cycles))

	var err error
	if opts.Mode == options.ModeCalculator {
		err = fe.Calculator(ctx, opts.Operands)
	} else {
		err = fe.Fibonacci(ctx, opts.Operands)
	}
	if err != nil || opts.DumpLength == 0 {
		return err
	}
	return fileprocessor.WriteState(os.Stdout, opts, m)
}
