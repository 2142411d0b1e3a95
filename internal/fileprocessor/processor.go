// Package fileprocessor handles image loading and execution operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/app"
	"github.com/retroenv/sim6502/internal/detector"
	"github.com/retroenv/sim6502/internal/loader"
	"github.com/retroenv/sim6502/internal/machine"
	"github.com/retroenv/sim6502/internal/monitor"
	"github.com/retroenv/sim6502/internal/options"
)

// runMonitor shows the terminal monitor, tests replace it as it requires a terminal.
var runMonitor = func(ctx context.Context, mon *monitor.Monitor) error {
	return mon.Run(ctx)
}

// ProcessFile handles the complete workflow of running a program image file
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	format := detector.New(logger).Detect(opts)

	img, err := loader.New(logger).Load(opts, format)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	app.PrintInfo(logger, opts, img, format)

	m := app.NewMachine(logger, opts)
	img.Load(m)

	if opts.Monitor {
		mon := monitor.New(logger, m, uint32(opts.Cycles), img.Entry&0xFF00)
		if err := runMonitor(ctx, mon); err != nil {
			return fmt.Errorf("running monitor: %w", err)
		}
		return WriteState(out, opts, m)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running image: %w", err)
	}

	result, err := m.Run(uint32(opts.Cycles))
	if err != nil {
		return err
	}

	if !opts.Quiet {
		logger.Info("Execution finished",
			log.Int("cycles", result.Cycles),
			log.Int("instructions", result.Instructions),
			log.String("stop", stopReason(result.Halted)))
	}

	return WriteState(out, opts, m)
}

// WriteState prints the registers and the requested memory range.
func WriteState(out io.Writer, opts options.Program, m *machine.Machine) error {
	if err := monitor.WriteRegisters(out, m.Snapshot()); err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}

	if opts.DumpLength == 0 {
		return nil
	}
	data := m.ReadBytes(opts.DumpStart, opts.DumpLength)
	if err := monitor.WriteMemory(out, opts.DumpStart, data); err != nil {
		return fmt.Errorf("writing memory dump: %w", err)
	}
	return nil
}

func stopReason(halted bool) string {
	if halted {
		return "brk"
	}
	return "cycle budget"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("sim6502", log.String("version", buildinfo.Version(version, commit, date)))
}
