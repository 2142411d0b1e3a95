// Package app provides the main application helpers for the simulator.
package app

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/config"
	"github.com/retroenv/sim6502/internal/cpu"
	"github.com/retroenv/sim6502/internal/detector"
	"github.com/retroenv/sim6502/internal/machine"
	"github.com/retroenv/sim6502/internal/options"
	"github.com/retroenv/sim6502/internal/program"
)

// NewMachine returns a machine configured by the program options.
func NewMachine(logger *log.Logger, opts options.Program) *machine.Machine {
	return machine.New(logger, cpu.WithOptions(config.CPUOptions(opts)))
}

// PrintInfo prints the information about the input file and the loaded image.
func PrintInfo(logger *log.Logger, opts options.Program, img program.Image, format detector.Format) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded program image",
		log.String("file", opts.Input),
		log.Stringer("format", format),
		log.Int("size", img.Size()),
		log.Hex("entry", img.Entry),
	)
	for _, segment := range img.Segments {
		logger.Debug("Image segment",
			log.Hex("address", segment.Address),
			log.Int("size", len(segment.Data)))
	}
}
