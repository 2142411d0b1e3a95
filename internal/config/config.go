// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/cpu"
	"github.com/retroenv/sim6502/internal/options"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CPUOptions returns the processor options selected by the program options.
// Instruction tracing is only enabled together with debug logging as it logs on debug level.
func CPUOptions(opts options.Program) cpu.Options {
	return cpu.Options{
		StrictOpcodes: opts.Strict,
		Trace:         opts.Trace && opts.Debug,
	}
}
