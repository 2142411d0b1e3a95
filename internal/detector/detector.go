// Package detector handles program image format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/options"
)

// Format of a program image file.
type Format string

// Supported image formats.
const (
	Raw Format = "raw" // plain bytes loaded at the configured address
	PRG Format = "prg" // 2 byte little endian load address followed by the data
	NES Format = "nes" // iNES cartridge, PRG-ROM mapped at $8000
)

func (f Format) String() string {
	return string(f)
}

// FormatFromString returns the format for the given name.
func FormatFromString(name string) (Format, bool) {
	switch f := Format(strings.ToLower(name)); f {
	case Raw, PRG, NES:
		return f, true
	default:
		return "", false
	}
}

// Detector handles image format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the image format from options or file auto-detection.
// It first checks if a format is explicitly specified in options, otherwise
// attempts to detect the format from the input filename extension.
func (d *Detector) Detect(opts options.Program) Format {
	format, _ := FormatFromString(opts.Format)
	if format == "" {
		format = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected image format",
			log.Stringer("format", format),
			log.String("file", opts.Input))
	}
	return format
}

// detectFromFile determines the image format based on file extension.
func (d *Detector) detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".prg":
		return PRG
	case ".nes":
		return NES
	default:
		// .bin and unknown extensions are plain memory images
		return Raw
	}
}
