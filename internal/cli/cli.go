// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/sim6502/internal/options"
)

const defaultLoadAddress = "0x0600"

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {} // usage is printed by UsageError
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	opts.Mode = strings.ToLower(args[0])
	if err := assignParameters(&opts, args, flags); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: sim6502 [options] <calc|fib|run> [image file]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after mode, please pass all options before the mode", arg),
			}
		}
	}
	return nil
}

// assignParameters checks the mode and its positional arguments
func assignParameters(opts *options.Program, args []string, flags *flag.FlagSet) error {
	switch opts.Mode {
	case options.ModeCalculator, options.ModeFibonacci:
		if len(args) > 1 {
			return &UsageError{flags: flags, msg: fmt.Sprintf("mode %s does not take an image file", opts.Mode)}
		}

	case options.ModeRun:
		if len(args) != 2 {
			return &UsageError{flags: flags, msg: "mode run expects exactly one image file"}
		}
		opts.Input = args[1]

	default:
		validModes := []string{options.ModeCalculator, options.ModeFibonacci, options.ModeRun}
		return &UsageError{
			flags: flags,
			msg: fmt.Sprintf("unsupported mode: %s. Valid modes: %s",
				opts.Mode, strings.Join(validModes, ", ")),
		}
	}
	return nil
}

// normalizeOptions parses and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)
	validFormats := []string{"", "raw", "prg", "nes"}
	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("unsupported image format: %s. Valid options: %s",
			opts.Format, strings.Join(validFormats[1:], ", "))
	}

	var err error
	opts.LoadAddress, err = ParseAddress(opts.Address)
	if err != nil {
		return fmt.Errorf("parsing load address: %w", err)
	}

	opts.EntryPoint = opts.LoadAddress
	if opts.Entry != "" {
		opts.EntryPoint, err = ParseAddress(opts.Entry)
		if err != nil {
			return fmt.Errorf("parsing entry point: %w", err)
		}
		opts.HasEntry = true
	}

	if opts.Dump != "" {
		opts.DumpStart, opts.DumpLength, err = ParseRange(opts.Dump)
		if err != nil {
			return fmt.Errorf("parsing dump range: %w", err)
		}
	}

	if opts.Monitor && opts.Mode != options.ModeRun {
		return fmt.Errorf("the monitor is only supported in mode %s", options.ModeRun)
	}

	if opts.Cycles == 0 || uint64(opts.Cycles) > math.MaxUint32 {
		return fmt.Errorf("invalid cycle budget %d", opts.Cycles)
	}
	return nil
}

// ParseAddress parses a 16 bit address given as decimal, 0x or $ prefixed hex number.
func ParseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		s, base = s[2:], 16
	}

	value, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	return uint16(value), nil
}

// ParseRange parses a memory range given as start:length.
func ParseRange(s string) (uint16, int, error) {
	startValue, lengthValue, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing ':' in range '%s'", s)
	}

	start, err := ParseAddress(startValue)
	if err != nil {
		return 0, 0, err
	}

	length, err := strconv.Atoi(strings.TrimSpace(lengthValue))
	if err != nil || length <= 0 || length > 1<<16 {
		return 0, 0, fmt.Errorf("invalid range length '%s'", lengthValue)
	}
	return start, length, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.A, "a", "", "first operand of the calculator (-128-255), prompted for if not given")
	flags.StringVar(&opts.B, "b", "", "second operand of the calculator (-128-255), prompted for if not given")
	flags.StringVar(&opts.Operation, "op", "", "operation of the calculator (+ or -), prompted for if not given")
	flags.StringVar(&opts.Index, "n", "", "index of the Fibonacci number to compute, prompted for if not given")
	flags.StringVar(&opts.Format, "format", "", "image format (raw, prg, nes) - if not auto-detected from file extension")
	flags.StringVar(&opts.Address, "addr", defaultLoadAddress, "load address of raw images")
	flags.StringVar(&opts.Entry, "pc", "", "entry point of the program, defaults to the load address or the image entry point")
	flags.UintVar(&opts.Cycles, "cycles", 100000, "cycle budget of a run")
	flags.StringVar(&opts.Dump, "dump", "", "print a memory range after the run, given as start:length, for example 0x0010:16")
	flags.BoolVar(&opts.Strict, "strict", false, "stop execution at unknown opcodes instead of skipping them")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Monitor, "monitor", false, "step through the program in an interactive terminal monitor")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
