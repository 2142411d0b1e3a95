// Package options contains the program options.
package options

// Mode names of the simulator front end.
const (
	ModeCalculator = "calc"
	ModeFibonacci  = "fib"
	ModeRun        = "run"
)

// Parameters contains positional arguments and file path options.
type Parameters struct {
	Mode  string // calc, fib or run
	Input string // program image file for the run mode
}

// Operands contains the values for the non interactive calculator and Fibonacci modes.
// Empty values are prompted for on the terminal.
type Operands struct {
	A         string `flag:"a" usage:"first calculator operand"`
	B         string `flag:"b" usage:"second calculator operand"`
	Operation string `flag:"op" usage:"calculator operation: + or -"`
	Index     string `flag:"n" usage:"Fibonacci index"`
}

// Flags contains behavior options.
type Flags struct {
	Format  string `flag:"format" usage:"image format: raw, prg, nes (default: auto-detect)"`
	Address string `flag:"addr" usage:"load address of raw images" default:"0x0600"`
	Entry   string `flag:"pc" usage:"entry point (default: load address)"`
	Cycles  uint   `flag:"cycles" usage:"cycle budget of a run" default:"100000"`
	Dump    string `flag:"dump" usage:"dump memory after the run, start:length"`
	Strict  bool   `flag:"strict" usage:"stop on unknown opcodes"`
	Trace   bool   `flag:"trace" usage:"log every executed instruction"`
	Monitor bool   `flag:"monitor" usage:"run the program in the interactive monitor"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the simulator.
type Program struct {
	Parameters
	Operands
	Flags

	LoadAddress uint16 // parsed Address
	EntryPoint  uint16 // parsed Entry, equals LoadAddress if not set
	HasEntry    bool   // Entry was given
	DumpStart   uint16 // parsed Dump start
	DumpLength  int    // parsed Dump length, 0 disables the dump
}
