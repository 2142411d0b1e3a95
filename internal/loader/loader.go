// Package loader handles program image loading operations.
package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/detector"
	"github.com/retroenv/sim6502/internal/memory"
	"github.com/retroenv/sim6502/internal/options"
	"github.com/retroenv/sim6502/internal/program"
)

// Errors returned for images that can not be mapped into the address space.
var (
	ErrImageTooLarge     = errors.New("image does not fit into memory")
	ErrMissingHeader     = errors.New("missing load address header")
	ErrUnsupportedMapper = errors.New("unsupported cartridge mapper")
)

const (
	prgHeaderSize = 2

	nesPRGAddress     = 0x8000
	nesPRGBankSize    = 0x4000
	nesResetVector    = 0xFFFC
	nesMaxPRGSize     = 0x8000
	nesMapperNROM     = 0
	nesVectorFromBank = nesResetVector - nesPRGAddress - nesPRGBankSize // offset inside the upper bank
)

// Loader handles loading program image files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new image loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load loads and parses an image file based on the format and options.
func (l *Loader) Load(opts options.Program, format detector.Format) (program.Image, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return program.Image{}, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	img, err := l.LoadFromBytes(data, format, opts)
	if err != nil {
		return program.Image{}, fmt.Errorf("loading %s image %s: %w", format, opts.Input, err)
	}
	return img, nil
}

// LoadFromBytes parses image data of the given format.
// The entry point from the options overrides the entry point of the image.
func (l *Loader) LoadFromBytes(data []byte, format detector.Format, opts options.Program) (program.Image, error) {
	var img program.Image
	var err error

	switch format {
	case detector.PRG:
		img, err = loadPRG(data)
	case detector.NES:
		img, err = l.loadNES(data)
	default:
		img, err = loadRaw(data, opts.LoadAddress)
	}
	if err != nil {
		return program.Image{}, err
	}

	if opts.HasEntry {
		img.Entry = opts.EntryPoint
	}

	l.logger.Debug("Loaded image",
		log.Stringer("format", format),
		log.Int("size", img.Size()),
		log.Hex("entry", img.Entry))
	return img, nil
}

func loadRaw(data []byte, address uint16) (program.Image, error) {
	if err := checkFits(address, len(data)); err != nil {
		return program.Image{}, err
	}
	return program.Image{
		Entry:    address,
		Segments: []program.Segment{{Address: address, Data: data}},
	}, nil
}

// loadPRG loads a Commodore style program file with a little endian load address header.
func loadPRG(data []byte) (program.Image, error) {
	if len(data) < prgHeaderSize {
		return program.Image{}, ErrMissingHeader
	}

	address := binary.LittleEndian.Uint16(data)
	return loadRaw(data[prgHeaderSize:], address)
}

// loadNES maps the PRG-ROM of a mapper 0 cartridge to $8000, a single 16 KiB bank is
// mirrored to $C000. The entry point is read from the reset vector.
func (l *Loader) loadNES(data []byte) (program.Image, error) {
	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		return program.Image{}, fmt.Errorf("loading cartridge: %w", err)
	}
	if cart.Mapper != nesMapperNROM {
		return program.Image{}, fmt.Errorf("%w %d", ErrUnsupportedMapper, cart.Mapper)
	}

	switch len(cart.PRG) {
	case nesPRGBankSize, nesMaxPRGSize:
	default:
		return program.Image{}, fmt.Errorf("%w: PRG-ROM size %d", ErrImageTooLarge, len(cart.PRG))
	}

	img := program.Image{
		Segments: []program.Segment{{Address: nesPRGAddress, Data: cart.PRG}},
	}
	if len(cart.PRG) == nesPRGBankSize {
		img.Segments = append(img.Segments, program.Segment{
			Address: nesPRGAddress + nesPRGBankSize,
			Data:    cart.PRG,
		})
	}

	upper := cart.PRG[len(cart.PRG)-nesPRGBankSize:]
	img.Entry = binary.LittleEndian.Uint16(upper[nesVectorFromBank:])

	l.logger.Debug("Mapped cartridge",
		log.Int("mapper", int(cart.Mapper)),
		log.Int("prg_size", len(cart.PRG)),
		log.Int("chr_size", len(cart.CHR)))
	return img, nil
}

func checkFits(address uint16, length int) error {
	if int(address)+length > memory.Size {
		return fmt.Errorf("%w: %d bytes at 0x%04X", ErrImageTooLarge, length, address)
	}
	return nil
}
