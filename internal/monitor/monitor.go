// Package monitor implements an interactive terminal monitor that steps or runs a
// machine and shows its registers, the next instructions and a memory page.
package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/machine"
)

const (
	registersView = "registers"
	codeView      = "code"
	memoryView    = "memory"
	statusView    = "status"

	codeLines = 8
)

// Monitor drives a machine from keyboard commands.
type Monitor struct {
	logger  *log.Logger
	machine *machine.Machine
	budget  uint32
	page    uint16 // start of the displayed memory page

	cycles       int
	instructions int
	status       string
}

// New returns a monitor for the machine. The run command uses the cycle budget.
func New(logger *log.Logger, m *machine.Machine, budget uint32, page uint16) *Monitor {
	return &Monitor{
		logger:  logger,
		machine: m,
		budget:  budget,
		page:    page,
		status:  "s: step  r: run  n/p: next/previous page  q: quit",
	}
}

// Run shows the monitor until the user quits or the context is cancelled.
func (mon *Monitor) Run(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating gui: %w", err)
	}
	defer g.Close()

	g.SetManagerFunc(mon.layout)
	if err := mon.bindKeys(g); err != nil {
		return err
	}

	done := make(chan struct{})
	go watchContext(ctx, done, func() {
		g.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	})

	err = g.MainLoop()
	close(done)
	if err != nil && !errors.Is(err, gocui.ErrQuit) {
		return fmt.Errorf("running gui: %w", err)
	}
	return nil
}

// watchContext calls quit when the context is cancelled before done is closed.
func watchContext(ctx context.Context, done <-chan struct{}, quit func()) {
	select {
	case <-ctx.Done():
		quit()
	case <-done:
	}
}

func (mon *Monitor) bindKeys(g *gocui.Gui) error {
	bindings := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, quit},
		{'q', quit},
		{'s', mon.step},
		{'r', mon.run},
		{'n', mon.nextPage},
		{'p', mon.previousPage},
	}

	for _, binding := range bindings {
		if err := g.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return fmt.Errorf("setting key binding: %w", err)
		}
	}
	return nil
}

func (mon *Monitor) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	views := []struct {
		name           string
		title          string
		x0, y0, x1, y1 int
	}{
		{registersView, "Registers", 0, 0, maxX - 1, 2},
		{codeView, "Code", 0, 3, maxX/3 - 1, maxY - 4},
		{memoryView, "Memory", maxX / 3, 3, maxX - 1, maxY - 4},
		{statusView, "Status", 0, maxY - 3, maxX - 1, maxY - 1},
	}

	for _, view := range views {
		v, err := g.SetView(view.name, view.x0, view.y0, view.x1, view.y1)
		if err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
			v.Title = view.title
		}
	}

	return mon.render(g)
}

// render redraws all views from the machine state.
func (mon *Monitor) render(g *gocui.Gui) error {
	snap := mon.machine.Snapshot()

	v, err := g.View(registersView)
	if err != nil {
		return err
	}
	v.Clear()
	if err := WriteRegisters(v, snap); err != nil {
		return err
	}

	if v, err = g.View(codeView); err != nil {
		return err
	}
	v.Clear()
	address := snap.PC
	for range codeLines {
		code, size := FormatInstruction(mon.machine, address)
		fmt.Fprintf(v, "%04X  %s\n", address, code)
		address += uint16(size)
	}

	if v, err = g.View(memoryView); err != nil {
		return err
	}
	v.Clear()
	if err := WriteMemory(v, mon.page, mon.machine.ReadBytes(mon.page, 256)); err != nil {
		return err
	}

	if v, err = g.View(statusView); err != nil {
		return err
	}
	v.Clear()
	fmt.Fprintf(v, "cycles: %d  instructions: %d  %s", mon.cycles, mon.instructions, mon.status)
	return nil
}

func (mon *Monitor) step(*gocui.Gui, *gocui.View) error {
	cycles, err := mon.machine.Step()
	mon.cycles += cycles
	mon.instructions++
	mon.setStatus(err)
	return nil
}

func (mon *Monitor) run(*gocui.Gui, *gocui.View) error {
	result, err := mon.machine.Run(mon.budget)
	mon.cycles += result.Cycles
	mon.instructions += result.Instructions
	mon.setStatus(err)
	return nil
}

func (mon *Monitor) setStatus(err error) {
	switch {
	case err != nil:
		mon.logger.Debug("Execution failed", log.Err(err))
		mon.status = err.Error()
	case mon.machine.Snapshot().Halted:
		mon.status = "halted on brk"
	default:
		mon.status = ""
	}
}

func (mon *Monitor) nextPage(*gocui.Gui, *gocui.View) error {
	mon.page += 0x100
	return nil
}

func (mon *Monitor) previousPage(*gocui.Gui, *gocui.View) error {
	mon.page -= 0x100
	return nil
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}
