// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + program listing + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Rom  io.Rom  // ROM IO channel, holding the program image.
	Tape io.Tape // Tape IO channel, the PRN console.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Tape)

	return
}

// Reset the emulator, and boot the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Rom.Data = emu.Program.Binary()

	if emu.Verbose {
		log.Printf("emulator: booting %d bytes", len(emu.Rom.Data))
	}

	err = emu.Cpu.Reset(&emu.Rom)
	if err != nil {
		err = &ErrRuntime{Pc: emu.Cpu.Pc, Err: err}
		return
	}

	return
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, _ := emu.Cpu.FetchCode()
	return code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	debug := emu.Program.Debug(emu.Cpu.Pc)
	if debug.Line == nil {
		return 0
	}

	return debug.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.State != cpu.STATE_RUNNING

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: %v after %d ticks", emu.Cpu.State, emu.Cpu.Ticks)
	}

	return
}
