package emulator

import (
	"errors"
	"io"
	"os"

	"github.com/ezrec/ls8/cpu"
)

// Load parses a program from input, either as Loader format binary words
// or, if assembly is set, as assembler source. The assembler sees the cpu
// defines as equates.
func (emu *Emulator) Load(input io.Reader, assembly bool) (prog *cpu.Program, err error) {
	if assembly {
		asm := &cpu.Assembler{Verbose: emu.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(input)
	} else {
		ld := &cpu.Loader{Verbose: emu.Verbose}
		prog, err = ld.Parse(input)
	}
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// LoadFile opens and loads a program file.
func (emu *Emulator) LoadFile(path string, assembly bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Join(ErrProgramRead, err)
		return
	}
	defer inf.Close()

	prog, err = emu.Load(inf, assembly)
	if err != nil {
		var syntax *cpu.ErrSyntax
		if !errors.As(err, &syntax) {
			err = errors.Join(ErrProgramRead, err)
		}
		return
	}

	return
}
