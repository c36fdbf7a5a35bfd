package cpu

import (
	"fmt"
	"io"
	"iter"
)

// Line is a line of source text, with the address and bytes it generated.
type Line struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []uint8
	LinkLabel string // Label to resolve into the last byte.
}

// Program is a loaded or assembled program.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug locates the source line which generated the byte at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, line := range prog.Lines {
		if address >= line.Address && address < line.Address+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: address - line.Address,
			}
			break
		}
	}

	return
}

// Bytes iterates over the program bytes and their addresses.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(address int, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bins []uint8) {
	for address, value := range prog.Bytes() {
		if address >= len(bins) {
			bins = append(bins, make([]uint8, address+1-len(bins))...)
		}
		bins[address] = value
	}

	return
}

// Disassemble iterates over the instructions of a memory image.
// Unknown opcodes are yielded without operands.
func Disassemble(image []uint8) iter.Seq2[int, Code] {
	return func(yield func(address int, code Code) bool) {
		for address := 0; address < len(image); {
			code := Code{Opcode: Opcode(image[address])}
			size := 1
			inst, ok := Lookup(code.Opcode)
			if ok && address+inst.Size() <= len(image) {
				code.Operands = image[address+1 : address+inst.Size()]
				size = inst.Size()
			}
			if !yield(address, code) {
				return
			}
			address += size
		}
	}
}

// Listing writes the program in loader format: one binary word per line,
// with the disassembly of each instruction as a comment.
func (prog *Program) Listing(out io.Writer) (err error) {
	for address, code := range Disassemble(prog.Binary()) {
		_, err = fmt.Fprintf(out, "%08b # %02X: %v\n", uint8(code.Opcode), address, code)
		if err != nil {
			return
		}
		for _, operand := range code.Operands {
			_, err = fmt.Fprintf(out, "%08b\n", operand)
			if err != nil {
				return
			}
		}
	}

	return
}
