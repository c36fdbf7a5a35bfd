package cpu

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Opcode is the instruction byte fetched at the program counter.
type Opcode uint8

// LS-8 opcodes. The top two bits of each opcode hold its operand count.
const (
	OP_HLT  = Opcode(0b00000001)
	OP_RET  = Opcode(0b00010001)
	OP_PUSH = Opcode(0b01000101)
	OP_POP  = Opcode(0b01000110)
	OP_PRN  = Opcode(0b01000111)
	OP_CALL = Opcode(0b01010000)
	OP_JMP  = Opcode(0b01010100)
	OP_JEQ  = Opcode(0b01010101)
	OP_JNE  = Opcode(0b01010110)
	OP_LDI  = Opcode(0b10000010)
	OP_ADD  = Opcode(0b10100000)
	OP_MUL  = Opcode(0b10100010)
	OP_CMP  = Opcode(0b10100111)
)

// Operand kinds, used by the assembler and disassembler.
type OperandKind int

const (
	OPERAND_REG = OperandKind(iota) // Register index.
	OPERAND_IMM                     // Immediate byte.
)

// Instruction describes the decode and execution of an opcode.
type Instruction struct {
	Opcode   Opcode
	Mnemonic string
	Operands []OperandKind

	// exec runs the instruction. jumped is set if the instruction
	// has set the program counter itself.
	exec func(cpu *Cpu, operands []uint8) (jumped bool, err error)
}

// instructionSet is the single table of all LS-8 instructions.
var instructionSet = map[Opcode]*Instruction{
	OP_LDI:  {OP_LDI, "LDI", []OperandKind{OPERAND_REG, OPERAND_IMM}, (*Cpu).execLdi},
	OP_PRN:  {OP_PRN, "PRN", []OperandKind{OPERAND_REG}, (*Cpu).execPrn},
	OP_ADD:  {OP_ADD, "ADD", []OperandKind{OPERAND_REG, OPERAND_REG}, (*Cpu).execAdd},
	OP_MUL:  {OP_MUL, "MUL", []OperandKind{OPERAND_REG, OPERAND_REG}, (*Cpu).execMul},
	OP_PUSH: {OP_PUSH, "PUSH", []OperandKind{OPERAND_REG}, (*Cpu).execPush},
	OP_POP:  {OP_POP, "POP", []OperandKind{OPERAND_REG}, (*Cpu).execPop},
	OP_CALL: {OP_CALL, "CALL", []OperandKind{OPERAND_REG}, (*Cpu).execCall},
	OP_RET:  {OP_RET, "RET", nil, (*Cpu).execRet},
	OP_CMP:  {OP_CMP, "CMP", []OperandKind{OPERAND_REG, OPERAND_REG}, (*Cpu).execCmp},
	OP_JMP:  {OP_JMP, "JMP", []OperandKind{OPERAND_REG}, (*Cpu).execJmp},
	OP_JEQ:  {OP_JEQ, "JEQ", []OperandKind{OPERAND_REG}, (*Cpu).execJeq},
	OP_JNE:  {OP_JNE, "JNE", []OperandKind{OPERAND_REG}, (*Cpu).execJne},
	OP_HLT:  {OP_HLT, "HLT", nil, (*Cpu).execHlt},
}

// mnemonicMap maps upper case mnemonics to instructions.
var mnemonicMap = func() map[string]*Instruction {
	mm := make(map[string]*Instruction, len(instructionSet))
	for _, inst := range instructionSet {
		mm[inst.Mnemonic] = inst
	}
	return mm
}()

// Lookup returns the instruction for an opcode.
func Lookup(op Opcode) (inst *Instruction, ok bool) {
	inst, ok = instructionSet[op]
	return
}

// LookupMnemonic returns the instruction for a mnemonic, in any case.
func LookupMnemonic(mnemonic string) (inst *Instruction, ok bool) {
	inst, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

// Instructions iterates over the instruction set, in opcode order.
func Instructions() iter.Seq[*Instruction] {
	return func(yield func(inst *Instruction) bool) {
		for _, op := range slices.Sorted(maps.Keys(instructionSet)) {
			if !yield(instructionSet[op]) {
				return
			}
		}
	}
}

// Size returns the number of bytes of the instruction, including operands.
func (inst *Instruction) Size() int {
	return 1 + len(inst.Operands)
}

// String returns the mnemonic of the opcode, or its hex value if unknown.
func (op Opcode) String() string {
	inst, ok := instructionSet[op]
	if !ok {
		return fmt.Sprintf("0x%02X", uint8(op))
	}
	return inst.Mnemonic
}

// Code is a single fetched instruction with its operand bytes.
type Code struct {
	Opcode   Opcode
	Operands []uint8
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst, ok := instructionSet[code.Opcode]
	if !ok {
		return code.Opcode.String()
	}

	args := make([]string, 0, len(code.Operands))
	for n, operand := range code.Operands {
		if n < len(inst.Operands) && inst.Operands[n] == OPERAND_REG {
			args = append(args, fmt.Sprintf("R%d", operand))
		} else {
			args = append(args, fmt.Sprintf("%d", operand))
		}
	}

	if len(args) == 0 {
		return inst.Mnemonic
	}

	return inst.Mnemonic + " " + strings.Join(args, ",")
}
