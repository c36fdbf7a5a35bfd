package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionSet(t *testing.T) {
	assert := assert.New(t)

	var count int
	var last Opcode
	for inst := range Instructions() {
		count++
		assert.Less(last, inst.Opcode)
		last = inst.Opcode

		// The top two bits of the opcode are the operand count.
		assert.Equal(int(inst.Opcode>>6), len(inst.Operands), inst.Mnemonic)
		assert.Equal(1+len(inst.Operands), inst.Size())

		found, ok := Lookup(inst.Opcode)
		assert.True(ok)
		assert.Same(inst, found)

		found, ok = LookupMnemonic(inst.Mnemonic)
		assert.True(ok)
		assert.Same(inst, found)

		assert.Equal(inst.Mnemonic, inst.Opcode.String())
	}
	assert.Equal(13, count)

	_, ok := Lookup(Opcode(0xff))
	assert.False(ok)
	assert.Equal("0xFF", Opcode(0xff).String())

	found, ok := LookupMnemonic("ldi")
	assert.True(ok)
	assert.Equal(OP_LDI, found.Opcode)
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{Code{OP_LDI, []uint8{0, 8}}, "LDI R0,8"},
		{Code{OP_ADD, []uint8{0, 1}}, "ADD R0,R1"},
		{Code{OP_PRN, []uint8{3}}, "PRN R3"},
		{Code{OP_HLT, nil}, "HLT"},
		{Code{OP_RET, []uint8{}}, "RET"},
		{Code{Opcode(0x03), nil}, "0x03"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}
