package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func doAssemble(t *testing.T, program []string) (prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssembler_Print8(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; print8",
		"start:  LDI R0, 8   # load",
		"        prn r0",
		"        HLT",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Line{
		{2, 0, []string{"LDI", "R0", "8"}, []uint8{0x82, 0x00, 0x08}, ""},
		{3, 3, []string{"prn", "r0"}, []uint8{0x47, 0x00}, ""},
		{4, 5, []string{"HLT"}, []uint8{0x01}, ""},
	}
	assert.Equal(expected, prog.Lines)
	assert.Equal(0, asm.Label["start"])
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        LDI R1, sub",
		"        CALL R1",
		"        PRN R0",
		"        HLT",
		"sub:",
		"        LDI R0, $(6 * 7)",
		"        RET",
	}

	prog := doAssemble(t, program)

	assert.Equal([]uint8{
		0x82, 0x01, 0x08,
		0x50, 0x01,
		0x47, 0x00,
		0x01,
		0x82, 0x00, 0x2a,
		0x11,
	}, prog.Binary())
	assert.Equal("sub", prog.Lines[0].LinkLabel)

	out := &io.Temporary{}
	cpu := NewCpu(out)
	assert.NoError(cpu.Reset(&io.Rom{Data: prog.Binary()}))
	state, err := cpu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal([]uint8{42}, out.Values())
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ COUNT 3",
		".equ BIG $(COUNT * 50)",
		"LDI R0, COUNT",
		"LDI R1, BIG",
		"LDI R2, $(LINENO)",
		"PUSH SP",
		"LDI R3, -1",
		"LDI R4, 0b101",
		"LDI R5, STACK_TOP",
		"data: .db 0xff",
		".db data",
		".db $(data + 1)",
	}

	asm := &Assembler{}
	asm.Predefine("SP", "R7")
	asm.Predefine("STACK_TOP", "0xf4")
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal("3", asm.Equate["COUNT"])
	assert.Equal("150", asm.Equate["BIG"])
	assert.Equal(20, asm.Label["data"])

	assert.Equal([]uint8{
		0x82, 0x00, 3,
		0x82, 0x01, 150,
		0x82, 0x02, 5,
		0x45, 0x07,
		0x82, 0x03, 0xff,
		0x82, 0x04, 0x05,
		0x82, 0x05, 0xf4,
		0xff,
		20,
		21,
	}, prog.Binary())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineno int
		err    error
	}){
		{"invalid", "HLT\nFOO R0", 2, ErrOpcodeInvalid},
		{"missing", "LDI R0", 1, ErrOpcodeMissing},
		{"extra", "PRN R0, R1", 1, ErrOpcodeExtraArgs},
		{"extra_hlt", "HLT R0", 1, ErrOpcodeExtraArgs},
		{"register", "PRN R8", 1, ErrRegisterInvalid},
		{"register_word", "ADD R0, 1", 1, ErrRegisterInvalid},
		{"range", "LDI R0, 256", 1, ErrValueRange},
		{"range_neg", "LDI R0, -129", 1, ErrValueRange},
		{"label_dup", "a: HLT\na: HLT", 2, ErrLabelDuplicate},
		{"equ_syntax", ".equ A", 1, ErrEquateSyntax},
		{"equ_dup", ".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"db_missing", ".db", 1, ErrOpcodeMissing},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_ErrorTypes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("HLT\n\nLDI R0, nowhere\n"))
	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrLabelMissing("nowhere"), missing)
	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(3, syntax.LineNo)

	_, err = asm.Parse(strings.NewReader("LDI R0, $(1 +)"))
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))

	_, err = asm.Parse(strings.NewReader("LDI R0, 0x1g"))
	var number ErrParseNumber
	assert.True(errors.As(err, &number))
	assert.Equal(ErrParseNumber("0x1g"), number)
}
