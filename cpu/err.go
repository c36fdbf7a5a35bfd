package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrCpuStopped        = errors.New(f("cpu stopped"))
	ErrAddressOutOfRange = errors.New(f("address out of range"))
	ErrRegisterInvalid   = errors.New(f("register invalid"))
	ErrAluUnsupported    = errors.New(f("unsupported alu operation"))
	ErrOpcodeUnknown     = errors.New(f("opcode unknown"))
	ErrStackOverflow     = errors.New(f("stack overflow"))
	ErrStackUnderflow    = errors.New(f("stack underflow"))
	ErrChannelInvalid    = errors.New(f("channel invalid"))

	// Loader errors
	ErrInstructionMalformed = errors.New(f("malformed instruction line"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeMissing   = errors.New(f("operand missing"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrValueRange      = errors.New(f("value out of range"))
)

type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address 0x%x out of range", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrAddressOutOfRange
}

type ErrRegister uint8

func (er ErrRegister) Error() string {
	return f("register %d invalid", uint8(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrAluOp AluOp

func (ea ErrAluOp) Error() string {
	return f("unsupported alu operation %v", AluOp(ea).String())
}

func (ea ErrAluOp) Unwrap() error {
	return ErrAluUnsupported
}

// ErrOpcode identifies the instruction that failed, and the address it was
// fetched from.
type ErrOpcode struct {
	Pc   int
	Code Code
}

func (eo ErrOpcode) Error() string {
	return f("pc 0x%02x: %v", eo.Pc, eo.Code.String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
