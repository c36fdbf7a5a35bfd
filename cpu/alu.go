package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
)

// Alu performs the requested ALU action on two register values, and
// returns the output value. Results wrap at 8 bits.
func Alu(op AluOp, a uint8, b uint8) (output uint8, err error) {
	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_MUL:
		output = a * b
	default:
		err = ErrAluOp(op)
	}

	return
}
