package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// State is the execution state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
	"SP":          fmt.Sprintf("R%d", REG_SP),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory       // Program and stack memory.
	Register RegisterFile // Register bank; r7 is the stack pointer.
	Flags    Flags        // Flags set by CMP.
	Pc       int          // Address of the next opcode to fetch.
	Stack    Stack        // Stack region bounds.

	State State // Execution state.
	Fault error // Reason for STATE_FAULTED.

	Output Channel // Destination of PRN.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU, with empty memory, writing PRN values to output.
func NewCpu(output Channel) (cpu *Cpu) {
	cpu = &Cpu{
		Output: output,
	}

	cpu.Reset(nil)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// SP returns the current stack pointer.
func (cpu *Cpu) SP() uint8 {
	return cpu.Register[REG_SP]
}

// Reset the CPU state.
// - Clears memory, registers, and flags.
// - Loads the program image from the boot channel at address 0.
// - Places the stack just past the program image.
// - Sets the PC to 0, and the stack pointer to STACK_TOP.
func (cpu *Cpu) Reset(boot Channel) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Clear()
	clear(cpu.Register[:])
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.State = STATE_RUNNING
	cpu.Fault = nil

	var size int
	if boot != nil {
		for value := range boot.Receive() {
			err = cpu.Memory.Write(size, value)
			if err != nil {
				cpu.halt(err)
				return
			}
			size++
		}
	}

	cpu.Stack = Stack{Base: size, Top: STACK_TOP}
	cpu.Register[REG_SP] = STACK_TOP

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes, stack 0x%02x-0x%02x", size, cpu.Stack.Base, cpu.Stack.Top)
	}

	return
}

// halt stops the CPU. A nil err is a normal halt.
func (cpu *Cpu) halt(err error) {
	if err == nil {
		cpu.State = STATE_HALTED
		return
	}

	cpu.State = STATE_FAULTED
	cpu.Fault = err
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack", "state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "stack":
			val, ok := cpu.Stack.Peek(&cpu.Memory, cpu.SP())
			if ok {
				strval = fmt.Sprintf("%02X (depth %d)", val, cpu.Stack.Depth(cpu.SP()))
			} else {
				strval = "--"
			}
		case "state":
			strval = cpu.State.String()
			if cpu.Fault != nil {
				strval += ": " + cpu.Fault.Error()
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line summary of the CPU and the instruction at
// the program counter.
func (cpu *Cpu) Trace() string {
	peek := func(addr int) uint8 {
		value, _ := cpu.Memory.Read(addr)
		return value
	}

	var text strings.Builder
	fmt.Fprintf(&text, "TRACE: PC: %02X | FL: %02X | %02X %02X %02X | %-4v |",
		cpu.Pc, uint8(cpu.Flags),
		peek(cpu.Pc), peek(cpu.Pc+1), peek(cpu.Pc+2),
		Opcode(peek(cpu.Pc)))
	for _, reg := range cpu.Register {
		fmt.Fprintf(&text, " %02X", reg)
	}

	return text.String()
}

// FetchCode fetches the instruction at the program counter, with the
// number of operand bytes its opcode declares.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	op, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code.Opcode = Opcode(op)

	inst, ok := Lookup(code.Opcode)
	if !ok {
		err = ErrOpcodeUnknown
		return
	}

	code.Operands = make([]uint8, len(inst.Operands))
	for n := range code.Operands {
		code.Operands[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle. Any error faults the CPU.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State != STATE_RUNNING {
		err = ErrCpuStopped
		return
	}

	if cpu.Verbose {
		log.Print(cpu.Trace())
	}

	code, err := cpu.FetchCode()
	if err == nil {
		err = cpu.Execute(code)
	} else {
		err = errors.Join(ErrOpcode{Pc: cpu.Pc, Code: code}, err)
	}

	if err != nil {
		cpu.halt(err)
	}

	return
}

// Run ticks the CPU until it halts or faults.
func (cpu *Cpu) Run() (state State, err error) {
	for cpu.State == STATE_RUNNING {
		cpu.Tick()
	}

	return cpu.State, cpu.Fault
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: cpu.Pc, Code: code}, err)
		}
	}()

	inst, ok := Lookup(code.Opcode)
	if !ok {
		err = ErrOpcodeUnknown
		return
	}

	if len(code.Operands) != len(inst.Operands) {
		err = ErrOpcodeUnknown
		return
	}

	jumped, err := inst.exec(cpu, code.Operands)
	if err != nil {
		return
	}

	if !jumped {
		cpu.Pc += inst.Size()
	}

	cpu.Ticks++

	return
}

func (cpu *Cpu) execLdi(operands []uint8) (jumped bool, err error) {
	err = cpu.Register.Set(operands[0], operands[1])
	return
}

func (cpu *Cpu) execPrn(operands []uint8) (jumped bool, err error) {
	value, err := cpu.Register.Get(operands[0])
	if err != nil {
		return
	}

	if cpu.Output == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.Output.Send(value)
	return
}

// alu applies op to two registers, storing the result in the first.
func (cpu *Cpu) alu(op AluOp, operands []uint8) (err error) {
	a, err := cpu.Register.Get(operands[0])
	if err != nil {
		return
	}
	b, err := cpu.Register.Get(operands[1])
	if err != nil {
		return
	}

	output, err := Alu(op, a, b)
	if err != nil {
		return
	}

	err = cpu.Register.Set(operands[0], output)
	return
}

func (cpu *Cpu) execAdd(operands []uint8) (jumped bool, err error) {
	err = cpu.alu(ALU_OP_ADD, operands)
	return
}

func (cpu *Cpu) execMul(operands []uint8) (jumped bool, err error) {
	err = cpu.alu(ALU_OP_MUL, operands)
	return
}

// push places a value on the stack, updating the stack pointer.
func (cpu *Cpu) push(value uint8) (err error) {
	sp, err := cpu.Stack.Push(&cpu.Memory, cpu.SP(), value)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp
	return
}

// pop removes a value from the stack, updating the stack pointer.
func (cpu *Cpu) pop() (value uint8, err error) {
	value, sp, err := cpu.Stack.Pop(&cpu.Memory, cpu.SP())
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp
	return
}

func (cpu *Cpu) execPush(operands []uint8) (jumped bool, err error) {
	value, err := cpu.Register.Get(operands[0])
	if err != nil {
		return
	}

	err = cpu.push(value)
	return
}

func (cpu *Cpu) execPop(operands []uint8) (jumped bool, err error) {
	if int(operands[0]) >= len(cpu.Register) {
		err = ErrRegister(operands[0])
		return
	}

	value, err := cpu.pop()
	if err != nil {
		return
	}

	err = cpu.Register.Set(operands[0], value)
	return
}

func (cpu *Cpu) execCall(operands []uint8) (jumped bool, err error) {
	target, err := cpu.Register.Get(operands[0])
	if err != nil {
		return
	}

	// Return to the instruction following the CALL.
	ret := cpu.Pc + 2
	if ret >= MEMORY_SIZE {
		err = ErrAddress(ret)
		return
	}

	err = cpu.push(uint8(ret))
	if err != nil {
		return
	}

	cpu.Pc = int(target)
	jumped = true
	return
}

func (cpu *Cpu) execRet(operands []uint8) (jumped bool, err error) {
	value, err := cpu.pop()
	if err != nil {
		return
	}

	cpu.Pc = int(value)
	jumped = true
	return
}

func (cpu *Cpu) execCmp(operands []uint8) (jumped bool, err error) {
	a, err := cpu.Register.Get(operands[0])
	if err != nil {
		return
	}
	b, err := cpu.Register.Get(operands[1])
	if err != nil {
		return
	}

	cpu.Flags.Compare(a, b)
	return
}

// jump sets the PC to the value of a register, if cond is true.
func (cpu *Cpu) jump(cond bool, reg uint8) (jumped bool, err error) {
	target, err := cpu.Register.Get(reg)
	if err != nil {
		return
	}

	if cond {
		cpu.Pc = int(target)
		jumped = true
	}
	return
}

func (cpu *Cpu) execJmp(operands []uint8) (jumped bool, err error) {
	return cpu.jump(true, operands[0])
}

func (cpu *Cpu) execJeq(operands []uint8) (jumped bool, err error) {
	return cpu.jump(cpu.Flags.IsSet(FLAG_EQUAL), operands[0])
}

func (cpu *Cpu) execJne(operands []uint8) (jumped bool, err error) {
	return cpu.jump(!cpu.Flags.IsSet(FLAG_EQUAL), operands[0])
}

func (cpu *Cpu) execHlt(operands []uint8) (jumped bool, err error) {
	cpu.halt(nil)
	return
}
