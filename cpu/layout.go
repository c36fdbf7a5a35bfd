package cpu

const (
	MEMORY_SIZE    = 256  // Bytes of addressable memory.
	REGISTER_COUNT = 8    // General-purpose registers.
	REG_SP         = 7    // Register holding the stack pointer.
	STACK_TOP      = 0xf4 // Initial (empty) stack pointer.
)
