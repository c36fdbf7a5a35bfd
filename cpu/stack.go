package cpu

// Stack manages the call stack held in memory. The stack occupies the
// addresses [Base, Top), grows downwards, and is addressed by the stack
// pointer; an empty stack has the stack pointer equal to Top.
type Stack struct {
	Base int // Lowest usable address, just past the loaded program.
	Top  int // Empty stack pointer.
}

// Push decrements sp, and stores value at the new stack pointer.
// On error, sp is returned unchanged.
func (s *Stack) Push(mem *Memory, sp uint8, value uint8) (next uint8, err error) {
	next = sp

	if s.Full(sp) {
		err = ErrStackOverflow
		return
	}

	addr := int(sp) - 1
	err = mem.Write(addr, value)
	if err != nil {
		return
	}

	next = uint8(addr)
	return
}

// Pop reads and clears the value at sp, and returns it with the
// incremented stack pointer.
// On error, sp is returned unchanged.
func (s *Stack) Pop(mem *Memory, sp uint8) (value uint8, next uint8, err error) {
	next = sp

	addr := int(sp)
	if addr >= s.Top {
		err = ErrStackUnderflow
		return
	}
	if addr < s.Base {
		err = ErrStackOverflow
		return
	}

	value, err = mem.Read(addr)
	if err != nil {
		return
	}
	err = mem.Write(addr, 0)
	if err != nil {
		return
	}

	next = uint8(addr + 1)
	return
}

// Empty returns true if sp is at, or above, the top of stack.
func (s *Stack) Empty(sp uint8) bool {
	return int(sp) >= s.Top
}

// Full returns true if no further push is possible from sp.
func (s *Stack) Full(sp uint8) bool {
	return int(sp) <= s.Base || int(sp) > s.Top
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth(sp uint8) int {
	if s.Empty(sp) {
		return 0
	}
	return s.Top - int(sp)
}

// Peek returns the value at sp without removing it.
func (s *Stack) Peek(mem *Memory, sp uint8) (value uint8, ok bool) {
	addr := int(sp)
	if addr >= s.Top || addr < s.Base {
		return
	}

	return mem[addr], true
}
