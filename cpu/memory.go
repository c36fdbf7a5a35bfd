package cpu

// Memory is the byte-addressable store shared by program text and stack.
type Memory [MEMORY_SIZE]uint8

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value uint8, err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAddress(address)
		return
	}

	value = mem[address]
	return
}

// Write stores a byte at address.
func (mem *Memory) Write(address int, value uint8) (err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAddress(address)
		return
	}

	mem[address] = value
	return
}

// Clear zeros all of memory.
func (mem *Memory) Clear() {
	clear(mem[:])
}
