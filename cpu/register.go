package cpu

// RegisterFile is the bank of general-purpose registers.
type RegisterFile [REGISTER_COUNT]uint8

func (rf *RegisterFile) Get(index uint8) (value uint8, err error) {
	if int(index) >= len(rf) {
		err = ErrRegister(index)
		return
	}

	value = rf[index]
	return
}

func (rf *RegisterFile) Set(index uint8, value uint8) (err error) {
	if int(index) >= len(rf) {
		err = ErrRegister(index)
		return
	}

	rf[index] = value
	return
}
