package cpu

// Flags is the comparison flags register, laid out as 0b00000LGE.
type Flags uint8

const (
	FLAG_EQUAL   = Flags(0b001) // E
	FLAG_GREATER = Flags(0b010) // G
	FLAG_LESS    = Flags(0b100) // L
)

// Compare sets exactly one of L, G, or E from the unsigned ordering of a
// and b, clearing the other two.
func (fl *Flags) Compare(a uint8, b uint8) {
	switch {
	case a < b:
		*fl = FLAG_LESS
	case a > b:
		*fl = FLAG_GREATER
	default:
		*fl = FLAG_EQUAL
	}
}

// IsSet returns true if every bit of flag is set.
func (fl Flags) IsSet(flag Flags) bool {
	return flag != 0 && (fl&flag) == flag
}

// String returns the flags as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	text := []byte("---")
	for n, ch := range "LGE" {
		if fl.IsSet(Flags(1 << (2 - n))) {
			text[n] = byte(ch)
		}
	}
	return string(text)
}
