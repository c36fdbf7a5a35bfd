package io

import (
	"iter"
	"slices"
)

// Temporary is a bounded FIFO of bytes. It captures CPU output for
// inspection, and can be read back in the order written.
type Temporary struct {
	Capacity int // Capacity in bytes. Zero is unlimited.

	Data []uint8
}

var _ Channel = (*Temporary)(nil)

// Rewind empties the buffer.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Receive drains the buffer, oldest byte first.
func (temp *Temporary) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for len(temp.Data) > 0 {
			value := temp.Data[0]
			temp.Data = temp.Data[1:]
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a byte to the buffer.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value uint8) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)

	return
}

// Values returns a copy of the buffered bytes without draining them.
func (temp *Temporary) Values() []uint8 {
	return slices.Clone(temp.Data)
}
