package io

import (
	"iter"
)

// Rom is a read-only channel holding a program image.
type Rom struct {
	Data []uint8
}

var _ Channel = (*Rom)(nil)

// Rewind has nothing to do; every Receive starts at the first byte.
func (rc *Rom) Rewind() {
}

// Receive yields the program image in address order.
func (rc *Rom) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for _, data := range rc.Data {
			if !yield(data) {
				return
			}
		}
	}
}

func (rc *Rom) Send(value uint8) error {
	return ErrChannelReadOnly
}
