// Package io provides the byte-level I/O channels of the LS-8 emulator.
// It includes console output of numeric values (Tape), a bounded capture
// buffer (Temporary), and the read-only program image source (Rom).
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels attached to the CPU.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields bytes from the channel.
	Receive() iter.Seq[uint8]
	// Send writes a single byte to the channel.
	Send(value uint8) error
}
