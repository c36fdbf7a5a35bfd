package io

import (
	"io"
	"iter"
	"strconv"
)

// Tape is the console channel. Each byte sent is written to Output as its
// decimal value followed by a newline.
type Tape struct {
	Output io.Writer

	Count int // Number of values written since the last Rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind resets the output counter.
func (tc *Tape) Rewind() {
	tc.Count = 0
}

// Receive yields nothing; the console has no input.
func (tc *Tape) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {}
}

// Send writes the decimal value of a byte, and a newline, to Output.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelNoOutput
		return
	}

	line := strconv.AppendUint(nil, uint64(value), 10)
	line = append(line, '\n')
	_, err = tc.Output.Write(line)
	if err != nil {
		return
	}

	tc.Count++

	return
}
