package cpu

import (
	"bufio"
	"io"
	"log"
	"strings"
)

// Loader reads programs written as one 8-bit binary word per line.
// Blank lines and lines starting with '#' are ignored, and a '#' elsewhere
// starts a trailing comment.
type Loader struct {
	Verbose bool // If set, verbosely logs each loaded word.
}

// parseWord converts an 8 character binary word to its value.
func parseWord(word string) (value uint8, err error) {
	if len(word) != 8 {
		err = ErrInstructionMalformed
		return
	}

	for _, ch := range word {
		value <<= 1
		switch ch {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrInstructionMalformed
			return
		}
	}

	return
}

// Parse parses an input stream into a Program, one byte per retained line,
// starting at address 0.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}

	var address int
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		word := strings.TrimSpace(line)
		if len(word) == 0 || strings.HasPrefix(word, "#") {
			continue
		}

		word, _, _ = strings.Cut(word, "#")
		word = strings.TrimSpace(word)

		var value uint8
		value, err = parseWord(word)
		if err != nil {
			prog = nil
			return
		}

		if ld.Verbose {
			log.Printf("%v: %02x: %08b\n", lineno, address, value)
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:  lineno,
			Address: address,
			Words:   []string{word},
			Bytes:   []uint8{value},
		})
		address++
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
		return
	}

	return
}
