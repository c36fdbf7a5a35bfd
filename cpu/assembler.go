// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the LS-8 instruction set.
//
// Each line holds an optional 'label:', then an instruction such as
// 'LDI R0, 8', or a directive. Comments start at ';' or '#'.
// Immediates may be numbers, labels, equates, or '$(...)' compile-time
// expressions.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// valueOf returns the byte value of a numeric word.
// Negative values are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -128 || v64 > 255 {
		err = ErrValueRange
		return
	}

	value = uint8(v64)
	return
}

// registerOf returns the register index of an 'Rn' word.
func (asm *Assembler) registerOf(word string) (index uint8, err error) {
	if len(word) != 2 || (word[0] != 'R' && word[0] != 'r') {
		err = ErrParseRegister(word)
		return
	}

	if word[1] < '0' || word[1] >= '0'+REGISTER_COUNT {
		err = ErrParseRegister(word)
		return
	}

	index = word[1] - '0'
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine splits a line into words, after expression evaluation,
// equate substitution, and label definition.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrOpcodeInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddress()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = asm.expand(words[2])
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		words[1+n] = asm.expand(word)
	}

	return
}

// expand replaces a word by its equate, if it has one.
func (asm *Assembler) expand(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}

	return word
}

// currentAddress gets the address of the next generated byte.
func (asm *Assembler) currentAddress() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Address + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = text
		if n := strings.IndexAny(line, ";#"); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	lineno = 0
	for n := range asm.Lines {
		ln := &asm.Lines[n]

		if len(ln.LinkLabel) == 0 {
			continue
		}
		lineno = ln.LineNo
		line = strings.Join(ln.Words, " ")
		address, ok := asm.Label[ln.LinkLabel]
		if !ok {
			err = ErrLabelMissing(ln.LinkLabel)
			return
		}
		if address >= MEMORY_SIZE {
			err = ErrValueRange
			return
		}
		ln.Bytes[len(ln.Bytes)-1] = uint8(address)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// immediateOf returns the value of an immediate word, or the label it
// refers to.
func (asm *Assembler) immediateOf(word string) (value uint8, label string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if _, is_num := err.(ErrParseNumber); is_num && reLabel.MatchString(word) {
		err = nil
		label = word
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		ln := Line{LineNo: lineno, Address: asm.currentAddress(), Words: words, Bytes: bytes, LinkLabel: label}
		asm.Lines = append(asm.Lines, ln)
	}()

	// .db VALUE
	if strings.EqualFold(words[0], ".db") {
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var value uint8
		value, label, err = asm.immediateOf(words[1])
		if err != nil {
			return
		}
		bytes = []uint8{value}
		return
	}

	inst, ok := LookupMnemonic(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < len(inst.Operands) {
		err = ErrOpcodeMissing
		return
	}
	if len(args) > len(inst.Operands) {
		err = ErrOpcodeExtraArgs
		return
	}

	bytes = append(bytes, uint8(inst.Opcode))
	for n, kind := range inst.Operands {
		var value uint8
		switch kind {
		case OPERAND_REG:
			value, err = asm.registerOf(args[n])
		case OPERAND_IMM:
			value, label, err = asm.immediateOf(args[n])
		}
		if err != nil {
			bytes = nil
			return
		}
		bytes = append(bytes, value)
	}

	return
}
