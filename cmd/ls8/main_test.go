package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func writeProgram(t *testing.T, name string, program []string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(strings.Join(program, "\n")+"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func doMain(args ...string) (status int, stdout string, stderr string) {
	var outbuf, errbuf bytes.Buffer
	status = run(args, &outbuf, &errbuf)
	stdout = outbuf.String()
	stderr = errbuf.String()
	return
}

var add = []string{
	"; add two numbers",
	"LDI R0, 8",
	"LDI R1, 9",
	"ADD R0, R1",
	"PRN R0",
	"HLT",
}

func TestRunUsage(t *testing.T) {
	assert := assert.New(t)

	status, stdout, stderr := doMain()
	assert.Equal(2, status)
	assert.Empty(stdout)
	assert.Contains(stderr, "usage: ls8")

	status, _, _ = doMain("-x")
	assert.Equal(2, status)

	status, _, stderr = doMain("a.ls8", "b.ls8")
	assert.Equal(2, status)
	assert.Contains(stderr, "usage: ls8")
}

func TestRunMissingFile(t *testing.T) {
	assert := assert.New(t)

	status, stdout, stderr := doMain(filepath.Join(t.TempDir(), "missing.ls8"))
	assert.Equal(1, status)
	assert.Empty(stdout)
	assert.Contains(stderr, "missing.ls8")
}

func TestRunLoader(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "print8.ls8", []string{
		"# print8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	})

	status, stdout, stderr := doMain(path)
	assert.Equal(0, status)
	assert.Equal("8\n", stdout)
	assert.Empty(stderr)
}

func TestRunMalformed(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "bad.ls8", []string{
		"10000010",
		"0000000x",
	})

	status, stdout, stderr := doMain(path)
	assert.Equal(1, status)
	assert.Empty(stdout)
	assert.Contains(stderr, "line 2")
}

func TestRunAssembly(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "add.asm", add)

	status, stdout, _ := doMain("-a", path)
	assert.Equal(0, status)
	assert.Equal("17\n", stdout)
}

func TestRunFault(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "fault.asm", []string{
		"LDI R0, 1",
		"PRN R0",
		"RET",
	})

	status, stdout, stderr := doMain("-a", path)
	assert.Equal(1, status)
	assert.Equal("1\n", stdout)
	assert.Contains(stderr, "line 3")
}

func TestRunListing(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "add.asm", add)

	status, stdout, _ := doMain("-a", "-l", path)
	assert.Equal(0, status)
	assert.Contains(stdout, "10000010 # 00: LDI R0,8\n")

	ld := &cpu.Loader{}
	prog, err := ld.Parse(strings.NewReader(stdout))
	assert.NoError(err)
	assert.Equal([]uint8{
		0x82, 0x00, 0x08,
		0x82, 0x01, 0x09,
		0xa0, 0x00, 0x01,
		0x47, 0x00,
		0x01,
	}, prog.Binary())
}

func TestRunDump(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t, "add.asm", add)

	status, stdout, stderr := doMain("-a", "-d", path)
	assert.Equal(0, status)
	assert.Equal("17\n", stdout)
	assert.Contains(stderr, "Lines")
	assert.NotContains(stderr, "\x1b[")
}

func TestRunVerbose(t *testing.T) {
	assert := assert.New(t)
	defer log.SetOutput(os.Stderr)

	path := writeProgram(t, "add.asm", add)

	status, stdout, stderr := doMain("-v", "-a", path)
	assert.Equal(0, status)
	assert.Equal("17\n", stdout)
	assert.Contains(stderr, "TRACE: PC: 00 | FL: 00 | 82 00 08 | LDI  |")
	assert.Contains(stderr, "messages in")
}
