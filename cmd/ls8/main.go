// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports if the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}

// run executes the command line, and returns the process exit status.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var verbose bool
	var assembly bool
	var listing bool
	var dump bool

	logger := log.New(stderr, "ls8: ", 0)

	flags := flag.NewFlagSet("ls8", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&verbose, "v", false, "Verbose mode, trace each instruction")
	flags.BoolVar(&assembly, "a", false, "Program is assembly source")
	flags.BoolVar(&listing, "l", false, "Write the binary listing to stdout, do not execute")
	flags.BoolVar(&dump, "d", false, "Dump the parsed program to stderr")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: ls8 [flags] program\n")
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil {
		return 2
	}

	if flags.NArg() != 1 {
		logger.Print(emulator.ErrProgramMissing)
		flags.Usage()
		return 2
	}

	path := flags.Arg(0)

	if verbose {
		log.SetOutput(stderr)
		log.Printf("ls8: messages in %v", translate.Language())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	prog, err := emu.LoadFile(path, assembly)
	if err != nil {
		logger.Printf("%v: %v", path, err)
		return 1
	}

	if dump {
		printer := pp.New()
		printer.SetOutput(stderr)
		printer.SetColoringEnabled(isTerminal(stderr))
		printer.Println(prog)
	}

	if listing {
		err = prog.Listing(stdout)
		if err != nil {
			logger.Print(err)
			return 1
		}
		return 0
	}

	emu.Tape.Output = stdout

	err = emu.Reset()
	if err == nil {
		err = emu.Run()
	}
	if err != nil {
		logger.Printf("%v: %v", path, err)
		if verbose {
			logger.Printf("\n%v", emu.Cpu.String())
		}
		return 1
	}

	return 0
}
