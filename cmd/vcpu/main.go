// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"golang.org/x/term"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/emulator"
	"github.com/ezrec/vcpu/memory"
	"github.com/ezrec/vcpu/translate"
)

// DEFAULT_PROGRAM is assembled when no program file is given.
const DEFAULT_PROGRAM = "mov r1 1337\n"

func main() {
	var machineFile string
	var compile string
	var width int
	var snapshot string
	var language string
	var verbose bool

	flag.StringVar(&machineFile, "m", "", ".yaml machine description to use")
	flag.StringVar(&compile, "c", "", ".s file to compile")
	flag.IntVar(&width, "w", memory.DUMP_WIDTH, "Memory dump bytes per line")
	flag.StringVar(&snapshot, "s", "", "Snapshot file to write after the run")
	flag.StringVar(&language, "l", "", "Message language")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(language) != 0 {
		translate.SetLanguage(language)
	}

	machine, err := loadMachine(machineFile)
	if err != nil {
		log.Fatalf("%v: %v", machineFile, err)
	}

	emu, err := emulator.NewEmulator(machine)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose

	if len(compile) == 0 {
		compile = "-"
	}

	prog, err := assemble(emu, compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Load(prog)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Run()

	if len(snapshot) != 0 {
		writeSnapshot(emu, snapshot)
	}

	if err != nil {
		au := aurora.New(aurora.WithColors(term.IsTerminal(int(os.Stdout.Fd()))))
		fmt.Println(au.Red(err).Bold())
		if derr := emu.Dump(os.Stdout, width); derr != nil {
			log.Printf("%v: %v", os.Args[0], derr)
		}
		os.Exit(1)
	}

	fmt.Print(emu.Cpu.String())
}

// loadMachine reads the machine description at path, or returns the
// default machine if path is empty.
func loadMachine(path string) (machine emulator.Machine, err error) {
	if len(path) == 0 {
		machine = emulator.DefaultMachine()
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return emulator.LoadMachine(inf)
}

// assemble assembles the program at path. A path of "-" assembles
// DEFAULT_PROGRAM. The file is closed before returning.
func assemble(emu *emulator.Emulator, path string) (prog *cpu.Program, err error) {
	var source io.ReadCloser = io.NopCloser(strings.NewReader(DEFAULT_PROGRAM))
	if path != "-" {
		source, err = os.Open(path)
		if err != nil {
			return
		}
	}
	defer source.Close()

	return emu.Assemble(source)
}

// writeSnapshot saves the emulator state to a file.
func writeSnapshot(emu *emulator.Emulator, path string) {
	ouf, err := os.Create(path)
	if err != nil {
		log.Printf("%v: %v", path, err)
		return
	}
	defer ouf.Close()

	err = emu.Snapshot().Encode(ouf)
	if err != nil {
		log.Printf("%v: %v", path, err)
	}
}
