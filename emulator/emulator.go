// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"slices"
	"strings"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/internal"
	"github.com/ezrec/vcpu/memory"
)

// Emulator state. CPU + memory layout + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Machine  Machine      // Memory layout.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	slots map[uint32]int // Instruction address to program index.
}

// NewEmulator creates a new emulator for a machine layout.
func NewEmulator(machine Machine) (emu *Emulator, err error) {
	regions, err := machine.MemoryRegions()
	if err != nil {
		return
	}

	cp, err := cpu.NewCpu(machine.Size, regions...)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     cp,
		Machine: machine,
		Program: &cpu.Program{},
		slots:   map[uint32]int{},
	}

	return
}

// Defines returns an iterator over all of the defines, machine layout
// first, then the cpu.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", emu.Cpu.Memory.Len()),
	}

	for _, kind := range []memory.Kind{memory.KIND_CODE, memory.KIND_DATA} {
		rng, ok := emu.Cpu.Memory.First(kind)
		if !ok {
			continue
		}
		prefix := strings.ToUpper(kind.String())
		defines[prefix+"_START"] = fmt.Sprintf("%d", rng.Start)
		defines[prefix+"_END"] = fmt.Sprintf("%d", rng.End)
	}

	return internal.Concat2(internal.Sorted2(defines), emu.Cpu.Defines())
}

// Assemble parses assembly text, with the emulator defines predefined.
func (emu *Emulator) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return asm.Parse(input)
}

// Load appends every instruction of a program to the code region.
// Programs loaded one after another accumulate in Program.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	loaded := &cpu.Program{Opcodes: slices.Clone(emu.Program.Opcodes)}
	defer func() {
		emu.Program = loaded
	}()

	for n, ins := range prog.Instructions() {
		op := prog.Opcodes[n]
		var address uint32
		address, err = emu.Cpu.Append(ins)
		if err != nil {
			err = &cpu.ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "), Err: err}
			return
		}
		emu.slots[address] = loaded.Len()
		loaded.Opcodes = append(loaded.Opcodes, op)
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d instructions", prog.Len())
	}

	return
}

// LineNo returns the source line of the instruction at the program
// counter, or 0 if there is none.
func (emu *Emulator) LineNo() int {
	index, ok := emu.slots[uint32(emu.Cpu.Registers.Pc)]
	if !ok {
		return 0
	}

	dbg := emu.Program.Debug(index)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Run runs the loaded program. Errors are tagged with the program counter
// and, when known, the source line of the failing instruction.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Run()
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Address: uint32(emu.Cpu.Registers.Pc), Err: err}
	}

	return
}

// Dump writes a hex listing of memory.
func (emu *Emulator) Dump(w io.Writer, width int) error {
	return emu.Cpu.Memory.Dump(w, width)
}
