// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/vcpu/memory"
)

var _cpu_defines = map[string]string{
	"INSTRUCTION_SIZE":   fmt.Sprintf("%d", INSTRUCTION_SIZE),
	"REGISTER_COUNT":     fmt.Sprintf("%d", REGISTER_COUNT),
	"MNEMONIC_MOV":       fmt.Sprintf("0x%x", uint8(MNEMONIC_MOV)),
	"MODIFIER_IMMEDIATE": fmt.Sprintf("0x%x", uint8(MODIFIER_IMMEDIATE)),
}

// Cpu is the simulation context for the processor and its memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    *memory.Memory // Code and data store.
	Registers Registers      // Register file.
	Flags     Flags          // Condition flags.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a CPU with size bytes of memory, split into regions.
// With no regions, all of memory is data.
func NewCpu(size uint64, regions ...memory.Region) (cpu *Cpu, err error) {
	mem, err := memory.NewMemory(size, regions...)
	if err != nil {
		return
	}

	cpu = &Cpu{
		Memory: mem,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears the registers, flags and tick counter. Memory is kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Flags.Reset()
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"r0", "r1", "r2", "r3",
		"zf", "of", "tf",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("0x%08X", uint32(cpu.Registers.Pc))
		case "r0", "r1", "r2", "r3":
			val := cpu.Registers.General[reg[1]-'0']
			strval = fmt.Sprintf("0x%08X (%d)", uint32(val), val)
		case "zf":
			strval = fmt.Sprintf("%v", cpu.Flags.Zero)
		case "of":
			strval = fmt.Sprintf("%v", cpu.Flags.Overflow)
		case "tf":
			strval = fmt.Sprintf("%v", cpu.Flags.Trap)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// address returns the address of a byte of the current instruction.
func (cpu *Cpu) address(offset int) uint32 {
	return uint32(cpu.Registers.Pc) + uint32(offset)
}

// Append writes an instruction to the first free slot of the first code
// region. Slots are INSTRUCTION_SIZE aligned from the region start, and
// a slot is free when its first byte is zero.
func (cpu *Cpu) Append(ins Instruction) (address uint32, err error) {
	code, ok := cpu.Memory.First(memory.KIND_CODE)
	if !ok || code.Len() == 0 {
		err = ErrCodeRegion
		return
	}

	data := cpu.Memory.Bytes()
	encoded := ins.Encode()

	for slot := uint64(code.Start); slot < uint64(code.End); slot += INSTRUCTION_SIZE {
		if data[slot] != 0 {
			continue
		}
		err = cpu.Memory.Write(slot, encoded[:])
		if err != nil {
			return
		}
		address = uint32(slot)
		if cpu.Verbose {
			log.Printf("cpu: append 0x%X: %v", address, ins)
		}
		return
	}

	err = ErrCodeFull
	return
}

// Fetch returns the INSTRUCTION_SIZE bytes of memory at address.
func (cpu *Cpu) Fetch(address int32) (data []byte, err error) {
	if address < 0 {
		err = fmt.Errorf("%w: 0x%X", ErrFetch, uint32(address))
		return
	}

	data, err = cpu.Memory.Read(uint64(address), INSTRUCTION_SIZE)
	if err != nil {
		err = errors.Join(ErrFetch, err)
		return
	}

	return
}

// Tick executes a single fetch, decode, execute cycle.
// The program counter only advances if the instruction succeeded.
func (cpu *Cpu) Tick() (err error) {
	data, err := cpu.Fetch(cpu.Registers.Pc)
	if err != nil {
		return
	}

	ins, err := Decode(data)
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	if err != nil {
		return
	}

	cpu.Registers.Pc += INSTRUCTION_SIZE
	cpu.Ticks++

	return
}

// Run ticks once for each instruction slot of the first code region,
// stopping at the first error.
func (cpu *Cpu) Run() (err error) {
	code, ok := cpu.Memory.First(memory.KIND_CODE)
	if !ok {
		err = ErrCodeRegion
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: run code[0x%X, 0x%X)", code.Start, code.End)
	}

	for slot := uint64(code.Start); slot < uint64(code.End); slot += INSTRUCTION_SIZE {
		err = cpu.Tick()
		if err != nil {
			if cpu.Verbose {
				log.Printf("cpu: halt: %v", err)
			}
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%08x: %v", cpu.Registers.Pc, ins)
	}

	handle, ok := handlers[ins.Mnemonic]
	if !ok {
		err = &ErrFault{Address: cpu.address(OFFSET_MNEMONIC), Value: uint8(ins.Mnemonic), Err: ErrMnemonic}
		return
	}

	return handle(cpu, ins)
}
