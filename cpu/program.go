package cpu

import (
	"iter"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo      int
	Words       []string
	Instruction Instruction
}

// Program is an assembled instruction stream.
type Program struct {
	Opcodes []Opcode
}

// Debug locates an instruction in its program.
type Debug struct {
	*Opcode     // Source of the instruction, or nil if not found.
	Index   int // Index of the instruction in the program.
}

// Debug returns the debug information of the instruction at index.
func (prog *Program) Debug(index int) (dbg Debug) {
	if index < 0 || index >= len(prog.Opcodes) {
		return
	}

	dbg = Debug{
		Opcode: &prog.Opcodes[index],
		Index:  index,
	}

	return
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Instructions iterates over the program's instructions, by index.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(n int, ins Instruction) bool) {
		for n, op := range prog.Opcodes {
			if !yield(n, op.Instruction) {
				return
			}
		}
	}
}

// Binary returns the wire form of the whole program.
func (prog *Program) Binary() (bins []byte) {
	for _, ins := range prog.Instructions() {
		encoded := ins.Encode()
		bins = append(bins, encoded[:]...)
	}

	return
}
