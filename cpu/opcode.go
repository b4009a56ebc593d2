package cpu

import (
	"encoding/binary"
	"fmt"
)

// Instruction encoding layout.
const (
	INSTRUCTION_SIZE = 8 // Bytes per instruction.

	OFFSET_MNEMONIC      = 0
	OFFSET_MODIFIER      = 1
	OFFSET_REGISTER_FROM = 2
	OFFSET_REGISTER_TO   = 3
	OFFSET_DATA          = 4
)

// Mnemonic selects the operation of an instruction.
type Mnemonic uint8

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MNEMONIC_MOV = Mnemonic(1) // mov
)

// Modifier selects the operand form of a mnemonic.
type Modifier uint8

//go:generate go tool stringer -linecomment -type=Modifier
const (
	MODIFIER_IMMEDIATE = Modifier(0) // imm
)

// Instruction is a decoded 8 byte instruction.
type Instruction struct {
	Mnemonic     Mnemonic
	Modifier     Modifier
	RegisterFrom uint8  // Source register, or reserved zero byte.
	RegisterTo   uint8  // Destination register.
	Data         uint32 // Operand.
}

// MakeMov creates an instruction that loads an immediate into a register.
func MakeMov(register uint8, value int32) Instruction {
	return Instruction{
		Mnemonic:   MNEMONIC_MOV,
		Modifier:   MODIFIER_IMMEDIATE,
		RegisterTo: register,
		Data:       uint32(value),
	}
}

// Encode returns the wire form of the instruction.
func (ins Instruction) Encode() (data [INSTRUCTION_SIZE]byte) {
	data[OFFSET_MNEMONIC] = uint8(ins.Mnemonic)
	data[OFFSET_MODIFIER] = uint8(ins.Modifier)
	data[OFFSET_REGISTER_FROM] = ins.RegisterFrom
	data[OFFSET_REGISTER_TO] = ins.RegisterTo
	binary.BigEndian.PutUint32(data[OFFSET_DATA:], ins.Data)
	return
}

// Decode parses exactly INSTRUCTION_SIZE bytes into an Instruction.
// Field values are not checked here; that happens at execution.
func Decode(data []byte) (ins Instruction, err error) {
	if len(data) != INSTRUCTION_SIZE {
		err = fmt.Errorf("%w: %w", ErrDecode, ErrDecodeLength(len(data)))
		return
	}

	ins = Instruction{
		Mnemonic:     Mnemonic(data[OFFSET_MNEMONIC]),
		Modifier:     Modifier(data[OFFSET_MODIFIER]),
		RegisterFrom: data[OFFSET_REGISTER_FROM],
		RegisterTo:   data[OFFSET_REGISTER_TO],
		Data:         binary.BigEndian.Uint32(data[OFFSET_DATA:]),
	}

	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	if ins.Mnemonic == MNEMONIC_MOV && ins.Modifier == MODIFIER_IMMEDIATE && ins.RegisterFrom == 0 {
		return fmt.Sprintf("%v.%v r%d 0x%08x", ins.Mnemonic, ins.Modifier, ins.RegisterTo, ins.Data)
	}

	return fmt.Sprintf(".inst %v %v %d %d 0x%08x",
		ins.Mnemonic, ins.Modifier, ins.RegisterFrom, ins.RegisterTo, ins.Data)
}
