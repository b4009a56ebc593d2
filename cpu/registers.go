package cpu

// REGISTER_COUNT is the number of general-purpose registers.
const REGISTER_COUNT = 4

// Registers is the register file.
type Registers struct {
	General [REGISTER_COUNT]int32 // r0-r3
	Pc      int32                 // Byte address of the next instruction.
}

// Valid returns true if id names a general-purpose register.
func (regs *Registers) Valid(id uint8) bool {
	return int(id) < len(regs.General)
}

// Get returns the value of a general-purpose register.
func (regs *Registers) Get(id uint8) (value int32, ok bool) {
	if !regs.Valid(id) {
		return
	}

	return regs.General[id], true
}

// Set stores value in a general-purpose register.
func (regs *Registers) Set(id uint8, value int32) (ok bool) {
	if !regs.Valid(id) {
		return
	}

	regs.General[id] = value
	return true
}

// Reset zeros all registers, including the program counter.
func (regs *Registers) Reset() {
	clear(regs.General[:])
	regs.Pc = 0
}

// Flags are the condition flags.
// No implemented instruction reads or writes them.
type Flags struct {
	Zero     bool // zf
	Overflow bool // of
	Trap     bool // tf
}

// Reset clears all flags.
func (fl *Flags) Reset() {
	*fl = Flags{}
}
