package cpu

// handler executes one decoded instruction of a mnemonic.
type handler func(cpu *Cpu, ins Instruction) error

// handlers is the mnemonic dispatch table.
var handlers = map[Mnemonic]handler{
	MNEMONIC_MOV: (*Cpu).mov,
}

// mov loads the immediate data into register_to.
// register_from is reserved, and must be zero.
func (cpu *Cpu) mov(ins Instruction) (err error) {
	switch ins.Modifier {
	case MODIFIER_IMMEDIATE:
		if !cpu.Registers.Valid(ins.RegisterTo) {
			err = &ErrFault{Address: cpu.address(OFFSET_REGISTER_TO), Value: ins.RegisterTo, Err: ErrRegister}
			return
		}
		if ins.RegisterFrom != 0 {
			err = &ErrFault{Address: cpu.address(OFFSET_REGISTER_FROM), Value: ins.RegisterFrom, Err: ErrReserved}
			return
		}
		cpu.Registers.Set(ins.RegisterTo, int32(ins.Data))
	default:
		err = &ErrFault{Address: cpu.address(OFFSET_MODIFIER), Value: uint8(ins.Modifier), Err: ErrModifier}
	}

	return
}
