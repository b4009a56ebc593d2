// Package cpu implements the processor and assembler for the vcpu system.
//
// The CPU consists of a program counter (pc), four 32-bit general-purpose
// registers (r0-r3), three condition flags, and a flat memory split into
// code and data regions. Instructions are a fixed 8 bytes wide:
//
//	[mnemonic] [modifier] [register from] [register to] | [data, big-endian]
//
// Only the 'mov' mnemonic is implemented.
//
// The assembler provides a small line oriented assembly language for the
// instruction set, supporting equates and compile-time expression evaluation.
package cpu
