package emulator

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	ErrMachine  = errors.New(f("machine description"))
	ErrSnapshot = errors.New(f("snapshot"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 if the address is not part of the program.
	Address uint32 // Program counter at the fault.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%X %v", err.Address, err.Err)
	}
	return f("line %d pc 0x%X %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
