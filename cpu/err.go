package cpu

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrFetch      = errors.New(f("fetch out of bounds"))
	ErrCodeRegion = errors.New(f("code region missing"))
	ErrCodeFull   = errors.New(f("code region full"))

	// Instruction decode and execute errors
	ErrDecode   = errors.New(f("instruction couldn't be decoded"))
	ErrMnemonic = errors.New(f("invalid mnemonic"))
	ErrModifier = errors.New(f("invalid modifier"))
	ErrRegister = errors.New(f("invalid register"))
	ErrReserved = errors.New(f("non-zero value for unusable byte"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroRecursion     = errors.New(f(".macro expands itself"))
)

// ErrDecodeLength is the length of a rejected instruction encoding.
type ErrDecodeLength int

func (el ErrDecodeLength) Error() string {
	return f("%d bytes, expected %d", int(el), INSTRUCTION_SIZE)
}

// ErrFault is an execution fault, tagged with the address of the
// offending instruction byte and its value.
type ErrFault struct {
	Address uint32
	Value   uint8
	Err     error
}

func (err *ErrFault) Error() string {
	return f("%v %02X at 0x%X", err.Err, err.Value, err.Address)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrRegisterName string

func (er ErrRegisterName) Error() string {
	return f("'%v' is not a register", string(er))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("%v is not a character", string(err))
}

// ErrMacro locates an error inside a macro expansion.
type ErrMacro struct {
	Macro  string
	LineNo int
	Err    error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %d %v", err.Macro, err.LineNo, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
