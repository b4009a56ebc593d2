// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro is a macro definition.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Argument names, bound as equates during expansion.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the vcpu instruction set.
//
// Syntax, one instruction per line, ';' to end of line is a comment:
//
//	mov <register> <value>                          ; register = value
//	.inst <mnemonic> <modifier> <from> <to> <data>  ; raw instruction fields
//	.equ <name> <value>                             ; define an equate
//	.macro <name> <arg>...                          ; start a macro body
//	.endm                                           ; end a macro body
//	<name> <value>...                               ; expand a macro
//
// Any $(expr) is evaluated at assembly time, with equates as variables.
// A 'c' character literal is replaced by its byte value.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.

	expanding map[string]bool // Macros currently being expanded.
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap is a map of register names to register ids.
var registerMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
}

// mnemonicMap is a map of mnemonic names.
var mnemonicMap = map[string]Mnemonic{
	MNEMONIC_MOV.String(): MNEMONIC_MOV,
}

// modifierMap is a map of modifier names.
var modifierMap = map[string]Modifier{
	MODIFIER_IMMEDIATE.String(): MODIFIER_IMMEDIATE,
}

// signedOf returns the value of a simple word, keeping its sign.
// A '~' prefix inverts the bits of the value.
func (asm *Assembler) signedOf(word string) (value int64, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	if strings.HasPrefix(word, "'") {
		// Character quotes are expanded into values in parseLine()
		err = ErrParseCharacter(word)
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil || value > 0xffffffff || value < -int64(0x80000000) {
		value = 0
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// valueOf returns the 32-bit value of a simple word.
// Negative values are two's complement.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	v64, err := asm.signedOf(word)
	if err != nil {
		return
	}

	value = uint32(v64)
	return
}

// byteOf returns the value of a word that must fit in a byte.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v32, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v32 > 0xff {
		err = ErrParseNumber(word)
		return
	}

	value = uint8(v32)
	return
}

// registerOf returns the register id of a register name.
func (asm *Assembler) registerOf(word string) (id uint8, err error) {
	id, ok := registerMap[word]
	if !ok {
		err = suggest(ErrRegisterName(word), word, registerNames)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := asm.signedOf(str)
		if err != nil {
			// Ignore non-integer equates, such as register names.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok || value > 0xffffffff || value < -int64(0x80000000) {
		value = 0
		err = ErrParseExpression(expr)
		return
	}
	return
}

// charEscape maps the escaped character literals.
var charEscape = map[string]byte{
	"\\\\": '\\',
	"\\'":  '\'',
	"\\n":  '\n',
	"\\r":  '\r',
	"\\t":  '\t',
	"\\e":  '\033',
	"\\0":  0,
}

// charEval replaces 'c' character literals with their values.
func charEval(line string) string {
	re := regexp.MustCompile(`'(\\?[^'\\]|\\\\|\\')'`)
	return re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if len(str) == 1 {
			return fmt.Sprintf("%d", str[0])
		}
		ch, ok := charEscape[str]
		if !ok {
			return word
		}
		return fmt.Sprintf("%d", ch)
	})
}

// parseLine expands a single line into words, handling equates.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = charEval(line)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		if value < 0 {
			return fmt.Sprintf("%d", value)
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	for n, word := range words {
		// .equ names are not substituted.
		if n == 1 && words[0] == ".equ" {
			continue
		}
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expand(words[0], macro, words[1:])
		words = nil
		return
	}

	return
}

// expand assembles the lines of a macro, with its arguments as equates.
func (asm *Assembler) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.expanding[name] {
		err = &ErrMacro{Macro: name, LineNo: macro.LineNo, Err: ErrMacroRecursion}
		return
	}
	asm.expanding[name] = true

	outer := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	defer func() {
		asm.Equate = outer
		delete(asm.expanding, name)
	}()

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, LineNo: lineno, Err: err}
			return
		}
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Macro = map[string]*Macro{}
	asm.expanding = map[string]bool{}
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	var ins Instruction

	switch words[0] {
	case "mov":
		switch {
		case len(words) < 3:
			err = ErrOpcodeValueMissing
			return
		case len(words) > 3:
			err = ErrOpcodeExtraArgs
			return
		}
		var reg uint8
		reg, err = asm.registerOf(words[1])
		if err != nil {
			return
		}
		var value uint32
		value, err = asm.valueOf(words[2])
		if err != nil {
			return
		}
		ins = MakeMov(reg, int32(value))
	case ".inst":
		switch {
		case len(words) < 6:
			err = ErrOpcodeValueMissing
			return
		case len(words) > 6:
			err = ErrOpcodeExtraArgs
			return
		}
		ins, err = asm.parseInst(words[1:])
		if err != nil {
			return
		}
	default:
		err = suggest(ErrOpcodeInvalid, words[0], opcodeNames)
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Words: words, Instruction: ins})

	return
}

// parseInst builds an instruction from raw field words:
// mnemonic, modifier, register from, register to, data.
// Mnemonics, modifiers and registers may be given by name or number.
func (asm *Assembler) parseInst(fields []string) (ins Instruction, err error) {
	mnemonic, ok := mnemonicMap[fields[0]]
	if !ok {
		var value uint8
		value, err = asm.byteOf(fields[0])
		if err != nil {
			return
		}
		mnemonic = Mnemonic(value)
	}

	modifier, ok := modifierMap[fields[1]]
	if !ok {
		var value uint8
		value, err = asm.byteOf(fields[1])
		if err != nil {
			return
		}
		modifier = Modifier(value)
	}

	var regs [2]uint8
	for n, word := range fields[2:4] {
		var ok bool
		regs[n], ok = registerMap[word]
		if ok {
			continue
		}
		regs[n], err = asm.byteOf(word)
		if err != nil {
			return
		}
	}

	data, err := asm.valueOf(fields[4])
	if err != nil {
		return
	}

	ins = Instruction{
		Mnemonic:     mnemonic,
		Modifier:     modifier,
		RegisterFrom: regs[0],
		RegisterTo:   regs[1],
		Data:         data,
	}

	return
}
