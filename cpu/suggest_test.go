package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		names []string
		name  string
	}){
		{"movv", opcodeNames, "mov"},
		{"mv", opcodeNames, "mov"},
		{".ins", opcodeNames, ".inst"},
		{"nop", opcodeNames, ""},
		{"r10", registerNames, "r0"},
		{"r", registerNames, ""},
		{"r00", registerNames, "r0"},
		{"x9", registerNames, ""},
		{"", registerNames, ""},
	}

	for _, entry := range table {
		assert.Equal(entry.name, closest(entry.word, entry.names), entry.word)
	}
}

func TestAssemblerSuggest(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("movv r0 1"))
	assert.True(errors.Is(err, ErrOpcodeInvalid))
	var hint *ErrSuggest
	if assert.True(errors.As(err, &hint)) {
		assert.Equal("mov", hint.Suggest)
	}

	_, err = asm.Parse(strings.NewReader("mov r10 1"))
	assert.True(errors.Is(err, ErrRegisterName("r10")))
	if assert.True(errors.As(err, &hint)) {
		assert.Equal("r0", hint.Suggest)
	}

	_, err = asm.Parse(strings.NewReader("nop"))
	assert.True(errors.Is(err, ErrOpcodeInvalid))
	assert.False(errors.As(err, &hint))
}
