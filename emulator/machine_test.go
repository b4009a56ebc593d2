package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vcpu/memory"
)

func TestLoadMachine(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"size: 1504",
		"regions:",
		"  - kind: code",
		"    start: 0",
		"    end: 501",
		"  - kind: data",
		"    start: 501",
		"    end: 1504",
	}, "\n")

	machine, err := LoadMachine(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal(DefaultMachine(), machine)

	regions, err := machine.MemoryRegions()
	assert.NoError(err)
	assert.Equal([]memory.Region{
		{Kind: memory.KIND_CODE, Start: 0, End: 501},
		{Kind: memory.KIND_DATA, Start: 501, End: 1504},
	}, regions)
}

func TestLoadMachine_NoRegions(t *testing.T) {
	assert := assert.New(t)

	machine, err := LoadMachine(strings.NewReader("size: 64\n"))
	assert.NoError(err)
	assert.Equal(uint64(64), machine.Size)
	assert.Empty(machine.Regions)

	emu, err := NewEmulator(machine)
	assert.NoError(err)
	assert.Equal([]memory.Range{{Start: 0, End: 64}}, emu.Cpu.Memory.Ranges(memory.KIND_DATA))
}

func TestLoadMachine_Errors(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{
		"size: [1, 2]\n",
		"size: 16\nregions:\n  - kind: heap\n    start: 0\n    end: 8\n",
		"size: 16\nregoins:\n  - kind: code\n    start: 0\n    end: 8\n",
		"size: 16\nregions:\n  - kind: code\n    start: 0\n    ned: 8\n",
	} {
		_, err := LoadMachine(strings.NewReader(text))
		assert.True(errors.Is(err, ErrMachine), text)
	}
}
