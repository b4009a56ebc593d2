package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vcpu/memory"
)

func TestSnapshot(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(DefaultMachine())
	assert.NoError(err)

	prog, err := emu.Assemble(strings.NewReader("mov r1 1337\nmov r3 -2\n"))
	assert.NoError(err)
	assert.NoError(emu.Load(prog))
	assert.Error(emu.Run())
	emu.Cpu.Flags.Trap = true

	snap := emu.Snapshot()
	assert.Equal(int32(16), snap.Pc)
	assert.Equal(2, snap.Ticks)
	assert.Len(snap.Memory, REFERENCE_SIZE)

	buf := &bytes.Buffer{}
	assert.NoError(snap.Encode(buf))

	// Encoding is deterministic.
	again := &bytes.Buffer{}
	assert.NoError(emu.Snapshot().Encode(again))
	assert.Equal(buf.Bytes(), again.Bytes())

	decoded, err := ReadSnapshot(buf)
	assert.NoError(err)
	assert.Equal(snap, decoded)

	cp, err := decoded.Restore()
	assert.NoError(err)
	assert.Equal(emu.Cpu.Registers, cp.Registers)
	assert.Equal(emu.Cpu.Flags, cp.Flags)
	assert.Equal(emu.Cpu.Ticks, cp.Ticks)
	assert.Equal(emu.Cpu.Memory.Regions(), cp.Memory.Regions())
	assert.Equal(emu.Cpu.Memory.Bytes(), cp.Memory.Bytes())
}

func TestReadSnapshot_Invalid(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadSnapshot(bytes.NewReader([]byte{0xff, 0x00}))
	assert.True(errors.Is(err, ErrSnapshot))

	snap := Snapshot{Memory: make([]byte, 8), Regions: nil}
	cp, err := snap.Restore()
	assert.NoError(err)
	assert.Equal(8, cp.Memory.Len())

	snap.Regions = []memory.Region{
		{Kind: memory.KIND_CODE, Start: 0, End: 8},
		{Kind: memory.KIND_DATA, Start: 4, End: 8},
	}
	_, err = snap.Restore()
	assert.True(errors.Is(err, ErrSnapshot))
}
