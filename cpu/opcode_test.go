package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestInstruction_Encode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		ins     Instruction
		encoded [INSTRUCTION_SIZE]byte
	}){
		{"mov", MakeMov(1, 1337), [8]byte{0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x05, 0x39}},
		{"mov-neg", MakeMov(3, -1), [8]byte{0x01, 0x00, 0x00, 0x03, 0xff, 0xff, 0xff, 0xff}},
		{"zero", Instruction{}, [8]byte{}},
		{"fields", Instruction{Mnemonic(0xaa), Modifier(0xbb), 0xcc, 0xdd, 0x11223344},
			[8]byte{0xaa, 0xbb, 0xcc, 0xdd, 0x11, 0x22, 0x33, 0x44}},
	}

	for _, entry := range table {
		assert.Equal(entry.encoded, entry.ins.Encode(), entry.name)

		ins, err := Decode(entry.encoded[:])
		assert.NoError(err, entry.name)
		assert.Equal(entry.ins, ins, entry.name)
	}
}

func TestDecode_Length(t *testing.T) {
	assert := assert.New(t)

	for _, size := range []int{0, 1, 7, 9, 16} {
		_, err := Decode(make([]byte, size))
		assert.True(errors.Is(err, ErrDecode), "size %d", size)
		var el ErrDecodeLength
		if assert.True(errors.As(err, &el)) {
			assert.Equal(ErrDecodeLength(size), el)
		}
	}

	_, err := Decode(nil)
	assert.True(errors.Is(err, ErrDecode))

	// All zero bytes are a valid encoding.
	ins, err := Decode(make([]byte, INSTRUCTION_SIZE))
	assert.NoError(err)
	assert.Equal(Instruction{}, ins)
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("mov.imm r1 0x00000539", MakeMov(1, 1337).String())
	assert.Equal(".inst Mnemonic(0) imm 0 0 0x00000000", Instruction{}.String())
	assert.Equal(".inst mov Modifier(2) 5 1 0x00000010",
		Instruction{MNEMONIC_MOV, Modifier(2), 5, 1, 0x10}.String())
}

func TestInstruction_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("decode then encode reproduces the bytes", prop.ForAll(
		func(data []byte) bool {
			ins, err := Decode(data)
			if err != nil {
				return false
			}
			encoded := ins.Encode()
			return bytes.Equal(data, encoded[:])
		},
		gen.SliceOfN(INSTRUCTION_SIZE, gen.UInt8()),
	))

	properties.Property("encode then decode reproduces the fields", prop.ForAll(
		func(mnemonic, modifier, from, to uint8, data uint32) bool {
			ins := Instruction{
				Mnemonic:     Mnemonic(mnemonic),
				Modifier:     Modifier(modifier),
				RegisterFrom: from,
				RegisterTo:   to,
				Data:         data,
			}
			encoded := ins.Encode()
			decoded, err := Decode(encoded[:])
			return err == nil && decoded == ins
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt32(),
	))

	properties.Property("decode rejects any other length", prop.ForAll(
		func(n int, fill uint8) bool {
			if n >= INSTRUCTION_SIZE {
				n++
			}
			_, err := Decode(bytes.Repeat([]byte{fill}, n))
			return errors.Is(err, ErrDecode)
		},
		gen.IntRange(0, 31), gen.UInt8(),
	))

	properties.TestingRun(t)
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x05, 0x39})
	f.Add([]byte{})
	f.Add(make([]byte, INSTRUCTION_SIZE))
	f.Add(bytes.Repeat([]byte{0xff}, INSTRUCTION_SIZE+1))

	f.Fuzz(func(t *testing.T, data []byte) {
		assert := assert.New(t)

		ins, err := Decode(data)
		if len(data) != INSTRUCTION_SIZE {
			assert.True(errors.Is(err, ErrDecode))
			return
		}

		assert.NoError(err)
		encoded := ins.Encode()
		assert.Equal(data, encoded[:])
	})
}
