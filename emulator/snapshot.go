package emulator

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/memory"
)

// Snapshot is a postmortem image of the emulated machine.
type Snapshot struct {
	Pc       int32                     `cbor:"1,keyasint"`
	General  [cpu.REGISTER_COUNT]int32 `cbor:"2,keyasint"`
	Zero     bool                      `cbor:"3,keyasint"`
	Overflow bool                      `cbor:"4,keyasint"`
	Trap     bool                      `cbor:"5,keyasint"`
	Ticks    int                       `cbor:"6,keyasint"`
	Regions  []memory.Region           `cbor:"7,keyasint"`
	Memory   []byte                    `cbor:"8,keyasint"`
}

var snapshotEncMode = func() cbor.EncMode {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// Snapshot captures the current CPU and memory state.
func (emu *Emulator) Snapshot() (snap Snapshot) {
	cp := emu.Cpu

	snap = Snapshot{
		Pc:       cp.Registers.Pc,
		General:  cp.Registers.General,
		Zero:     cp.Flags.Zero,
		Overflow: cp.Flags.Overflow,
		Trap:     cp.Flags.Trap,
		Ticks:    cp.Ticks,
		Regions:  cp.Memory.Regions(),
		Memory:   append([]byte(nil), cp.Memory.Bytes()...),
	}

	return
}

// Encode writes the snapshot to w as CBOR.
func (snap Snapshot) Encode(w io.Writer) (err error) {
	err = snapshotEncMode.NewEncoder(w).Encode(snap)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	return
}

// ReadSnapshot reads a CBOR snapshot from r.
func ReadSnapshot(r io.Reader) (snap Snapshot, err error) {
	err = cbor.NewDecoder(r).Decode(&snap)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	return
}

// Restore creates a CPU in the state captured by the snapshot.
func (snap Snapshot) Restore() (cp *cpu.Cpu, err error) {
	cp, err = cpu.NewCpu(uint64(len(snap.Memory)), snap.Regions...)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSnapshot, err)
		return
	}

	err = cp.Memory.Write(0, snap.Memory)
	if err != nil {
		return
	}

	cp.Registers = cpu.Registers{General: snap.General, Pc: snap.Pc}
	cp.Flags = cpu.Flags{Zero: snap.Zero, Overflow: snap.Overflow, Trap: snap.Trap}
	cp.Ticks = snap.Ticks

	return
}
