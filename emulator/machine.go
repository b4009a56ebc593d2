package emulator

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ezrec/vcpu/memory"
)

// REFERENCE_SIZE is the memory size of the reference machine.
const REFERENCE_SIZE = 1504

// MachineRegion is a region entry of a machine description.
type MachineRegion struct {
	Kind  string `yaml:"kind"` // 'code' or 'data'
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
}

// Machine describes the memory layout of an emulated system.
type Machine struct {
	Size    uint64          `yaml:"size"`
	Regions []MachineRegion `yaml:"regions"`
}

// DefaultMachine returns the reference layout: the first third of memory
// is code, the rest is data.
func DefaultMachine() Machine {
	return Machine{
		Size: REFERENCE_SIZE,
		Regions: []MachineRegion{
			{Kind: memory.KIND_CODE.String(), Start: 0, End: REFERENCE_SIZE / 3},
			{Kind: memory.KIND_DATA.String(), Start: REFERENCE_SIZE / 3, End: REFERENCE_SIZE},
		},
	}
}

// LoadMachine reads a YAML machine description.
// Unknown keys are rejected.
func LoadMachine(r io.Reader) (machine Machine, err error) {
	err = yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&machine)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrMachine, err)
		return
	}

	_, err = machine.MemoryRegions()
	return
}

// MemoryRegions converts the described regions to memory regions.
func (machine Machine) MemoryRegions() (regions []memory.Region, err error) {
	for n, mr := range machine.Regions {
		var kind memory.Kind
		kind, err = memory.ParseKind(mr.Kind)
		if err != nil {
			err = fmt.Errorf("%w: region %d: %w", ErrMachine, n, err)
			return
		}
		regions = append(regions, memory.Region{Kind: kind, Start: mr.Start, End: mr.End})
	}

	return
}
