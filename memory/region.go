package memory

import (
	"fmt"
)

// Kind is the type of a memory region.
type Kind uint8

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_DATA = Kind(0) // data
	KIND_CODE = Kind(1) // code
)

// ParseKind returns the Kind named by its String() form.
func ParseKind(name string) (kind Kind, err error) {
	for _, kind = range []Kind{KIND_DATA, KIND_CODE} {
		if kind.String() == name {
			return
		}
	}

	kind = 0
	err = fmt.Errorf("%w: %q", ErrKindInvalid, name)
	return
}

// Range is a half-open span of addresses, [Start, End).
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes in the range.
func (rng Range) Len() int {
	if rng.End < rng.Start {
		return 0
	}
	return int(rng.End - rng.Start)
}

// Contains returns true if the address lies in the range.
func (rng Range) Contains(address uint64) bool {
	return address >= uint64(rng.Start) && address < uint64(rng.End)
}

// Overlaps returns true if the two ranges share at least one address.
func (rng Range) Overlaps(other Range) bool {
	if rng.Len() == 0 || other.Len() == 0 {
		return false
	}
	return rng.Start < other.End && other.Start < rng.End
}

// Region is a typed range of memory.
type Region struct {
	Kind  Kind
	Start uint32 // First address.
	End   uint32 // One past the last address.
}

// Range returns the address span of the region.
func (region Region) Range() Range {
	return Range{Start: region.Start, End: region.End}
}

// String returns the region as 'kind[start, end)'.
func (region Region) String() string {
	return fmt.Sprintf("%v[0x%X, 0x%X)", region.Kind, region.Start, region.End)
}
