// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"math"
	"slices"
)

// MAX_SIZE is the largest addressable memory.
const MAX_SIZE = math.MaxUint32

// Memory is a flat byte store with typed regions.
type Memory struct {
	data    []byte
	regions []Region
}

// clamp limits a requested size to MAX_SIZE.
func clamp(size uint64) uint64 {
	if size > MAX_SIZE {
		return MAX_SIZE
	}
	return size
}

// NewMemory creates a zero filled memory of size bytes.
// With no regions, the whole memory is a single data region.
func NewMemory(size uint64, regions ...Region) (mem *Memory, err error) {
	size = clamp(size)

	if len(regions) == 0 {
		regions = []Region{{Kind: KIND_DATA, Start: 0, End: uint32(size)}}
	}

	err = validate(size, regions)
	if err != nil {
		return
	}

	mem = &Memory{
		data:    make([]byte, size),
		regions: slices.Clone(regions),
	}

	return
}

// validate checks each region lies within size bytes, and that
// no two regions of different kinds overlap.
func validate(size uint64, regions []Region) (err error) {
	for n, region := range regions {
		if region.Kind != KIND_DATA && region.Kind != KIND_CODE {
			err = &ErrRegion{Index: n, Region: region, Err: ErrKindInvalid}
			return
		}
		if region.Start > region.End || uint64(region.End) > size {
			err = &ErrRegion{Index: n, Region: region, Err: ErrRegionBounds}
			return
		}
		for _, prior := range regions[:n] {
			if prior.Kind == region.Kind {
				continue
			}
			if prior.Range().Overlaps(region.Range()) {
				err = &ErrRegion{Index: n, Region: region, Err: ErrRegionOverlap}
				return
			}
		}
	}

	return
}

// Len returns the size of the memory in bytes.
func (mem *Memory) Len() int {
	return len(mem.data)
}

// Bytes returns the backing store. Writes to it modify the memory.
func (mem *Memory) Bytes() []byte {
	return mem.data
}

// Regions returns a copy of the region list, in declaration order.
func (mem *Memory) Regions() []Region {
	return slices.Clone(mem.regions)
}

// Ranges returns the spans of all regions of a kind, in declaration order.
func (mem *Memory) Ranges(kind Kind) (ranges []Range) {
	for _, region := range mem.regions {
		if region.Kind == kind {
			ranges = append(ranges, region.Range())
		}
	}

	return
}

// First returns the span of the first region of a kind.
func (mem *Memory) First(kind Kind) (rng Range, ok bool) {
	for _, region := range mem.regions {
		if region.Kind == kind {
			return region.Range(), true
		}
	}

	return
}

// check verifies [address, address+length) is inside the memory.
func (mem *Memory) check(address uint64, length int) (err error) {
	if length < 0 || address > uint64(len(mem.data)) || uint64(length) > uint64(len(mem.data))-address {
		err = &ErrAccess{Address: address, Length: length, Err: ErrBounds}
	}
	return
}

// Read returns a copy of length bytes starting at address.
func (mem *Memory) Read(address uint64, length int) (data []byte, err error) {
	err = mem.check(address, length)
	if err != nil {
		return
	}

	data = slices.Clone(mem.data[address : address+uint64(length)])
	return
}

// Write copies data into memory starting at address.
// Nothing is written if any byte would fall outside of the memory.
func (mem *Memory) Write(address uint64, data []byte) (err error) {
	err = mem.check(address, len(data))
	if err != nil {
		return
	}

	copy(mem.data[address:], data)
	return
}

// Reset zeros the memory. Regions are kept.
func (mem *Memory) Reset() {
	clear(mem.data)
}
