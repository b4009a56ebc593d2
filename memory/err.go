package memory

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	ErrBounds        = errors.New(f("address out of bounds"))
	ErrRegionBounds  = errors.New(f("region out of bounds"))
	ErrRegionOverlap = errors.New(f("region overlap"))
	ErrKindInvalid   = errors.New(f("region kind invalid"))
)

// ErrRegion reports a rejected region at construction.
type ErrRegion struct {
	Index  int
	Region Region
	Err    error
}

func (err *ErrRegion) Error() string {
	return f("region %d %v %v", err.Index, err.Region.String(), err.Err)
}

func (err *ErrRegion) Unwrap() error {
	return err.Err
}

// ErrAccess reports a rejected read or write.
type ErrAccess struct {
	Address uint64
	Length  int
	Err     error
}

func (err *ErrAccess) Error() string {
	return f("access 0x%X+%d %v", err.Address, err.Length, err.Err)
}

func (err *ErrAccess) Unwrap() error {
	return err.Err
}
