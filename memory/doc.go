// Package memory implements the flat, byte addressable store of the vcpu
// machine.
//
// The store is carved into typed regions (code and data). Regions of
// different kinds may not overlap, and every region must lie inside the
// store. All access is bounds checked and reported as an error.
package memory
