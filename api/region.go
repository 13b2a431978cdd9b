// Package api defines the public contracts driver and tool code program
// against when consuming a mapped register window.
package api

import "unsafe"

// RegisterReader is the read side of a register window.
type RegisterReader interface {
	Read8(offset uint64) (uint8, error)
	Read16(offset uint64) (uint16, error)
	Read32(offset uint64) (uint32, error)
	ReadBytes(offset, length uint64) ([]byte, error)
}

// RegisterWriter is the write side of a register window.
type RegisterWriter interface {
	Write8(offset uint64, value uint8) error
	Write16(offset uint64, value uint16) error
	Write32(offset uint64, value uint32) error
	WriteBytes(offset uint64, data []byte) error
}

// Region is a complete mapped register window. Pointer hands out a
// borrowed address for native interop; it is valid only while the region
// is open and confers no ownership.
type Region interface {
	RegisterReader
	RegisterWriter
	Base() uint64
	Size() uint64
	Pointer() unsafe.Pointer
	Closed() bool
	Close() error
}
