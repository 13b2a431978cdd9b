// Package devmem contains the platform-specific mapping of physical address
// space into the process. The public accessor API lives in pkg/mmio.
package devmem

import "errors"

// DefaultPath is the canonical physical memory device node.
const DefaultPath = "/dev/mem"

// ErrUnsupported is returned on platforms without a physical memory device.
var ErrUnsupported = errors.New("physical memory mapping is not supported on this platform")

// Mapping is one live memory mapping of a physical window.
type Mapping struct {
	// Data is the mapped byte range, page-aligned at both ends.
	Data []byte
	Path string
}

// MapOptions describes the window to map. Base and Length must already be
// page-aligned; alignment policy belongs to the caller.
type MapOptions struct {
	Path   string
	Base   int64
	Length int
}

// Map and Unmap are implemented in the platform files
// (devmem_linux.go, devmem_other.go).
