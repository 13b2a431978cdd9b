package mmio

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/srediag/mmio/internal/devmem"
)

var (
	// ErrClosed is returned by every operation invoked after Close. The
	// region never touches released memory; it fails fast instead.
	ErrClosed = errors.New("mmio: region is closed")

	// ErrInvalidWidth is returned by ReadUint/WriteUint for an access width
	// other than 1, 2 or 4 bytes.
	ErrInvalidWidth = errors.New("mmio: invalid access width")

	// ErrUnsupportedPlatform is returned by Open on platforms without a
	// physical memory device.
	ErrUnsupportedPlatform = devmem.ErrUnsupported
)

// MappingError reports a failure to establish or release the mapping of the
// physical memory device. It wraps the underlying OS error; the errno is
// reachable through errors.As or Errno.
type MappingError struct {
	Path string
	Err  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mmio: mapping %s: %v", e.Path, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// Errno reports the OS error code behind the failure, when there is one.
func (e *MappingError) Errno() (syscall.Errno, bool) {
	var errno syscall.Errno
	ok := errors.As(e.Err, &errno)
	return errno, ok
}

// OutOfBoundsError reports an access whose adjusted offset plus length does
// not fit inside the mapped window. Offset is the caller-supplied offset,
// before page-alignment adjustment.
type OutOfBoundsError struct {
	Offset uint64
	Length uint64
	Window uint64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("mmio: access out of bounds: offset=%#x length=%d window=%d",
		e.Offset, e.Length, e.Window)
}

// RangeError reports a WriteUint value that does not fit the register width.
type RangeError struct {
	Value uint64
	Width int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mmio: value %#x exceeds %d-bit register width", e.Value, 8*e.Width)
}
