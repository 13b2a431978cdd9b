//go:build linux

package devmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map opens the physical memory device, establishes a shared read-write
// mapping over [Base, Base+Length), and closes the device descriptor. Only
// the mapping survives; a failure to close the descriptor is a failure of
// the whole operation and unwinds the mapping.
func Map(opts MapOptions) (*Mapping, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	// O_SYNC keeps accesses uncached so stores reach the device.
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	data, err := unix.Mmap(fd, opts.Base, opts.Length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if err := unix.Close(fd); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	return &Mapping{Data: data, Path: path}, nil
}

// Unmap releases the mapping. The Mapping must not be used afterwards.
func Unmap(m *Mapping) error {
	if m == nil || m.Data == nil {
		return nil
	}
	if err := unix.Munmap(m.Data); err != nil {
		return fmt.Errorf("munmap %s: %w", m.Path, err)
	}
	m.Data = nil
	return nil
}
