//go:build !linux

package devmem

// Map is not available outside Linux; there is no physical memory device to
// open.
func Map(opts MapOptions) (*Mapping, error) {
	return nil, ErrUnsupported
}

// Unmap is a no-op stub for non-Linux platforms.
func Unmap(m *Mapping) error {
	if m != nil {
		m.Data = nil
	}
	return nil
}
