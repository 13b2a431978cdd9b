// Package mmio gives user space access to memory-mapped hardware registers
// without a kernel module. It maps a window of physical address space
// through the physical memory device (/dev/mem by default) and exposes
// bounds-checked, width-typed read and write accessors over it.
//
// An arbitrary physical address cannot be mapped directly: mappings must
// start on a page boundary, so the window is widened down to the enclosing
// page and every caller offset is shifted to compensate. Callers always
// address the window relative to the base they asked for.
//
// Accesses use the host CPU's byte order, not a fixed wire order; callers
// targeting cross-endian hardware must byte-swap themselves. A region is
// single-threaded by design: the package adds no locking, guarantees no
// atomicity or ordering across separate accesses, and leaves serialization
// with the caller when more than one accessor is in play. Mapping /dev/mem
// requires root (or CAP_SYS_RAWIO, subject to kernel lockdown).
//
// Example usage:
//
//	r, err := mmio.Open(0x4804_c000, 0x1000)
//	if err != nil {
//	  // ...
//	}
//	defer r.Close()
//	v, _ := r.Read32(0x13c)
//	_ = r.Write32(0x190, v|1<<22)
package mmio
