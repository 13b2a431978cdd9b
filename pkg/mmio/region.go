package mmio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unsafe"

	"go.opentelemetry.io/otel/trace"

	"github.com/srediag/mmio/internal/devmem"
)

// MMIO is one mapped window of physical address space. It owns the mapping
// exclusively and is the only path to the underlying memory; metadata
// (base, size, alignment) is fixed at Open and only the mapped bytes change
// afterwards.
//
// An MMIO is not safe for concurrent use. The physical range behind it may
// still change under the process at any time: hardware and other mappings
// of the same range are outside this package's control, and no atomicity or
// ordering is guaranteed across separate accesses.
type MMIO struct {
	name       string
	devicePath string

	base uint64 // physical base, as requested
	size uint64 // length, as requested

	// The mapping itself must start on a page boundary; the window is
	// widened down to the enclosing page and every caller offset is shifted
	// by adjust to compensate.
	pageSize    uint64
	alignedBase uint64
	alignedSize uint64
	adjust      uint64

	mapping *devmem.Mapping
	mem     []byte // mapping.Data; nil marks the region closed

	key     string
	metrics *regionMetrics
	otel    *otelCounters
	tracer  trace.Tracer
	rec     *accessRecorder
}

type accessOp uint8

const (
	opRead accessOp = iota
	opWrite
)

// alignWindow widens [base, base+size) down to the enclosing page boundary.
// adjust is the distance from the aligned start back to base; it is always
// below pageSize.
func alignWindow(base, size, pageSize uint64) (alignedBase, alignedSize, adjust uint64) {
	alignedBase = base - base%pageSize
	adjust = base - alignedBase
	alignedSize = size + adjust
	return alignedBase, alignedSize, adjust
}

// Open maps size bytes of physical address space starting at base through
// the default physical memory device. See OpenWithOptions.
func Open(base, size uint64) (*MMIO, error) {
	return OpenWithOptions(base, size, DefaultOptions())
}

// OpenWithOptions maps size bytes of physical address space starting at
// base. The device descriptor used to establish the mapping is closed
// before Open returns; only the mapping is held.
//
// Accesses use the byte order of the host CPU. Callers talking to
// cross-endian hardware must swap themselves.
func OpenWithOptions(base, size uint64, opts Options) (*MMIO, error) {
	if err := verifyOptions(size, &opts); err != nil {
		return nil, err
	}
	pageSize := uint64(os.Getpagesize())
	alignedBase, alignedSize, adjust := alignWindow(base, size, pageSize)
	if alignedSize < size || alignedSize > uint64(math.MaxInt) || alignedBase > uint64(math.MaxInt64) {
		return nil, fmt.Errorf("mmio: window [%#x, +%d) is not mappable", base, size)
	}

	span := startSpan(opts.Tracer, "mmio.Open")
	defer span.End()

	mapping, err := devmem.Map(devmem.MapOptions{
		Path:   opts.DevicePath,
		Base:   int64(alignedBase),
		Length: int(alignedSize),
	})
	if err != nil {
		if errors.Is(err, devmem.ErrUnsupported) {
			return nil, err
		}
		internalLogger.errorf("map %s base=%#x size=%d: %v", opts.DevicePath, base, size, err)
		return nil, &MappingError{Path: opts.DevicePath, Err: err}
	}

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("mmio-%#x", base)
	}
	m := &MMIO{
		name:        name,
		devicePath:  mapping.Path,
		base:        base,
		size:        size,
		pageSize:    pageSize,
		alignedBase: alignedBase,
		alignedSize: alignedSize,
		adjust:      adjust,
		mapping:     mapping,
		mem:         mapping.Data,
		metrics:     newRegionMetrics(name),
		otel:        newOtelCounters(opts.Meter),
		tracer:      opts.Tracer,
	}
	if debugMode {
		m.rec = newAccessRecorder(defaultRecorderCap)
		warnRAMOverlap(base, size)
	}
	registerRegion(m)
	internalLogger.infof("mapped %s: base=%#x size=%d aligned=[%#x, +%d)",
		name, base, size, alignedBase, alignedSize)
	return m, nil
}

// window shifts a caller offset by the alignment adjustment and checks that
// n bytes starting there stay inside the mapped window.
func (m *MMIO) window(offset, n uint64) (int, error) {
	off := offset + m.adjust
	end := off + n
	if off < offset || end < off || end > m.alignedSize {
		m.metrics.faults.Inc()
		return 0, &OutOfBoundsError{Offset: offset, Length: n, Window: m.alignedSize}
	}
	return int(off), nil
}

// Read8 reads the byte at offset.
func (m *MMIO) Read8(offset uint64) (uint8, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	off, err := m.window(offset, 1)
	if err != nil {
		return 0, err
	}
	v := m.mem[off]
	m.observe(opRead, offset, 1, uint64(v))
	return v, nil
}

// Read16 reads a 16-bit value at offset in host byte order.
func (m *MMIO) Read16(offset uint64) (uint16, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	off, err := m.window(offset, 2)
	if err != nil {
		return 0, err
	}
	v := *(*uint16)(unsafe.Pointer(&m.mem[off]))
	m.observe(opRead, offset, 2, uint64(v))
	return v, nil
}

// Read32 reads a 32-bit value at offset in host byte order.
func (m *MMIO) Read32(offset uint64) (uint32, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	off, err := m.window(offset, 4)
	if err != nil {
		return 0, err
	}
	v := *(*uint32)(unsafe.Pointer(&m.mem[off]))
	m.observe(opRead, offset, 4, uint64(v))
	return v, nil
}

// ReadUint reads a register of width 1, 2 or 4 bytes, for callers whose
// access width is only known at run time.
func (m *MMIO) ReadUint(offset uint64, width int) (uint64, error) {
	switch width {
	case 1:
		v, err := m.Read8(offset)
		return uint64(v), err
	case 2:
		v, err := m.Read16(offset)
		return uint64(v), err
	case 4:
		v, err := m.Read32(offset)
		return uint64(v), err
	}
	return 0, ErrInvalidWidth
}

// ReadBytes copies length bytes starting at offset out of the window. The
// returned slice is owned by the caller and does not alias the mapping.
func (m *MMIO) ReadBytes(offset, length uint64) ([]byte, error) {
	if m.mem == nil {
		return nil, ErrClosed
	}
	off, err := m.window(offset, length)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, m.mem[off:uint64(off)+length])
	m.observe(opRead, offset, int(length), 0)
	return buf, nil
}

// Write8 stores value at offset. The store goes straight to the mapping and
// is immediately visible to any other observer of the physical range.
func (m *MMIO) Write8(offset uint64, value uint8) error {
	if m.mem == nil {
		return ErrClosed
	}
	off, err := m.window(offset, 1)
	if err != nil {
		return err
	}
	m.mem[off] = value
	m.observe(opWrite, offset, 1, uint64(value))
	return nil
}

// Write16 stores a 16-bit value at offset in host byte order.
func (m *MMIO) Write16(offset uint64, value uint16) error {
	if m.mem == nil {
		return ErrClosed
	}
	off, err := m.window(offset, 2)
	if err != nil {
		return err
	}
	*(*uint16)(unsafe.Pointer(&m.mem[off])) = value
	m.observe(opWrite, offset, 2, uint64(value))
	return nil
}

// Write32 stores a 32-bit value at offset in host byte order.
func (m *MMIO) Write32(offset uint64, value uint32) error {
	if m.mem == nil {
		return ErrClosed
	}
	off, err := m.window(offset, 4)
	if err != nil {
		return err
	}
	*(*uint32)(unsafe.Pointer(&m.mem[off])) = value
	m.observe(opWrite, offset, 4, uint64(value))
	return nil
}

// WriteUint stores a register of width 1, 2 or 4 bytes. Unlike the typed
// writers, the value range cannot be enforced by the signature, so a value
// that does not fit the width fails with RangeError.
func (m *MMIO) WriteUint(offset uint64, width int, value uint64) error {
	switch width {
	case 1, 2, 4:
		if max := uint64(1)<<(8*width) - 1; value > max {
			return &RangeError{Value: value, Width: width}
		}
	default:
		return ErrInvalidWidth
	}
	switch width {
	case 1:
		return m.Write8(offset, uint8(value))
	case 2:
		return m.Write16(offset, uint16(value))
	default:
		return m.Write32(offset, uint32(value))
	}
}

// WriteBytes copies data byte for byte into the window at offset.
func (m *MMIO) WriteBytes(offset uint64, data []byte) error {
	if m.mem == nil {
		return ErrClosed
	}
	off, err := m.window(offset, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(m.mem[off:], data)
	m.observe(opWrite, offset, len(data), 0)
	return nil
}

// Close releases the mapping. It is idempotent: the first call unmaps and
// reports any release failure, every later call is a no-op returning nil.
// After Close all accesses fail with ErrClosed.
func (m *MMIO) Close() error {
	if m.mem == nil {
		return nil
	}
	span := startSpan(m.tracer, "mmio.Close")
	defer span.End()
	unregisterRegion(m)
	if m.rec != nil {
		m.rec.dispose()
	}
	mapping := m.mapping
	m.mapping = nil
	m.mem = nil
	if err := devmem.Unmap(mapping); err != nil {
		internalLogger.errorf("release %s: %v", m.name, err)
		return &MappingError{Path: m.devicePath, Err: err}
	}
	internalLogger.debugf("released %s", m.name)
	return nil
}

// Closed reports whether the region has been released.
func (m *MMIO) Closed() bool { return m.mem == nil }

// Name returns the region label used in logs, metrics and the registry.
func (m *MMIO) Name() string { return m.name }

// Base returns the physical base address as requested, without alignment.
func (m *MMIO) Base() uint64 { return m.base }

// Size returns the requested length of the window in bytes.
func (m *MMIO) Size() uint64 { return m.size }

// Pointer returns a borrowed pointer to the first byte of the requested
// window inside the mapping, for handing to native APIs that need a raw
// address. It confers no ownership and is valid exactly while the region is
// open; after Close it returns nil.
func (m *MMIO) Pointer() unsafe.Pointer {
	if m.mem == nil {
		return nil
	}
	return unsafe.Pointer(&m.mem[m.adjust])
}

func (m *MMIO) String() string {
	return fmt.Sprintf("MMIO 0x%08x (size=%d)", m.base, m.size)
}

func (m *MMIO) observe(op accessOp, offset uint64, width int, value uint64) {
	m.metrics.observe(op, width)
	m.otel.observe(op)
	if m.rec != nil {
		m.rec.record(op, offset, width, value)
	}
}
