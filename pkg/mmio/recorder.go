package mmio

import (
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

const defaultRecorderCap = 1024

// AccessRecord is one entry in a region's access trace.
type AccessRecord struct {
	Op     string // "read" or "write"
	Offset uint64 // caller offset, before alignment adjustment
	Width  int    // bytes accessed; the full length for byte-sequence ops
	Value  uint64 // register value; 0 for byte-sequence ops
	Time   time.Time
}

// accessRecorder keeps a bounded ring of the most recent accesses. It is a
// debugging aid; when the ring is full the oldest entry is dropped.
type accessRecorder struct {
	ring *queue.RingBuffer
}

func newAccessRecorder(capacity uint64) *accessRecorder {
	if capacity == 0 {
		capacity = defaultRecorderCap
	}
	return &accessRecorder{ring: queue.NewRingBuffer(capacity)}
}

func (r *accessRecorder) record(op accessOp, offset uint64, width int, value uint64) {
	name := "read"
	if op == opWrite {
		name = "write"
	}
	rec := AccessRecord{Op: name, Offset: offset, Width: width, Value: value, Time: time.Now()}
	ok, err := r.ring.Offer(rec)
	if err != nil {
		return // disposed
	}
	if !ok {
		_, _ = r.ring.Poll(time.Microsecond)
		_, _ = r.ring.Offer(rec)
	}
}

func (r *accessRecorder) drain() []AccessRecord {
	n := r.ring.Len()
	out := make([]AccessRecord, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := r.ring.Poll(time.Microsecond)
		if err != nil {
			break
		}
		rec, ok := v.(AccessRecord)
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out
}

func (r *accessRecorder) dispose() { r.ring.Dispose() }

// EnableAccessTrace turns on access tracing for the region with the given
// ring capacity (0 picks the default). Tracing is enabled automatically
// when `MMIO_DEBUG_MODE` is set.
func (m *MMIO) EnableAccessTrace(capacity uint64) {
	if m.rec == nil {
		m.rec = newAccessRecorder(capacity)
	}
}

// AccessTrace drains and returns the recorded accesses, oldest first. It
// returns nil when tracing is not enabled.
func (m *MMIO) AccessTrace() []AccessRecord {
	if m.rec == nil {
		return nil
	}
	return m.rec.drain()
}
