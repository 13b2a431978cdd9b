package mmio

import (
	"errors"
	"math"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDevicePath is the device node mapped when Options.DevicePath is
// empty.
const DefaultDevicePath = "/dev/mem"

// Options tunes how a region is opened. The zero value is usable and maps
// DefaultDevicePath without instrumentation.
type Options struct {
	// Name labels the region in logs, metrics and the open-region registry.
	// Defaults to a label derived from the physical base address.
	Name string

	// DevicePath is the device node to map. Defaults to DefaultDevicePath.
	// Pointing it at /dev/gpiomem or at a plain file keeps the accessor
	// logic intact while changing what backs it; tests rely on the latter.
	DevicePath string

	// Meter and Tracer enable OpenTelemetry instrumentation of the region
	// when non-nil. Construction and release are traced; accesses are
	// counted, never traced, since they are plain memory operations.
	Meter  metric.Meter
	Tracer trace.Tracer
}

// DefaultOptions returns the options Open uses.
func DefaultOptions() Options {
	return Options{DevicePath: DefaultDevicePath}
}

func verifyOptions(size uint64, opts *Options) error {
	if size == 0 {
		return errors.New("mmio: region size must be positive")
	}
	if opts.DevicePath == "" {
		opts.DevicePath = DefaultDevicePath
	}
	// The platform mmap takes an int length; reject windows it cannot
	// express rather than truncating.
	if size > uint64(math.MaxInt) {
		return errors.New("mmio: region size exceeds the addressable mapping length")
	}
	return nil
}
