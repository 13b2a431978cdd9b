package mmio

import "github.com/prometheus/client_golang/prometheus"

// regionMetrics holds the per-region Prometheus counters. They are always
// maintained; nothing is exported unless the caller registers the region's
// Collector.
type regionMetrics struct {
	reads        prometheus.Counter
	writes       prometheus.Counter
	readBytes    prometheus.Counter
	writtenBytes prometheus.Counter
	faults       prometheus.Counter
}

func newRegionMetrics(region string) *regionMetrics {
	labels := prometheus.Labels{"region": region}
	return &regionMetrics{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mmio_reads_total",
			Help:        "Total number of register reads.",
			ConstLabels: labels,
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mmio_writes_total",
			Help:        "Total number of register writes.",
			ConstLabels: labels,
		}),
		readBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mmio_read_bytes_total",
			Help:        "Total bytes read from the mapped window.",
			ConstLabels: labels,
		}),
		writtenBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mmio_written_bytes_total",
			Help:        "Total bytes written to the mapped window.",
			ConstLabels: labels,
		}),
		faults: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "mmio_access_faults_total",
			Help:        "Total accesses rejected by the bounds check.",
			ConstLabels: labels,
		}),
	}
}

func (r *regionMetrics) observe(op accessOp, width int) {
	switch op {
	case opRead:
		r.reads.Inc()
		r.readBytes.Add(float64(width))
	case opWrite:
		r.writes.Inc()
		r.writtenBytes.Add(float64(width))
	}
}

func (r *regionMetrics) Describe(ch chan<- *prometheus.Desc) {
	r.reads.Describe(ch)
	r.writes.Describe(ch)
	r.readBytes.Describe(ch)
	r.writtenBytes.Describe(ch)
	r.faults.Describe(ch)
}

func (r *regionMetrics) Collect(ch chan<- prometheus.Metric) {
	r.reads.Collect(ch)
	r.writes.Collect(ch)
	r.readBytes.Collect(ch)
	r.writtenBytes.Collect(ch)
	r.faults.Collect(ch)
}

// Collector exposes the region's access counters for registration with a
// Prometheus registry. Counters carry a "region" label with the region name.
func (m *MMIO) Collector() prometheus.Collector { return m.metrics }
