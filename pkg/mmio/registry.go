package mmio

import (
	"fmt"
	"sort"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// openRegions tracks every open region in the process, for debug listings
// and health adapters. Keys stay unique even when the same window is mapped
// twice.
var (
	openRegions = cmap.New[*MMIO]()
	regionSeq   atomic.Uint64
)

func registerRegion(m *MMIO) {
	m.key = fmt.Sprintf("%s#%d", m.name, regionSeq.Add(1))
	openRegions.Set(m.key, m)
}

func unregisterRegion(m *MMIO) {
	openRegions.Remove(m.key)
}

// OpenRegions returns a snapshot of the regions currently open in this
// process, sorted by name.
func OpenRegions() []*MMIO {
	out := make([]*MMIO, 0, openRegions.Count())
	for _, m := range openRegions.Items() {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}
