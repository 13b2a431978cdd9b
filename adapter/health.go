// Package adapter integrates mmio regions with external monitoring
// systems.
package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/mmio/pkg/mmio"
)

// RegionOpen returns a check that passes while the region is open. Wire it
// into a liveness or readiness handler for processes whose correctness
// depends on the mapping staying alive.
func RegionOpen(r *mmio.MMIO) healthcheck.Check {
	return func() error {
		if r.Closed() {
			return fmt.Errorf("region %s is closed", r.Name())
		}
		return nil
	}
}

// Handler builds a healthcheck handler with one liveness check per region.
func Handler(regions ...*mmio.MMIO) healthcheck.Handler {
	h := healthcheck.NewHandler()
	for _, r := range regions {
		h.AddLivenessCheck("region-"+r.Name(), RegionOpen(r))
	}
	return h
}
