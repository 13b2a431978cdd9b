package mmio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsRegion(regions []*MMIO, m *MMIO) bool {
	for _, r := range regions {
		if r == m {
			return true
		}
	}
	return false
}

func TestRegistryTracksOpenRegions(t *testing.T) {
	page := uint64(os.Getpagesize())
	a := newTestRegionWithOptions(t, page, 8, Options{Name: "block-a"})
	b := newTestRegionWithOptions(t, page, 8, Options{Name: "block-b"})

	open := OpenRegions()
	assert.True(t, containsRegion(open, a))
	assert.True(t, containsRegion(open, b))

	require.NoError(t, a.Close())
	open = OpenRegions()
	assert.False(t, containsRegion(open, a))
	assert.True(t, containsRegion(open, b))
}

func TestRegistryKeysUniquePerInstance(t *testing.T) {
	page := uint64(os.Getpagesize())
	// Same name, same window: both must stay listed.
	a := newTestRegionWithOptions(t, page, 8, Options{Name: "dup"})
	b := newTestRegionWithOptions(t, page, 8, Options{Name: "dup"})

	open := OpenRegions()
	assert.True(t, containsRegion(open, a))
	assert.True(t, containsRegion(open, b))
	assert.NotEqual(t, a.key, b.key)
}
