package adapter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/mmio/pkg/mmio"
)

func newTestRegion(t *testing.T) *mmio.MMIO {
	t.Helper()
	page := os.Getpagesize()
	path := filepath.Join(t.TempDir(), "mem")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(int64(page)))
	require.NoError(t, f.Close())

	m, err := mmio.OpenWithOptions(0, 8, mmio.Options{Name: "health-test", DevicePath: path})
	if errors.Is(err, mmio.ErrUnsupportedPlatform) {
		t.Skip("physical memory mapping not supported on this platform")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRegionOpenCheck(t *testing.T) {
	m := newTestRegion(t)
	check := RegionOpen(m)
	assert.NoError(t, check())

	require.NoError(t, m.Close())
	assert.Error(t, check())
}

func TestHandlerLiveness(t *testing.T) {
	m := newTestRegion(t)
	h := Handler(m)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusOK, rw.Code)

	require.NoError(t, m.Close())
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusServiceUnavailable, rw.Code)
}
