package mmio

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	m := newTestRegion(t, uint64(os.Getpagesize()), 32)
	require.NoError(t, m.WriteBytes(0, []byte("hello, registers!")))

	out, err := m.Dump(0, 32)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "00000000 "))
	assert.True(t, strings.HasPrefix(lines[1], "00000010 "))
	assert.Contains(t, lines[0], "68")      // 'h'
	assert.Contains(t, lines[0], "|hello") // ascii column
}

func TestDumpOutOfBounds(t *testing.T) {
	m := newTestRegion(t, uint64(os.Getpagesize()), 8)
	var oob *OutOfBoundsError
	_, err := m.Dump(0, 9)
	assert.ErrorAs(t, err, &oob)
}

func TestDumpClosed(t *testing.T) {
	m := newTestRegion(t, uint64(os.Getpagesize()), 8)
	require.NoError(t, m.Close())
	_, err := m.Dump(0, 8)
	assert.ErrorIs(t, err, ErrClosed)
}
