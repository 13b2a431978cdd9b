package mmio

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/valyala/bytebufferpool"
)

// Dump returns a hex dump of length bytes starting at offset, 16 bytes per
// line with an ASCII column. It reads through the normal access path, so
// the same bounds rules apply.
func (m *MMIO) Dump(offset, length uint64) (string, error) {
	data, err := m.ReadBytes(offset, length)
	if err != nil {
		return "", err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for line := 0; line < len(data); line += 16 {
		_, _ = fmt.Fprintf(buf, "%08x ", offset+uint64(line))
		end := line + 16
		if end > len(data) {
			end = len(data)
		}
		for i := line; i < line+16; i++ {
			if i < end {
				_, _ = fmt.Fprintf(buf, " %02x", data[i])
			} else {
				_, _ = buf.WriteString("   ")
			}
		}
		_, _ = buf.WriteString("  |")
		for i := line; i < end; i++ {
			c := data[i]
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			_ = buf.WriteByte(c)
		}
		_, _ = buf.WriteString("|\n")
	}
	return buf.String(), nil
}

// warnRAMOverlap flags windows that fall inside the host's RAM range. A
// peripheral register block normally sits outside it; a base below the RAM
// ceiling usually means a mistyped address. Heuristic only, debug mode only.
func warnRAMOverlap(base, size uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		internalLogger.debugf("ram overlap check skipped: %v", err)
		return
	}
	if base < vm.Total {
		internalLogger.warnf("window [%#x, +%d) falls inside system RAM (total=%#x); "+
			"verify the physical base address", base, size, vm.Total)
	}
}

// DebugRegionDetail prints every open region's window geometry to stdout.
func DebugRegionDetail() {
	for _, m := range OpenRegions() {
		fmt.Printf("name:%s device:%s base:%#x size:%d aligned_base:%#x aligned_size:%d adjust:%d\n",
			m.name, m.devicePath, m.base, m.size, m.alignedBase, m.alignedSize, m.adjust)
	}
}
