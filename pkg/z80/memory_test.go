package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryReadWrite(t *testing.T) {
	m := NewFlatMemory()
	m.W8(0x1000, 0x42)
	assert.Equal(t, uint8(0x42), m.R8(0x1000))

	m.W16(0x2000, 0xCAFE)
	assert.Equal(t, uint16(0xCAFE), m.R16(0x2000))
	assert.Equal(t, uint8(0xFE), m.R8(0x2000))
	assert.Equal(t, uint8(0xCA), m.R8(0x2001))
}

func TestMemoryUnmappedFloats(t *testing.T) {
	m := NewMemory()
	assert.Equal(t, uint8(0xFF), m.R8(0x4000))
	m.W8(0x4000, 0x11) // dropped, nothing mapped
	assert.Equal(t, uint8(0xFF), m.R8(0x4000))
}

func TestMemoryMap(t *testing.T) {
	m := NewMemory()
	m.Map(0, 0, 0x4000, true, 0x400)
	m.W8(0x4000, 0x99)
	assert.Equal(t, uint8(0x99), m.R8(0x4000))
	assert.Equal(t, uint8(0xFF), m.R8(0x4400)) // one page beyond, still unmapped

	m.Unmap(0, 0x400, 0x4000)
	assert.Equal(t, uint8(0xFF), m.R8(0x4000))
}

func TestMemoryReadOnlyDropsWrites(t *testing.T) {
	m := NewMemory()
	m.MapBytes(0, 0, 0, false, make([]byte, 0x400))
	m.W8(0, 0x55)
	assert.Equal(t, uint8(0), m.R8(0))
	m.W8Force(0, 0x55)
	assert.Equal(t, uint8(0x55), m.R8(0))
}

func TestMemoryLayersHighestPriorityWins(t *testing.T) {
	m := NewMemory()
	m.Map(1, 0x400, 0, true, 0x400)  // layer 1 (RAM), heap offset 0x400
	m.Map(0, 0x800, 0, false, 0x400) // layer 0 (ROM), heap offset 0x800, overrides layer 1

	m.Heap[0x400] = 0xAA                  // what RAM holds at 0x0000
	m.Heap[0x800] = 0xBB                  // what ROM holds at 0x0000
	assert.Equal(t, uint8(0xBB), m.R8(0)) // layer 0 wins

	m.UnmapLayer(0)
	assert.Equal(t, uint8(0xAA), m.R8(0)) // falls through to layer 1

	m.UnmapAll()
	assert.Equal(t, uint8(0xFF), m.R8(0))
}

// Four 32 KiB banks, one per layer, the highest-priority one mapped at
// 0xC000 so it wraps around to cover 0x0000-0x3FFF as well.
func TestMemoryLayeredBankSwitchWithWraparound(t *testing.T) {
	m := NewMemory()
	fill := func(heapOffset int, val byte) {
		for i := 0; i < 0x8000; i++ {
			m.Heap[heapOffset+i] = val
		}
	}
	fill(0x00000, 0x11)
	fill(0x08000, 0x22)
	fill(0x10000, 0x33)
	fill(0x18000, 0x44)
	m.Map(3, 0x00000, 0x0000, true, 0x8000)
	m.Map(2, 0x08000, 0x4000, true, 0x8000)
	m.Map(1, 0x10000, 0x8000, true, 0x8000)
	m.Map(0, 0x18000, 0xC000, true, 0x8000)

	assert.Equal(t, uint8(0x44), m.R8(0x0000)) // layer 0 wraps past 0xFFFF
	assert.Equal(t, uint8(0x22), m.R8(0x4000))
	assert.Equal(t, uint8(0x33), m.R8(0x8000))
	assert.Equal(t, uint8(0x44), m.R8(0xC000))

	m.UnmapLayer(0)
	assert.Equal(t, uint8(0x11), m.R8(0x0000))
	assert.Equal(t, uint8(0x33), m.R8(0xC000))
}

func TestMemoryWriteForceLoadsImage(t *testing.T) {
	m := NewMemory()
	m.Map(0, 0, 0, false, 0x400)
	m.Write(0, []byte{1, 2, 3, 4})
	assert.Equal(t, uint8(1), m.R8(0))
	assert.Equal(t, uint8(4), m.R8(3))
}
