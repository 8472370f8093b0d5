package z80

const (
	pageShift = 10 // 1 KiB pages
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
	numPages  = (1 << 16) / pageSize
	numLayers = 4
	heapSize  = 128 * pageSize
)

// page is one 1 KiB mapping record: where in the heap it lives, whether
// it's writable, and whether it's mapped at all.
type page struct {
	offset   int
	writable bool
	mapped   bool
}

func (p *page) unmap() { *p = page{} }

// Memory is the Z80's 64 KiB address space, viewed through 64 pages of
// 1 KiB, each independently bank-switchable across 4 priority-ordered
// overlay layers (0 highest, 3 lowest). Mapped bytes live in a single
// embedded 128 KiB heap that is never reallocated; Memory never holds a
// reference to memory it doesn't own.
//
// Reads of unmapped addresses return 0xFF; writes to unmapped or
// read-only pages are silently dropped. This models the "floating bus"
// behavior of real 8-bit hardware and is not surfaced as an error.
type Memory struct {
	pages  [numPages]page
	layers [numLayers][numPages]page
	Heap   [heapSize]byte
}

// NewMemory returns a Memory object with nothing mapped.
func NewMemory() *Memory {
	return &Memory{}
}

// NewFlatMemory returns a Memory object with the entire 64 KiB address
// range mapped writable to heap offset 0 on layer 0 — a convenience for
// tests and quick scripting.
func NewFlatMemory() *Memory {
	m := NewMemory()
	m.Map(0, 0, 0, true, 1<<16)
	return m
}

// Map records a mapping in the named layer (heap_offset..+size at cpu_addr)
// and recomputes the resolved page table. Addresses and size must be
// page-aligned; this is a host programming contract, not a runtime error.
func (m *Memory) Map(layer, heapOffset, addr int, writable bool, size int) {
	if size&pageMask != 0 || addr&pageMask != 0 {
		panic("z80: Memory.Map requires page-aligned addr/size")
	}
	num := size >> pageShift
	for i := 0; i < num; i++ {
		off := i * pageSize
		idx := ((addr + off) & 0xFFFF) >> pageShift
		m.layers[layer][idx] = page{offset: heapOffset + off, writable: writable, mapped: true}
	}
	m.updateMapping()
}

// MapBytes maps as Map does, and copies content into the heap at
// heapOffset. len(content) must be page-aligned.
func (m *Memory) MapBytes(layer, heapOffset, addr int, writable bool, content []byte) {
	if len(content)&pageMask != 0 {
		panic("z80: Memory.MapBytes requires page-aligned content length")
	}
	m.Map(layer, heapOffset, addr, writable, len(content))
	copy(m.Heap[heapOffset:heapOffset+len(content)], content)
}

// Unmap clears a page range in the named layer.
func (m *Memory) Unmap(layer, size, addr int) {
	if size&pageMask != 0 || addr&pageMask != 0 {
		panic("z80: Memory.Unmap requires page-aligned addr/size")
	}
	num := size >> pageShift
	for i := 0; i < num; i++ {
		idx := ((addr + i*pageSize) & 0xFFFF) >> pageShift
		m.layers[layer][idx].unmap()
	}
	m.updateMapping()
}

// UnmapLayer clears every page in one layer.
func (m *Memory) UnmapLayer(layer int) {
	for i := range m.layers[layer] {
		m.layers[layer][i].unmap()
	}
	m.updateMapping()
}

// UnmapAll clears every page in every layer.
func (m *Memory) UnmapAll() {
	for l := range m.layers {
		for i := range m.layers[l] {
			m.layers[l][i].unmap()
		}
	}
	m.updateMapping()
}

// updateMapping re-derives the CPU-visible page table: for each page, pick
// the highest-priority (lowest layer number) mapped entry, or leave it
// unmapped if no layer covers it.
func (m *Memory) updateMapping() {
	for i := 0; i < numPages; i++ {
		found := false
		for l := 0; l < numLayers; l++ {
			if m.layers[l][i].mapped {
				m.pages[i] = m.layers[l][i]
				found = true
				break
			}
		}
		if !found {
			m.pages[i].unmap()
		}
	}
}

// R8 reads an unsigned byte from a 16-bit address.
func (m *Memory) R8(addr uint16) uint8 {
	p := &m.pages[addr>>pageShift]
	if !p.mapped {
		return 0xFF
	}
	return m.Heap[p.offset+int(addr&pageMask)]
}

// RS8 reads a sign-extended byte from a 16-bit address.
func (m *Memory) RS8(addr uint16) int8 {
	return int8(m.R8(addr))
}

// W8 writes an unsigned byte, dropped silently if the page is unmapped or
// read-only.
func (m *Memory) W8(addr uint16, val uint8) {
	p := &m.pages[addr>>pageShift]
	if p.mapped && p.writable {
		m.Heap[p.offset+int(addr&pageMask)] = val
	}
}

// W8Force writes ignoring the writable flag, but still requires mapping.
func (m *Memory) W8Force(addr uint16, val uint8) {
	p := &m.pages[addr>>pageShift]
	if p.mapped {
		m.Heap[p.offset+int(addr&pageMask)] = val
	}
}

// R16 reads a little-endian word split across two independently-wrapping
// 8-bit accesses at addr and addr+1.
func (m *Memory) R16(addr uint16) uint16 {
	lo := m.R8(addr)
	hi := m.R8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// W16 writes a little-endian word, split as R16 reads one.
func (m *Memory) W16(addr uint16, val uint16) {
	m.W8(addr, uint8(val))
	m.W8(addr+1, uint8(val>>8))
}

// Write force-writes a contiguous run of bytes, ignoring the writable flag
// (used to load ROM/RAM images into already-mapped regions).
func (m *Memory) Write(addr uint16, data []byte) {
	for i, b := range data {
		m.W8Force(addr+uint16(i), b)
	}
}
