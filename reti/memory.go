package reti

// pageSize is the number of words held by one lazily-allocated memory
// page. Rather than pre-allocate a flat array sized for the full 32-bit
// word address space, pages are allocated on first touch and indexed by
// a map from page number to page, spanning the full address range of
// the data region. (The emulator holds the code image as a plain slice.)
const pageSize = 16384

type page struct {
	words [pageSize]uint32
	valid [pageSize]bool
}

// Memory is a sparse, word-addressed 32-bit address space with a shadow
// per-word validity bit.
type Memory struct {
	pages map[uint32]*page
	// hi is the exclusive upper bound of the region known to contain a
	// written (or loaded) word: the data high-water mark.
	hi uint64
}

// NewMemory returns an empty memory region.
func NewMemory() *Memory {
	return &Memory{pages: make(map[uint32]*page)}
}

func (m *Memory) pageFor(addr uint32, create bool) *page {
	idx := addr / pageSize
	p, ok := m.pages[idx]
	if !ok {
		if !create {
			return nil
		}
		p = &page{}
		m.pages[idx] = p
	}
	return p
}

// Read returns the word at addr and whether it is valid.
func (m *Memory) Read(addr uint32) (uint32, bool) {
	p := m.pageFor(addr, false)
	if p == nil {
		return 0, false
	}
	off := addr % pageSize
	return p.words[off], p.valid[off]
}

// Write stores value at addr, marks it valid, and raises the high-water
// mark if needed.
func (m *Memory) Write(addr uint32, value uint32) {
	p := m.pageFor(addr, true)
	off := addr % pageSize
	p.words[off] = value
	p.valid[off] = true
	if next := uint64(addr) + 1; next > m.hi {
		m.hi = next
	}
}

// LoadImage marks words loaded from a code or data image as valid,
// starting at address 0, and returns the exclusive upper bound of the
// loaded range (the image length in words).
func (m *Memory) LoadImage(words []uint32) uint32 {
	for i, w := range words {
		m.Write(uint32(i), w)
	}
	return uint32(len(words))
}

// High returns the exclusive upper bound of the region that may contain
// valid words (the data high-water mark).
func (m *Memory) High() uint64 {
	return m.hi
}

// ValidWords iterates every valid word address below High(), in
// ascending order, calling fn(addr, value) for each. Used to produce the
// final data dump in the termination summary.
func (m *Memory) ValidWords(fn func(addr uint32, value uint32)) {
	// Collect and sort page indices so the walk is deterministic and in
	// ascending address order, matching the emulator's dump format.
	indices := make([]uint32, 0, len(m.pages))
	for idx := range m.pages {
		indices = append(indices, idx)
	}
	sortUint32s(indices)

	for _, idx := range indices {
		p := m.pages[idx]
		base := idx * pageSize
		for off := 0; off < pageSize; off++ {
			addr := base + uint32(off)
			if uint64(addr) >= m.hi {
				continue
			}
			if p.valid[off] {
				fn(addr, p.words[off])
			}
		}
	}
}

func sortUint32s(s []uint32) {
	// Small helper kept local and dependency-free: the page count for
	// any realistic ReTI program is tiny, so insertion sort is plenty.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
