package world

import (
	"mini-terrain/internal/profiling"
)

// Handle refers to a pool slot as it was at one assignment. A handle goes
// stale as soon as its slot is deactivated; it never resolves to whatever
// chunk the slot is reassigned to later.
type Handle struct {
	slot uint32
	gen  uint32
}

type slot struct {
	chunk  *Chunk
	gen    uint32
	active bool
}

// Pool maps chunk indices to live chunks and recycles deactivated chunks
// instead of dropping them. Not safe for concurrent use; the owning session
// serializes access.
type Pool struct {
	slots []slot
	live  map[Index]Handle
	free  []uint32 // reuse queue, oldest first
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		live: make(map[Index]Handle),
	}
}

// Instantiate assigns a chunk to index, reusing the oldest deactivated chunk
// when one is queued. A chunk already registered under index is deactivated
// first. The returned chunk still needs Setup.
func (p *Pool) Instantiate(index Index) (Handle, *Chunk) {
	defer profiling.Track("world.Pool.Instantiate")()
	p.Deactivate(index)

	var id uint32
	if len(p.free) == 0 {
		id = uint32(len(p.slots))
		p.slots = append(p.slots, slot{chunk: NewChunk()})
	} else {
		id = p.free[0]
		p.free = p.free[1:]
	}

	s := &p.slots[id]
	s.gen++
	s.active = true

	h := Handle{slot: id, gen: s.gen}
	p.live[index] = h
	return h, s.chunk
}

// Deactivate unregisters each live index and queues its chunk for reuse.
// Indices without a live chunk are ignored. It returns how many chunks
// were deactivated.
func (p *Pool) Deactivate(indices ...Index) int {
	n := 0
	for _, index := range indices {
		h, ok := p.live[index]
		if !ok {
			continue
		}
		delete(p.live, index)

		s := &p.slots[h.slot]
		s.active = false
		s.gen++
		p.free = append(p.free, h.slot)
		n++
	}
	return n
}

// Get returns the live chunk registered under index.
func (p *Pool) Get(index Index) (*Chunk, bool) {
	h, ok := p.live[index]
	if !ok {
		return nil, false
	}
	return p.Resolve(h)
}

// HandleOf returns the current handle for index.
func (p *Pool) HandleOf(index Index) (Handle, bool) {
	h, ok := p.live[index]
	return h, ok
}

// Resolve returns the chunk for h if h is still current.
func (p *Pool) Resolve(h Handle) (*Chunk, bool) {
	if int(h.slot) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.slot]
	if !s.active || s.gen != h.gen {
		return nil, false
	}
	return s.chunk, true
}

// Live is the number of registered chunks.
func (p *Pool) Live() int { return len(p.live) }

// Free is the number of chunks waiting for reuse.
func (p *Pool) Free() int { return len(p.free) }

// Slots is the number of chunk instances ever allocated.
func (p *Pool) Slots() int { return len(p.slots) }

// Indices returns the registered chunk indices in no particular order.
func (p *Pool) Indices() []Index {
	out := make([]Index, 0, len(p.live))
	for index := range p.live {
		out = append(out, index)
	}
	return out
}
