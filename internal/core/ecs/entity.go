package ecs

// EntityID packs a 32-bit slot index (low bits) with a 32-bit generation
// (high bits). Destroying an entity bumps the generation of its slot, so old
// IDs stop being Alive. Index 0 is never issued, which keeps the zero
// EntityID meaning "none".
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool hands out generational IDs and recycles destroyed slots LIFO.
type EntityPool struct {
	generations []uint32 // generations[0] is the reserved zero slot
	freeList    []uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	return NewEntityID(idx, 0)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id. Stale or unknown IDs are ignored.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
}

// Live returns the number of entities created and not yet destroyed.
func (p *EntityPool) Live() int { return p.live }
