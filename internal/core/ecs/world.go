package ecs

// World owns the entity pool and the per-type Table. Components register
// themselves into the Table; the World only remembers which tokens belong to
// which entity so it can release them when the entity is destroyed.
// Destruction is deferred to FlushDestroyQueue, run once per tick.
type World struct {
	pool         *EntityPool
	table        *Table
	owned        map[EntityID][]Releaser
	destroyQueue []EntityID
	onDestroy    func(EntityID)
}

func NewWorld(opts Options) *World {
	return &World{
		pool:         NewEntityPool(),
		table:        NewTable(opts),
		owned:        make(map[EntityID][]Releaser, 256),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }
func (w *World) Table() *Table     { return w.table }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Own ties a registration token to an entity. The token is released when
// the entity is destroyed.
func (w *World) Own(id EntityID, tok Releaser) {
	w.owned[id] = append(w.owned[id], tok)
}

// OnDestroy installs a hook run for each entity before its tokens are
// released, while its components are still registered.
func (w *World) OnDestroy(fn func(EntityID)) {
	w.onDestroy = fn
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys every queued entity that is still alive,
// releasing its tokens in attach order. It returns the number destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		if w.onDestroy != nil {
			w.onDestroy(id)
		}
		for _, tok := range w.owned[id] {
			tok.Release()
		}
		delete(w.owned, id)
		w.pool.Destroy(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
