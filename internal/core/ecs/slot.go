package ecs

// Slot is the per-instance state a Registry keeps current. Types that register
// themselves embed a Slot; only the owning Registry writes to it.
type Slot struct {
	index      int
	registered bool
}

func (s *Slot) registrySlot() *Slot { return s }

// SlotIndex returns the instance's current position in its registry, or -1
// when it is not registered.
func (s *Slot) SlotIndex() int {
	if !s.registered {
		return -1
	}
	return s.index
}

// Registered reports whether the instance is currently held by a registry.
func (s *Slot) Registered() bool { return s.registered }

// Member is the constraint for registry element types: a pointer to a struct
// embedding Slot. The struct passes its own pointer in as its identity.
type Member interface {
	comparable
	registrySlot() *Slot
}
