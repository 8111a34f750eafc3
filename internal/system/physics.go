package system

import (
	"time"

	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/world"
)

// CollisionSystem runs a brute-force overlap pass over all colliders,
// indexing the dense registry directly. Phase 2 (Update).
type CollisionSystem struct {
	state *world.State
	pairs int
}

func NewCollisionSystem(state *world.State) *CollisionSystem {
	return &CollisionSystem{state: state}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Pairs returns the overlapping pairs found by the last pass.
func (s *CollisionSystem) Pairs() int { return s.pairs }

func (s *CollisionSystem) Update(_ time.Duration) {
	cs := s.state.Colliders().Instances()
	for _, c := range cs {
		c.Contacts = 0
	}
	s.pairs = 0
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			if cs[i].Overlaps(cs[j]) {
				cs[i].Contacts++
				cs[j].Contacts++
				s.pairs++
			}
		}
	}
}
