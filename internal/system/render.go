package system

import (
	"time"

	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/world"
)

// RenderSystem draws every live renderer by walking the dense renderer
// registry. Nothing is drawn while there is no main camera. Phase 2 (Update).
type RenderSystem struct {
	state     *world.State
	lastDrawn int
}

func NewRenderSystem(state *world.State) *RenderSystem {
	return &RenderSystem{state: state}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// LastDrawn returns how many renderers the last tick drew.
func (s *RenderSystem) LastDrawn() int { return s.lastDrawn }

func (s *RenderSystem) Update(_ time.Duration) {
	s.lastDrawn = 0
	if s.state.MainCamera() == nil {
		return
	}
	for _, r := range s.state.Renderers().Instances() {
		r.Frames++
		s.lastDrawn++
	}
}
