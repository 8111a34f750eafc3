package system

import (
	"time"

	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/metrics"
	"github.com/l1jgo/typereg/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup). metrics may be nil.
type CleanupSystem struct {
	state   *world.State
	metrics *metrics.Metrics
}

func NewCleanupSystem(state *world.State, m *metrics.Metrics) *CleanupSystem {
	return &CleanupSystem{state: state, metrics: m}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	n := s.state.Flush()
	if s.metrics != nil {
		s.metrics.AddDestroyed(n)
	}
}
