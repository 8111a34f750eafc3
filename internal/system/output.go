package system

import (
	"time"

	"github.com/l1jgo/typereg/internal/core/ecs"
	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/metrics"
)

// MetricsSystem publishes per-type registry counts. Phase 3 (Output).
type MetricsSystem struct {
	table   *ecs.Table
	metrics *metrics.Metrics
}

func NewMetricsSystem(table *ecs.Table, m *metrics.Metrics) *MetricsSystem {
	return &MetricsSystem{table: table, metrics: m}
}

func (s *MetricsSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *MetricsSystem) Update(_ time.Duration) {
	s.metrics.Observe(s.table.Stats())
	s.metrics.IncTick()
}
