package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/data"
	"github.com/l1jgo/typereg/internal/scripting"
	"github.com/l1jgo/typereg/internal/world"
)

// InputSystem applies the YAML scenario ops and the Lua on_tick hook for the
// current tick. Either source may be nil. Phase 0 (Input).
type InputSystem struct {
	state    *world.State
	scenario *data.Scenario
	script   *scripting.Engine
	log      *zap.Logger
	tick     uint64
	failures int
}

func NewInputSystem(state *world.State, scenario *data.Scenario, script *scripting.Engine, log *zap.Logger) *InputSystem {
	return &InputSystem{state: state, scenario: scenario, script: script, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Failures returns how many ops or script calls have failed so far.
func (s *InputSystem) Failures() int { return s.failures }

func (s *InputSystem) Update(_ time.Duration) {
	s.tick++
	if s.scenario != nil {
		for _, op := range s.scenario.OpsAt(s.tick) {
			if err := s.apply(op); err != nil {
				s.failures++
				s.log.Warn("scenario op failed",
					zap.Uint64("tick", s.tick),
					zap.String("op", string(op.Op)),
					zap.String("entity", op.Entity),
					zap.Error(err))
			}
		}
	}
	if s.script != nil {
		if err := s.script.OnTick(s.tick); err != nil {
			s.failures++
		}
	}
}

func (s *InputSystem) apply(op data.Op) error {
	switch op.Op {
	case data.OpSpawn:
		_, err := s.state.Spawn(op.Entity, op.Kinds...)
		return err
	case data.OpAttach:
		for _, k := range op.Kinds {
			if err := s.state.Attach(op.Entity, k); err != nil {
				return err
			}
		}
		return nil
	case data.OpDestroy:
		return s.state.Destroy(op.Entity)
	}
	return data.ErrUnknownOp
}

// ScenarioDone reports whether every scenario tick has been applied.
func (s *InputSystem) ScenarioDone() bool {
	return s.scenario == nil || s.tick >= s.scenario.LastTick()
}

