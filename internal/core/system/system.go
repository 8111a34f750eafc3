package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: apply scenario and script operations
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: passes over dense component registries
	PhaseOutput                  // 3: publish counts
	PhaseCleanup                 // 4: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
