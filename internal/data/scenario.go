package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/typereg/internal/component"
)

// OpKind is a scenario operation.
type OpKind string

const (
	OpSpawn   OpKind = "spawn"   // create entity with Kinds attached
	OpAttach  OpKind = "attach"  // add Kinds to an existing entity
	OpDestroy OpKind = "destroy" // queue entity for end-of-tick destruction
)

var ErrUnknownOp = errors.New("unknown scenario op")

// Op is one scripted registry mutation.
type Op struct {
	Op     OpKind           `yaml:"op"`
	Entity string           `yaml:"entity"`
	Kinds  []component.Kind `yaml:"kinds"`
}

// TickOps groups the ops applied at the start of one tick.
type TickOps struct {
	Tick uint64 `yaml:"tick"`
	Ops  []Op   `yaml:"ops"`
}

// Scenario is a fixed list of operations keyed by tick number.
type Scenario struct {
	Name   string    `yaml:"name"`
	Ticks  []TickOps `yaml:"ticks"`
	byTick map[uint64][]Op
	last   uint64
}

// OpsAt returns the ops for tick, or nil.
func (s *Scenario) OpsAt(tick uint64) []Op {
	return s.byTick[tick]
}

// LastTick returns the highest tick that carries ops.
func (s *Scenario) LastTick() uint64 { return s.last }

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	s.byTick = make(map[uint64][]Op, len(s.Ticks))
	for _, t := range s.Ticks {
		if t.Tick == 0 {
			return nil, errors.New("tick numbers start at 1")
		}
		for i, op := range t.Ops {
			if err := op.validate(); err != nil {
				return nil, fmt.Errorf("tick %d op %d: %w", t.Tick, i, err)
			}
		}
		s.byTick[t.Tick] = append(s.byTick[t.Tick], t.Ops...)
		if t.Tick > s.last {
			s.last = t.Tick
		}
	}
	return &s, nil
}

func (op Op) validate() error {
	switch op.Op {
	case OpSpawn, OpDestroy:
	case OpAttach:
		if len(op.Kinds) == 0 {
			return errors.New("attach needs at least one kind")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
	if op.Entity == "" {
		return fmt.Errorf("%s: missing entity", op.Op)
	}
	for _, k := range op.Kinds {
		if _, err := component.ParseKind(string(k)); err != nil {
			return err
		}
	}
	return nil
}
