package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/l1jgo/typereg/internal/component"
	"github.com/l1jgo/typereg/internal/core/ecs"
	"github.com/l1jgo/typereg/internal/core/event"
	"go.uber.org/zap"
)

var (
	ErrUnknownEntity      = errors.New("unknown entity")
	ErrDuplicateEntity    = errors.New("entity name already in use")
	ErrDuplicateComponent = errors.New("entity already has component")
)

// entityInfo is what State knows about one named entity. The components
// themselves live in their per-type registries.
type entityInfo struct {
	id       ecs.EntityID
	name     string
	renderer *component.Renderer
	collider *component.Collider
	camera   *component.Camera
}

// State owns named entities and their components. Components register into
// the ECS world's per-type table on attach and are released when their
// entity is flushed. Single-goroutine access only (game loop).
type State struct {
	w      *ecs.World
	bus    *event.Bus
	log    *zap.Logger
	byName map[string]*entityInfo
	byID   map[ecs.EntityID]*entityInfo

	mainCamera *component.Camera
}

func NewState(w *ecs.World, bus *event.Bus, log *zap.Logger) *State {
	s := &State{
		w:      w,
		bus:    bus,
		log:    log,
		byName: make(map[string]*entityInfo),
		byID:   make(map[ecs.EntityID]*entityInfo),
	}
	w.OnDestroy(s.beforeDestroy)
	return s
}

// Renderers returns the dense registry of all live renderers.
func (s *State) Renderers() *ecs.Registry[*component.Renderer] {
	return ecs.For[*component.Renderer](s.w.Table())
}

func (s *State) Colliders() *ecs.Registry[*component.Collider] {
	return ecs.For[*component.Collider](s.w.Table())
}

func (s *State) Cameras() *ecs.Registry[*component.Camera] {
	return ecs.For[*component.Camera](s.w.Table())
}

// MainCamera returns the current main camera, or nil when none is attached.
func (s *State) MainCamera() *component.Camera { return s.mainCamera }

// Count returns the number of live components of kind k.
func (s *State) Count(k component.Kind) int {
	switch k {
	case component.KindRenderer:
		return s.Renderers().Len()
	case component.KindCollider:
		return s.Colliders().Len()
	case component.KindCamera:
		return s.Cameras().Len()
	}
	return 0
}

// Entities returns the number of named entities, including those queued
// for destruction.
func (s *State) Entities() int { return len(s.byName) }

// Names returns entity names in sorted order.
func (s *State) Names() []string {
	out := make([]string, 0, len(s.byName))
	for n := range s.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the entity ID for name.
func (s *State) Lookup(name string) (ecs.EntityID, bool) {
	info, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return info.id, true
}

// Spawn creates a named entity and attaches the given kinds in order.
func (s *State) Spawn(name string, kinds ...component.Kind) (ecs.EntityID, error) {
	if _, ok := s.byName[name]; ok {
		return 0, fmt.Errorf("spawn %q: %w", name, ErrDuplicateEntity)
	}
	seen := make(map[component.Kind]bool, len(kinds))
	for _, k := range kinds {
		if _, err := component.ParseKind(string(k)); err != nil {
			return 0, fmt.Errorf("spawn %q: %w", name, err)
		}
		if seen[k] {
			return 0, fmt.Errorf("spawn %q: %s: %w", name, k, ErrDuplicateComponent)
		}
		seen[k] = true
	}
	id := s.w.CreateEntity()
	info := &entityInfo{id: id, name: name}
	s.byName[name] = info
	s.byID[id] = info
	for _, k := range kinds {
		if err := s.attach(info, k); err != nil {
			return id, fmt.Errorf("spawn %q: %w", name, err)
		}
	}
	s.log.Debug("entity spawned", zap.String("name", name), zap.Uint64("id", uint64(id)))
	return id, nil
}

// Attach adds one component to an existing entity.
func (s *State) Attach(name string, k component.Kind) error {
	info, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("attach %s to %q: %w", k, name, ErrUnknownEntity)
	}
	if err := s.attach(info, k); err != nil {
		return fmt.Errorf("attach to %q: %w", name, err)
	}
	return nil
}

func (s *State) attach(info *entityInfo, k component.Kind) error {
	var tok ecs.Releaser
	var index int
	switch k {
	case component.KindRenderer:
		if info.renderer != nil {
			return fmt.Errorf("%s: %w", k, ErrDuplicateComponent)
		}
		r := &component.Renderer{Entity: info.id, Sprite: info.name}
		tok = s.Renderers().Register(r)
		info.renderer, index = r, r.SlotIndex()
	case component.KindCollider:
		if info.collider != nil {
			return fmt.Errorf("%s: %w", k, ErrDuplicateComponent)
		}
		idx := info.id.Index()
		c := &component.Collider{
			Entity: info.id,
			X:      float64(idx % 16),
			Y:      float64(idx / 16),
			Radius: 0.75,
		}
		tok = s.Colliders().Register(c)
		info.collider, index = c, c.SlotIndex()
	case component.KindCamera:
		if info.camera != nil {
			return fmt.Errorf("%s: %w", k, ErrDuplicateComponent)
		}
		c := &component.Camera{Entity: info.id}
		if s.mainCamera == nil {
			c.Main = true
			s.mainCamera = c
		}
		tok = s.Cameras().Register(c)
		info.camera, index = c, c.SlotIndex()
	default:
		return fmt.Errorf("%w: %q", component.ErrUnknownKind, k)
	}
	s.w.Own(info.id, tok)
	event.Emit(s.bus, event.ComponentAttached{Entity: info.id, Name: info.name, Kind: k, Index: index})
	return nil
}

// Destroy queues the named entity for destruction at the next Flush.
func (s *State) Destroy(name string) error {
	info, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("destroy %q: %w", name, ErrUnknownEntity)
	}
	s.w.MarkForDestruction(info.id)
	return nil
}

// Flush destroys every queued entity and returns how many were destroyed.
func (s *State) Flush() int {
	return s.w.FlushDestroyQueue()
}

// beforeDestroy runs while the entity's components are still registered, so
// a replacement main camera can be chosen from the other cameras.
func (s *State) beforeDestroy(id ecs.EntityID) {
	info, ok := s.byID[id]
	if !ok {
		return
	}
	if info.camera != nil && info.camera == s.mainCamera {
		s.promoteCamera(info.camera)
	}
	for _, k := range info.kinds() {
		event.Emit(s.bus, event.ComponentDetached{Entity: id, Name: info.name, Kind: k})
	}
	delete(s.byName, info.name)
	delete(s.byID, id)
	s.log.Debug("entity destroyed", zap.String("name", info.name), zap.Uint64("id", uint64(id)))
}

func (s *State) promoteCamera(old *component.Camera) {
	old.Main = false
	next, ok := s.Cameras().FirstOther(old)
	ev := event.MainCameraChanged{From: old.Entity}
	if ok {
		next.Main = true
		ev.To = next.Entity
		s.mainCamera = next
	} else {
		s.mainCamera = nil
	}
	event.Emit(s.bus, ev)
}

func (info *entityInfo) kinds() []component.Kind {
	var out []component.Kind
	if info.renderer != nil {
		out = append(out, component.KindRenderer)
	}
	if info.collider != nil {
		out = append(out, component.KindCollider)
	}
	if info.camera != nil {
		out = append(out, component.KindCamera)
	}
	return out
}
