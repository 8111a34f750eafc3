package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Options configures registries created directly or through a Table.
type Options struct {
	// Capacity preallocates the dense array.
	Capacity int
	// Checks turns precondition violations (double registration, stale self
	// index, negative lookup index) into panics. With Checks off they are
	// undefined behavior.
	Checks bool
	Log    *zap.Logger
}

// Registry keeps every registered instance of T in one dense slice. Each
// instance caches its own position in its embedded Slot, so Register and
// Unregister are both O(1).
//
// A Registry is not safe for concurrent use; callers serialize access.
type Registry[T Member] struct {
	elems  []T
	name   string
	checks bool
	closed bool
	log    *zap.Logger
}

func NewRegistry[T Member](opts Options) *Registry[T] {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	name := typeOf[T]().String()
	return &Registry[T]{
		elems:  make([]T, 0, opts.Capacity),
		name:   name,
		checks: opts.Checks,
		log:    log.With(zap.String("type", name)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Name returns the element type name, e.g. "*component.Renderer".
func (r *Registry[T]) Name() string { return r.name }

// Register appends x and records its position in x's Slot. The returned
// Token unregisters x when released.
func (r *Registry[T]) Register(x T) *Token[T] {
	if r.checks {
		r.mustAccept(x)
	}
	s := x.registrySlot()
	r.elems = append(r.elems, x)
	s.index = len(r.elems) - 1
	s.registered = true
	if ce := r.log.Check(zap.DebugLevel, "instance registered"); ce != nil {
		ce.Write(zap.Int("index", s.index), zap.Int("count", len(r.elems)))
	}
	return &Token[T]{reg: r, inst: x}
}

// Unregister removes x by swap-and-erase. If another instance was moved into
// x's old position its Slot is updated to that position.
func (r *Registry[T]) Unregister(x T) {
	s := x.registrySlot()
	if r.checks {
		r.mustHold(x, s)
	}
	i := s.index
	var moved int
	r.elems, moved = SwapErase(r.elems, i)
	if moved != End {
		r.elems[moved].registrySlot().index = moved
	}
	s.registered = false
	s.index = -1
	if ce := r.log.Check(zap.DebugLevel, "instance unregistered"); ce != nil {
		ce.Write(zap.Int("index", i), zap.Bool("relocated", moved != End), zap.Int("count", len(r.elems)))
	}
}

func (r *Registry[T]) mustAccept(x T) {
	var zero T
	switch {
	case x == zero:
		panic(fmt.Sprintf("ecs: register nil %s", r.name))
	case r.closed:
		panic(fmt.Sprintf("ecs: register into closed %s registry", r.name))
	case x.registrySlot().registered:
		panic(fmt.Sprintf("ecs: %s registered twice", r.name))
	}
}

func (r *Registry[T]) mustHold(x T, s *Slot) {
	if !s.registered {
		panic(fmt.Sprintf("ecs: unregister of unregistered %s", r.name))
	}
	if s.index < 0 || s.index >= len(r.elems) || r.elems[s.index] != x {
		panic(fmt.Sprintf("ecs: stale self index %d for %s (count %d)", s.index, r.name, len(r.elems)))
	}
}

// Instances returns the live dense slice. The view is only valid until the
// next Register or Unregister on this registry; its capacity is clipped so
// appending to it cannot write into the registry.
func (r *Registry[T]) Instances() []T {
	return r.elems[:len(r.elems):len(r.elems)]
}

// Len returns the number of registered instances.
func (r *Registry[T]) Len() int { return len(r.elems) }

// At returns the instance at index i, or false when i is outside [0, Len()).
func (r *Registry[T]) At(i int) (T, bool) {
	if i < 0 && r.checks {
		panic(fmt.Sprintf("ecs: negative index %d into %s", i, r.name))
	}
	if i < 0 || i >= len(r.elems) {
		var zero T
		return zero, false
	}
	return r.elems[i], true
}

// FirstOther returns the lowest-indexed instance that is not excluded.
// excluded may be the zero value.
func (r *Registry[T]) FirstOther(excluded T) (T, bool) {
	for _, e := range r.elems {
		if e != excluded {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// Index returns x's cached position, or false when x is not registered here.
func (r *Registry[T]) Index(x T) (int, bool) {
	if !r.Contains(x) {
		return -1, false
	}
	return x.registrySlot().index, true
}

// Contains reports whether x is registered in r. O(1).
func (r *Registry[T]) Contains(x T) bool {
	var zero T
	if x == zero {
		return false
	}
	s := x.registrySlot()
	return s.registered && s.index >= 0 && s.index < len(r.elems) && r.elems[s.index] == x
}

// Each calls fn for every instance in index order. fn must not register or
// unregister instances of T.
func (r *Registry[T]) Each(fn func(int, T)) {
	for i, e := range r.elems {
		fn(i, e)
	}
}

// close detaches every instance. Tokens issued before close become no-ops.
func (r *Registry[T]) close() {
	for _, e := range r.elems {
		s := e.registrySlot()
		s.registered = false
		s.index = -1
	}
	clear(r.elems)
	r.elems = r.elems[:0]
	r.closed = true
}
