package ecs

import "fmt"

// Releaser is implemented by every Token regardless of element type.
type Releaser interface {
	Release()
}

// Token is returned by Register. Releasing it unregisters the instance, so
// owners typically keep it next to the instance or defer Release.
type Token[T Member] struct {
	reg      *Registry[T]
	inst     T
	released bool
}

var _ Releaser = (*Token[*Slot])(nil)

// Instance returns the registered instance.
func (t *Token[T]) Instance() T { return t.inst }

// Released reports whether Release has already run.
func (t *Token[T]) Released() bool { return t.released }

// Release unregisters the instance. Releasing twice panics when the registry
// runs with checks and is a no-op otherwise. Tokens of a closed registry are
// no-ops.
func (t *Token[T]) Release() {
	if t.released {
		if t.reg.checks {
			panic(fmt.Sprintf("ecs: %s token released twice", t.reg.name))
		}
		return
	}
	t.released = true
	if t.reg.closed {
		return
	}
	t.reg.Unregister(t.inst)
}
