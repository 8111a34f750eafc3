package event

import (
	"github.com/l1jgo/typereg/internal/component"
	"github.com/l1jgo/typereg/internal/core/ecs"
)

type ComponentAttached struct {
	Entity ecs.EntityID
	Name   string
	Kind   component.Kind
	Index  int // position in the kind's registry at attach time
}

type ComponentDetached struct {
	Entity ecs.EntityID
	Name   string
	Kind   component.Kind
}

// MainCameraChanged fires when the main camera is destroyed and another
// camera (or none, To == 0) takes over.
type MainCameraChanged struct {
	From ecs.EntityID
	To   ecs.EntityID
}
