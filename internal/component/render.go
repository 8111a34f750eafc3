package component

import "github.com/l1jgo/typereg/internal/core/ecs"

// Renderer draws an entity. RenderSystem walks every Renderer each tick.
type Renderer struct {
	ecs.Slot
	Entity ecs.EntityID
	Sprite string
	Frames int // frames drawn since attach
}

// Camera views the scene. Exactly one live camera is the main camera.
type Camera struct {
	ecs.Slot
	Entity ecs.EntityID
	Main   bool
}
