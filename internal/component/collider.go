package component

import "github.com/l1jgo/typereg/internal/core/ecs"

// Collider is a circle used by the broad-phase overlap pass.
type Collider struct {
	ecs.Slot
	Entity   ecs.EntityID
	X, Y     float64
	Radius   float64
	Contacts int // overlaps found in the last pass
}

// Overlaps reports whether the two circles intersect.
func (c *Collider) Overlaps(o *Collider) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	r := c.Radius + o.Radius
	return dx*dx+dy*dy < r*r
}
