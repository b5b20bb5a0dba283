package component

import (
	"errors"

	"github.com/l1jgo/asteroids/internal/core/ecs"
)

// ErrInvalidRadius is returned when a collider is created with radius <= 0.
var ErrInvalidRadius = errors.New("collider radius must be positive")

// Collider is a bounding sphere. Overlaps is derived data: it is cleared and
// rebuilt by every collision detection pass and never holds the owner's id.
type Collider struct {
	radius   float32
	Overlaps []ecs.EntityID
}

func NewCollider(radius float32) (*Collider, error) {
	if !(radius > 0) {
		return nil, ErrInvalidRadius
	}
	return &Collider{radius: radius}, nil
}

func (c *Collider) Radius() float32 { return c.radius }

// Overlapping reports whether id was in the last detected overlap set.
func (c *Collider) Overlapping(id ecs.EntityID) bool {
	for _, o := range c.Overlaps {
		if o == id {
			return true
		}
	}
	return false
}
