package world

import (
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
)

// State owns the ECS world and one store per fragment type.
// Accessed only from the game loop goroutine, so no locks.
type State struct {
	ECS *ecs.World

	Spatial      *ecs.Store[component.Spatial]
	Velocity     *ecs.Store[component.Velocity]
	Acceleration *ecs.Store[component.Acceleration]
	Collider     *ecs.Store[component.Collider]
	Health       *ecs.Store[component.Health]
	Damage       *ecs.Store[component.CollisionDamage]
	Tag          *ecs.Store[component.Tag]
	Shield       *ecs.Store[component.Shield]
	Visual       *ecs.Store[component.Visual]
	Scoped       *ecs.Store[component.StateScoped]
}

func NewState() *State {
	w := ecs.NewWorld()
	return &State{
		ECS:          w,
		Spatial:      ecs.Register[component.Spatial](w),
		Velocity:     ecs.Register[component.Velocity](w),
		Acceleration: ecs.Register[component.Acceleration](w),
		Collider:     ecs.Register[component.Collider](w),
		Health:       ecs.Register[component.Health](w),
		Damage:       ecs.Register[component.CollisionDamage](w),
		Tag:          ecs.Register[component.Tag](w),
		Shield:       ecs.Register[component.Shield](w),
		Visual:       ecs.Register[component.Visual](w),
		Scoped:       ecs.Register[component.StateScoped](w),
	}
}

// RoleOf returns the entity's role, or RoleNone when it carries no tag.
func (s *State) RoleOf(id ecs.EntityID) component.Role {
	if t, ok := s.Tag.Get(id); ok {
		return t.Role
	}
	return component.RoleNone
}

// HasRole reports whether id is alive and tagged with r.
func (s *State) HasRole(id ecs.EntityID, r component.Role) bool {
	return s.RoleOf(id) == r
}

// EachRole visits every entity tagged with r, in store order.
func (s *State) EachRole(r component.Role, fn func(ecs.EntityID)) {
	s.Tag.Each(func(id ecs.EntityID, t *component.Tag) {
		if t.Role == r {
			fn(id)
		}
	})
}

// CountRole returns how many entities carry role r.
func (s *State) CountRole(r component.Role) int {
	n := 0
	s.EachRole(r, func(ecs.EntityID) { n++ })
	return n
}

// Craft returns the player craft, if one exists.
func (s *State) Craft() (ecs.EntityID, bool) {
	var craft ecs.EntityID
	found := false
	s.EachRole(component.RolePlayerCraft, func(id ecs.EntityID) {
		if !found {
			craft, found = id, true
		}
	})
	return craft, found
}

// Body is the fragment set a spawner hands to SpawnBody.
type Body struct {
	Role         component.Role
	Spatial      *component.Spatial
	Velocity     *component.Velocity
	Acceleration *component.Acceleration
	Collider     *component.Collider
	Health       *component.Health
	Damage       *component.CollisionDamage
	Visual       string
	Scoped       bool
}

// SpawnBody queues a new entity with the given fragments. A non-empty Visual
// becomes a child entity so it goes away with its parent.
func (s *State) SpawnBody(b Body) ecs.EntityID {
	id := s.ECS.Spawn(func(id ecs.EntityID) {
		s.Tag.Set(id, &component.Tag{Role: b.Role})
		if b.Spatial != nil {
			s.Spatial.Set(id, b.Spatial)
		}
		if b.Velocity != nil {
			s.Velocity.Set(id, b.Velocity)
		}
		if b.Acceleration != nil {
			s.Acceleration.Set(id, b.Acceleration)
		}
		if b.Collider != nil {
			s.Collider.Set(id, b.Collider)
		}
		if b.Health != nil {
			s.Health.Set(id, b.Health)
		}
		if b.Damage != nil {
			s.Damage.Set(id, b.Damage)
		}
		if b.Scoped {
			s.Scoped.Set(id, &component.StateScoped{})
		}
	})
	if b.Visual != "" {
		handle := b.Visual
		child := s.ECS.Spawn(func(id ecs.EntityID) {
			s.Visual.Set(id, &component.Visual{Handle: handle})
		})
		s.ECS.Attach(id, child)
	}
	return id
}
