package event

import (
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/gamestate"
)

// Collision notifies Entity that it touched Collided this frame.
type Collision struct {
	Entity   ecs.EntityID
	Collided ecs.EntityID
}

// StateEntered is published after the state machine applied a transition.
type StateEntered struct {
	From    gamestate.State
	To      gamestate.State
	Frame   uint64
	Elapsed float64
}

// EntitySpawned is published for every gameplay entity a spawner creates.
type EntitySpawned struct {
	EntityID ecs.EntityID
	Role     component.Role
}

// EntityDespawned is published when a role-tagged entity is destroyed.
// Depleted is true when its health had reached zero.
type EntityDespawned struct {
	EntityID ecs.EntityID
	Role     component.Role
	Depleted bool
}
