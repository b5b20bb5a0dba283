package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/world"
)

var frame = coresys.Frame{Number: 1, Delta: 0.1, Elapsed: 0.1}

// body spawns a collidable entity and flushes it into the world.
func body(t *testing.T, ws *world.State, role component.Role, pos mgl32.Vec3, radius float32) ecs.EntityID {
	t.Helper()
	col, err := component.NewCollider(radius)
	require.NoError(t, err)
	id := ws.SpawnBody(world.Body{
		Role:     role,
		Spatial:  component.NewSpatial(pos),
		Collider: col,
	})
	ws.ECS.Flush()
	return id
}

func overlaps(ws *world.State, id ecs.EntityID) []ecs.EntityID {
	c, ok := ws.Collider.Get(id)
	if !ok {
		return nil
	}
	return c.Overlaps
}
