package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/world"
)

func TestDistanceDespawn(t *testing.T) {
	ws := world.NewState()
	far := body(t, ws, component.RoleProjectile, mgl32.Vec3{150, 0, 0}, 1)
	near := body(t, ws, component.RoleProjectile, mgl32.Vec3{0, 0, 50}, 1)
	farHazard := body(t, ws, component.RoleHazard, mgl32.Vec3{0, 0, -101}, 1)
	craft := body(t, ws, component.RolePlayerCraft, mgl32.Vec3{500, 0, 0}, 1)

	NewDistanceDespawnSystem(ws, 100, zap.NewNop()).Update(frame)
	st := ws.ECS.Flush()

	assert.Equal(t, 2, st.Despawned)
	assert.False(t, ws.ECS.Alive(far))
	assert.False(t, ws.ECS.Alive(farHazard))
	assert.True(t, ws.ECS.Alive(near))
	assert.True(t, ws.ECS.Alive(craft), "craft is exempt")
}

func TestHealthDespawn(t *testing.T) {
	ws := world.NewState()
	zero := body(t, ws, component.RoleHazard, mgl32.Vec3{}, 1)
	negative := body(t, ws, component.RolePlayerCraft, mgl32.Vec3{}, 1)
	alive := body(t, ws, component.RoleHazard, mgl32.Vec3{}, 1)
	ws.Health.Set(zero, &component.Health{Value: 0})
	ws.Health.Set(negative, &component.Health{Value: -3})
	ws.Health.Set(alive, &component.Health{Value: 0.1})

	NewHealthDespawnSystem(ws, zap.NewNop()).Update(frame)
	ws.ECS.Flush()

	assert.False(t, ws.ECS.Alive(zero))
	assert.False(t, ws.ECS.Alive(negative))
	assert.True(t, ws.ECS.Alive(alive))
}

func TestDespawn_BothRulesRemoveOnce(t *testing.T) {
	ws := world.NewState()
	id := ws.SpawnBody(world.Body{
		Role:    component.RoleProjectile,
		Spatial: component.NewSpatial(mgl32.Vec3{0, 0, 150}),
		Health:  &component.Health{Value: 0},
		Visual:  "Missiles.glb#Scene0",
	})
	ws.ECS.Flush()
	before := ws.ECS.Len()

	NewDistanceDespawnSystem(ws, 100, zap.NewNop()).Update(frame)
	NewHealthDespawnSystem(ws, zap.NewNop()).Update(frame)
	assert.Equal(t, 2, ws.ECS.Pending())
	st := ws.ECS.Flush()

	// the entity and its visual child, once
	assert.Equal(t, 2, st.Despawned)
	assert.Equal(t, before-2, ws.ECS.Len())
	assert.False(t, ws.ECS.Alive(id))
	assert.Zero(t, ws.Visual.Len())
}
