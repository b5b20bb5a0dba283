package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/asteroids/internal/component"
)

func TestSpawnBody_AttachesFragmentsAndVisual(t *testing.T) {
	s := NewState()
	col, err := component.NewCollider(1)
	require.NoError(t, err)

	id := s.SpawnBody(Body{
		Role:     component.RoleProjectile,
		Spatial:  component.NewSpatial(mgl32.Vec3{1, 2, 3}),
		Velocity: &component.Velocity{},
		Collider: col,
		Health:   &component.Health{Value: 1},
		Visual:   "Missiles.glb#Scene0",
		Scoped:   true,
	})
	assert.False(t, s.Tag.Has(id), "fragments land at the flush")
	s.ECS.Flush()

	assert.Equal(t, component.RoleProjectile, s.RoleOf(id))
	assert.True(t, s.Spatial.Has(id))
	assert.True(t, s.Collider.Has(id))
	assert.True(t, s.Scoped.Has(id))
	assert.False(t, s.Acceleration.Has(id))
	assert.False(t, s.Damage.Has(id))

	kids := s.ECS.Children(id)
	require.Len(t, kids, 1)
	v, ok := s.Visual.Get(kids[0])
	require.True(t, ok)
	assert.Equal(t, "Missiles.glb#Scene0", v.Handle)

	s.ECS.Despawn(id)
	stats := s.ECS.Flush()
	assert.Equal(t, 2, stats.Despawned)
	assert.Zero(t, s.Visual.Len())
}

func TestCraft_LookupAndCount(t *testing.T) {
	s := NewState()
	_, ok := s.Craft()
	assert.False(t, ok)

	id := s.SpawnBody(Body{Role: component.RolePlayerCraft})
	s.SpawnBody(Body{Role: component.RoleHazard})
	s.SpawnBody(Body{Role: component.RoleHazard})
	s.ECS.Flush()

	got, ok := s.Craft()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, 2, s.CountRole(component.RoleHazard))
	assert.True(t, s.HasRole(id, component.RolePlayerCraft))
	assert.Equal(t, component.RoleNone, s.RoleOf(0))
}
