package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/core/event"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/data"
	"github.com/l1jgo/asteroids/internal/gamestate"
	"github.com/l1jgo/asteroids/internal/input"
	"github.com/l1jgo/asteroids/internal/world"
)

func spawnCraft(t *testing.T, ws *world.State) ecs.EntityID {
	t.Helper()
	id, err := NewCraftSpawner(ws, data.DefaultArchetypes().Spaceship, event.NewBus(), zap.NewNop()).Spawn()
	require.NoError(t, err)
	ws.ECS.Flush()
	return id
}

func TestCraftSpawner_AtMostOne(t *testing.T) {
	ws := world.NewState()
	sp := NewCraftSpawner(ws, data.DefaultArchetypes().Spaceship, event.NewBus(), zap.NewNop())

	first, err := sp.Spawn()
	require.NoError(t, err)
	ws.ECS.Flush()
	again, err := sp.Spawn()
	require.NoError(t, err)
	ws.ECS.Flush()

	assert.Equal(t, first, again)
	assert.Equal(t, 1, ws.CountRole(component.RolePlayerCraft))
	pos, _ := ws.Spatial.Get(first)
	assert.Equal(t, mgl32.Vec3{0, 0, -20}, pos.Position)
	assert.True(t, ws.Scoped.Has(first))
}

func TestCraftControl_Movement(t *testing.T) {
	ws := world.NewState()
	craft := spawnCraft(t, ws)
	var c input.Controls
	sys := NewCraftControlSystem(ws, data.DefaultArchetypes().Spaceship, &c, zap.NewNop())

	c.Forward = true
	sys.Update(frame)
	v, _ := ws.Velocity.Get(craft)
	assert.Equal(t, mgl32.Vec3{0, 0, 25}, v.Value)

	c.Backward = true
	sys.Update(frame)
	assert.Equal(t, mgl32.Vec3{0, 0, -25}, v.Value, "backward wins")

	c = input.Controls{}
	sys.Update(frame)
	assert.Equal(t, mgl32.Vec3{}, v.Value)
}

func TestCraftControl_YawAndRoll(t *testing.T) {
	ws := world.NewState()
	craft := spawnCraft(t, ws)
	c := input.Controls{YawLeft: true}
	sys := NewCraftControlSystem(ws, data.DefaultArchetypes().Spaceship, &c, zap.NewNop())

	// 2.5 rad/s for π/5 s is a quarter turn towards +X
	sys.Update(coresys.Frame{Delta: math.Pi / 5})
	sp, _ := ws.Spatial.Get(craft)
	fwd := sp.Forward()
	assert.InDelta(t, 1, fwd.X(), 1e-5)
	assert.InDelta(t, 0, fwd.Z(), 1e-5)

	c = input.Controls{RollRight: true}
	sys.Update(coresys.Frame{Delta: 0.3})
	fwd = sp.Forward()
	assert.InDelta(t, 1, fwd.X(), 1e-5, "roll keeps the facing axis")
}

func TestWeapon_FiresOnEdgeOnly(t *testing.T) {
	ws := world.NewState()
	craft := spawnCraft(t, ws)
	bus := event.NewBus()
	var c input.Controls
	sys := NewWeaponSystem(ws, data.DefaultArchetypes().Missile, &c, bus, zap.NewNop())

	sys.Update(frame)
	ws.ECS.Flush()
	assert.Zero(t, ws.CountRole(component.RoleProjectile))

	c.Fire = true
	sys.Update(frame)
	ws.ECS.Flush()
	require.Equal(t, 1, ws.CountRole(component.RoleProjectile))

	var missile ecs.EntityID
	ws.EachRole(component.RoleProjectile, func(id ecs.EntityID) { missile = id })
	pos, _ := ws.Spatial.Get(missile)
	vel, _ := ws.Velocity.Get(missile)
	craftPos, _ := ws.Spatial.Get(craft)
	assert.Equal(t, craftPos.Position.Add(mgl32.Vec3{0, 0, 10}), pos.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 50}, vel.Value)
	assert.True(t, ws.Scoped.Has(missile))
	h, _ := ws.Health.Get(missile)
	assert.Equal(t, float32(1), h.Value)
}

func TestWeapon_NoCraftNoMissile(t *testing.T) {
	ws := world.NewState()
	c := input.Controls{Fire: true}
	NewWeaponSystem(ws, data.DefaultArchetypes().Missile, &c, event.NewBus(), zap.NewNop()).Update(frame)
	ws.ECS.Flush()
	assert.Zero(t, ws.CountRole(component.RoleProjectile))
}

func TestShield_Toggles(t *testing.T) {
	ws := world.NewState()
	craft := spawnCraft(t, ws)
	c := input.Controls{Shield: true}
	sys := NewShieldSystem(ws, &c)

	sys.Update(frame)
	assert.False(t, ws.Shield.Has(craft), "applied at the barrier")
	ws.ECS.Flush()
	assert.True(t, ws.Shield.Has(craft))

	sys.Update(frame)
	ws.ECS.Flush()
	assert.False(t, ws.Shield.Has(craft))
}

func TestCraftDestroyed_RequestsGameOver(t *testing.T) {
	ws := world.NewState()
	m := gamestate.NewMachine()
	sys := NewCraftDestroyedSystem(ws, m, zap.NewNop())
	craft := spawnCraft(t, ws)

	sys.Update(frame)
	_, pending := m.Pending()
	assert.False(t, pending)

	ws.ECS.Despawn(craft)
	ws.ECS.Flush()
	sys.Update(frame)
	next, pending := m.Pending()
	assert.True(t, pending)
	assert.Equal(t, gamestate.GameOver, next)
}

func TestCraftControl_NonFiniteDeltaKeepsOrientation(t *testing.T) {
	ws := world.NewState()
	craft := spawnCraft(t, ws)
	c := input.Controls{YawLeft: true, RollRight: true, Forward: true}
	core, logs := observer.New(zap.ErrorLevel)
	sys := NewCraftControlSystem(ws, data.DefaultArchetypes().Spaceship, &c, zap.New(core))

	for _, dt := range []float32{float32(math.NaN()), float32(math.Inf(1))} {
		sys.Update(coresys.Frame{Delta: dt})
	}

	sp, _ := ws.Spatial.Get(craft)
	assert.Equal(t, mgl32.QuatIdent(), sp.Orientation)
	v, _ := ws.Velocity.Get(craft)
	assert.Equal(t, mgl32.Vec3{0, 0, 25}, v.Value)
	assert.Equal(t, 2, logs.Len())
}
