package system

import (
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/core/event"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/data"
	"github.com/l1jgo/asteroids/internal/gamestate"
	"github.com/l1jgo/asteroids/internal/input"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// CraftSpawner creates the player craft. It is not a per-frame system: the
// kernel calls Spawn once at startup and again whenever GameOver is entered.
type CraftSpawner struct {
	world *world.State
	tmpl  data.SpaceshipTemplate
	bus   *event.Bus
	log   *zap.Logger
}

func NewCraftSpawner(ws *world.State, tmpl data.SpaceshipTemplate, bus *event.Bus, log *zap.Logger) *CraftSpawner {
	return &CraftSpawner{world: ws, tmpl: tmpl, bus: bus, log: log}
}

// Spawn queues a new craft at the template's start position. A craft that
// still exists is left alone so at most one is ever alive.
func (s *CraftSpawner) Spawn() (ecs.EntityID, error) {
	if id, ok := s.world.Craft(); ok {
		return id, nil
	}
	collider, err := component.NewCollider(s.tmpl.Radius)
	if err != nil {
		return 0, err
	}
	id := s.world.SpawnBody(world.Body{
		Role:         component.RolePlayerCraft,
		Spatial:      component.NewSpatial(s.tmpl.Spawn.Mgl()),
		Velocity:     &component.Velocity{},
		Acceleration: &component.Acceleration{},
		Collider:     collider,
		Health:       &component.Health{Value: s.tmpl.Health},
		Damage:       &component.CollisionDamage{Amount: s.tmpl.CollisionDamage},
		Visual:       s.tmpl.Visual,
		Scoped:       true,
	})
	event.Emit(s.bus, event.EntitySpawned{EntityID: id, Role: component.RolePlayerCraft})
	s.log.Info("craft spawned", zap.Stringer("entity", id))
	return id, nil
}

// CraftControlSystem steers the craft from held control signals: forward and
// backward set velocity along the facing axis (backward wins), yaw turns about
// world Y and roll turns about the craft's own Z. Phase 2 (UserInput).
type CraftControlSystem struct {
	world    *world.State
	tmpl     data.SpaceshipTemplate
	controls *input.Controls
	log      *zap.Logger
}

func NewCraftControlSystem(ws *world.State, tmpl data.SpaceshipTemplate, controls *input.Controls, log *zap.Logger) *CraftControlSystem {
	return &CraftControlSystem{world: ws, tmpl: tmpl, controls: controls, log: log}
}

func (s *CraftControlSystem) Phase() coresys.Phase { return coresys.PhaseUserInput }

func (s *CraftControlSystem) Update(f coresys.Frame) {
	id, ok := s.world.Craft()
	if !ok {
		return
	}
	sp, ok := s.world.Spatial.Get(id)
	if !ok {
		return
	}
	vel, ok := s.world.Velocity.Get(id)
	if !ok {
		return
	}
	c := s.controls

	var movement, yaw, roll float32
	// Velocity is per second; the integrator applies dt.
	switch {
	case c.Backward:
		movement = -s.tmpl.TranslationSpeed
	case c.Forward:
		movement = s.tmpl.TranslationSpeed
	}
	switch {
	case c.YawRight:
		yaw = -s.tmpl.RotationSpeed * f.Delta
	case c.YawLeft:
		yaw = s.tmpl.RotationSpeed * f.Delta
	}
	switch {
	case c.RollLeft:
		roll = -s.tmpl.RollSpeed * f.Delta
	case c.RollRight:
		roll = s.tmpl.RollSpeed * f.Delta
	}

	vel.Value = sp.Forward().Mul(movement)
	if yaw == 0 && roll == 0 {
		return
	}
	// A bad delta would leave a NaN orientation behind for good.
	if err := checkDelta(f.Delta); err != nil {
		s.log.Error("skip craft rotation", zap.Uint64("frame", f.Number), zap.Float32("dt", f.Delta), zap.Error(err))
		return
	}
	if yaw != 0 {
		sp.RotateY(yaw)
	}
	if roll != 0 {
		sp.RotateLocalZ(roll)
	}
}

// WeaponSystem launches one missile per fire edge from just ahead of the
// craft along its facing axis. There is no cooldown beyond the edge itself.
// Phase 2 (UserInput).
type WeaponSystem struct {
	world    *world.State
	tmpl     data.MissileTemplate
	controls *input.Controls
	bus      *event.Bus
	log      *zap.Logger
}

func NewWeaponSystem(ws *world.State, tmpl data.MissileTemplate, controls *input.Controls, bus *event.Bus, log *zap.Logger) *WeaponSystem {
	return &WeaponSystem{world: ws, tmpl: tmpl, controls: controls, bus: bus, log: log}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseUserInput }

func (s *WeaponSystem) Update(f coresys.Frame) {
	if !s.controls.Fire {
		return
	}
	craft, ok := s.world.Craft()
	if !ok {
		return
	}
	sp, ok := s.world.Spatial.Get(craft)
	if !ok {
		return
	}
	collider, err := component.NewCollider(s.tmpl.Radius)
	if err != nil {
		s.log.Error("spawn missile", zap.Error(err))
		return
	}
	forward := sp.Forward()
	id := s.world.SpawnBody(world.Body{
		Role:         component.RoleProjectile,
		Spatial:      &component.Spatial{Position: sp.Position.Add(forward.Mul(s.tmpl.ForwardSpawnRange)), Orientation: sp.Orientation},
		Velocity:     &component.Velocity{Value: forward.Mul(s.tmpl.Speed)},
		Acceleration: &component.Acceleration{},
		Collider:     collider,
		Health:       &component.Health{Value: s.tmpl.Health},
		Damage:       &component.CollisionDamage{Amount: s.tmpl.CollisionDamage},
		Visual:       s.tmpl.Visual,
		Scoped:       true,
	})
	event.Emit(s.bus, event.EntitySpawned{EntityID: id, Role: component.RoleProjectile})
	s.log.Debug("missile fired", zap.Uint64("frame", f.Number), zap.Stringer("entity", id))
}

// ShieldSystem toggles the Shield tag on the craft on each shield edge.
// The tag is only a marker. Phase 2 (UserInput).
type ShieldSystem struct {
	world    *world.State
	controls *input.Controls
}

func NewShieldSystem(ws *world.State, controls *input.Controls) *ShieldSystem {
	return &ShieldSystem{world: ws, controls: controls}
}

func (s *ShieldSystem) Phase() coresys.Phase { return coresys.PhaseUserInput }

func (s *ShieldSystem) Update(_ coresys.Frame) {
	if !s.controls.Shield {
		return
	}
	craft, ok := s.world.Craft()
	if !ok {
		return
	}
	if s.world.Shield.Has(craft) {
		s.world.ECS.Apply(craft, func(id ecs.EntityID) { s.world.Shield.Remove(id) })
		return
	}
	s.world.ECS.Apply(craft, func(id ecs.EntityID) { s.world.Shield.Set(id, &component.Shield{}) })
}

// CraftDestroyedSystem requests GameOver once no entity carries the player
// craft role. Phase 3 (EntityUpdates), so it sees the Despawn phase's removals.
type CraftDestroyedSystem struct {
	world   *world.State
	machine *gamestate.Machine
	log     *zap.Logger
}

func NewCraftDestroyedSystem(ws *world.State, machine *gamestate.Machine, log *zap.Logger) *CraftDestroyedSystem {
	return &CraftDestroyedSystem{world: ws, machine: machine, log: log}
}

func (s *CraftDestroyedSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *CraftDestroyedSystem) Update(f coresys.Frame) {
	if _, ok := s.world.Craft(); ok {
		return
	}
	s.log.Info("craft destroyed", zap.Uint64("frame", f.Number))
	s.machine.Request(gamestate.GameOver)
}
