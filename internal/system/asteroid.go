package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/core/event"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/data"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// AsteroidSpawnSystem creates one hazard every spawn interval at a random
// point of the spawn rectangle, drifting along a random horizontal direction
// and accelerating along another. Phase 2 (UserInput), so it is gated with
// the rest of gameplay.
type AsteroidSpawnSystem struct {
	world *world.State
	tmpl  data.AsteroidTemplate
	rng   *rand.Rand
	bus   *event.Bus
	log   *zap.Logger
	timer repeatingTimer
}

func NewAsteroidSpawnSystem(ws *world.State, tmpl data.AsteroidTemplate, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *AsteroidSpawnSystem {
	return &AsteroidSpawnSystem{
		world: ws,
		tmpl:  tmpl,
		rng:   rng,
		bus:   bus,
		log:   log,
		timer: newRepeatingTimer(tmpl.SpawnInterval),
	}
}

func (s *AsteroidSpawnSystem) Phase() coresys.Phase { return coresys.PhaseUserInput }

func (s *AsteroidSpawnSystem) Update(f coresys.Frame) {
	if !s.timer.tick(f.Delta) {
		return
	}
	if _, err := s.Spawn(); err != nil {
		s.log.Error("spawn asteroid", zap.Error(err))
	}
}

// Spawn queues one asteroid immediately, bypassing the timer.
func (s *AsteroidSpawnSystem) Spawn() (ecs.EntityID, error) {
	collider, err := component.NewCollider(s.tmpl.Radius)
	if err != nil {
		return 0, err
	}
	pos := mgl32.Vec3{
		s.uniform(s.tmpl.SpawnRangeX),
		0,
		s.uniform(s.tmpl.SpawnRangeZ),
	}
	velocity := s.horizontalUnit().Mul(s.tmpl.VelocityScalar)
	acceleration := s.horizontalUnit().Mul(s.tmpl.AccelerationScalar)

	id := s.world.SpawnBody(world.Body{
		Role:         component.RoleHazard,
		Spatial:      component.NewSpatial(pos),
		Velocity:     &component.Velocity{Value: velocity},
		Acceleration: &component.Acceleration{Value: acceleration},
		Collider:     collider,
		Health:       &component.Health{Value: s.tmpl.Health},
		Damage:       &component.CollisionDamage{Amount: s.tmpl.CollisionDamage},
		Visual:       s.tmpl.Visual,
	})
	event.Emit(s.bus, event.EntitySpawned{EntityID: id, Role: component.RoleHazard})
	s.log.Debug("asteroid spawned", zap.Stringer("entity", id), zap.Float32s("pos", pos[:]))
	return id, nil
}

func (s *AsteroidSpawnSystem) uniform(r data.Range) float32 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rng.Float32()*(r.Max-r.Min)
}

// horizontalUnit returns a random direction in the XZ plane, or zero in the
// degenerate case where both samples are zero.
func (s *AsteroidSpawnSystem) horizontalUnit() mgl32.Vec3 {
	v := mgl32.Vec3{s.rng.Float32()*2 - 1, 0, s.rng.Float32()*2 - 1}
	return normalizeOrZero(v)
}

func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// AsteroidRotationSystem spins hazards about their local Z axis.
// Phase 3 (EntityUpdates).
type AsteroidRotationSystem struct {
	world *world.State
	speed float32
}

func NewAsteroidRotationSystem(ws *world.State, speed float32) *AsteroidRotationSystem {
	return &AsteroidRotationSystem{world: ws, speed: speed}
}

func (s *AsteroidRotationSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *AsteroidRotationSystem) Update(f coresys.Frame) {
	if s.speed == 0 || checkDelta(f.Delta) != nil {
		return
	}
	ecs.Each2(s.world.Tag, s.world.Spatial, func(_ ecs.EntityID, t *component.Tag, sp *component.Spatial) {
		if t.Role == component.RoleHazard {
			sp.RotateLocalZ(s.speed * f.Delta)
		}
	})
}
