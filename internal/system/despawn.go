package system

import (
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// DistanceDespawnSystem removes hazards and projectiles that drifted farther
// than the despawn distance from the origin. The player craft is exempt.
// Phase 1 (Despawn).
type DistanceDespawnSystem struct {
	world    *world.State
	distance float32
	log      *zap.Logger
}

func NewDistanceDespawnSystem(ws *world.State, distance float32, log *zap.Logger) *DistanceDespawnSystem {
	return &DistanceDespawnSystem{world: ws, distance: distance, log: log}
}

func (s *DistanceDespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawn }

func (s *DistanceDespawnSystem) Update(f coresys.Frame) {
	ecs.Each2(s.world.Tag, s.world.Spatial, func(id ecs.EntityID, t *component.Tag, sp *component.Spatial) {
		if t.Role != component.RoleHazard && t.Role != component.RoleProjectile {
			return
		}
		if d := sp.Position.Len(); d > s.distance {
			s.log.Debug("despawn out of range",
				zap.Uint64("frame", f.Number),
				zap.Stringer("entity", id),
				zap.Stringer("role", t.Role),
				zap.Float32("distance", d),
			)
			s.world.ECS.Despawn(id)
		}
	})
}

// HealthDespawnSystem removes every entity whose health is depleted,
// whatever its role. Phase 1 (Despawn).
type HealthDespawnSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewHealthDespawnSystem(ws *world.State, log *zap.Logger) *HealthDespawnSystem {
	return &HealthDespawnSystem{world: ws, log: log}
}

func (s *HealthDespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawn }

func (s *HealthDespawnSystem) Update(f coresys.Frame) {
	s.world.Health.Each(func(id ecs.EntityID, h *component.Health) {
		if !h.Depleted() {
			return
		}
		s.log.Debug("despawn depleted",
			zap.Uint64("frame", f.Number),
			zap.Stringer("entity", id),
			zap.Stringer("role", s.world.RoleOf(id)),
			zap.Float32("health", h.Value),
		)
		s.world.ECS.Despawn(id)
	})
}
