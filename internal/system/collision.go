package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/core/event"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// DetectCollisions rebuilds every collider's overlap set with an all-pairs
// sphere test: A and B overlap when |A-B| < rA + rB. Each pair is tested once
// and recorded on both sides. O(n²); fine for tens of entities, the place to
// add spatial partitioning if counts grow.
func DetectCollisions(ws *world.State) (pairs int) {
	type body struct {
		id  ecs.EntityID
		pos mgl32.Vec3
		r   float32
		c   *component.Collider
	}
	bodies := make([]body, 0, ws.Collider.Len())
	ecs.Each2(ws.Collider, ws.Spatial, func(id ecs.EntityID, c *component.Collider, s *component.Spatial) {
		bodies = append(bodies, body{id: id, pos: s.Position, r: c.Radius(), c: c})
	})

	hits := make([][]ecs.EntityID, len(bodies))
	for i := range bodies {
		a := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := &bodies[j]
			if a.pos.Sub(b.pos).Len() < a.r+b.r {
				hits[i] = append(hits[i], b.id)
				hits[j] = append(hits[j], a.id)
				pairs++
			}
		}
	}

	// Colliders without a transform keep no stale overlaps either.
	ws.Collider.Each(func(_ ecs.EntityID, c *component.Collider) {
		c.Overlaps = c.Overlaps[:0]
	})
	for i := range bodies {
		bodies[i].c.Overlaps = append(bodies[i].c.Overlaps, hits[i]...)
	}
	return pairs
}

// CollisionDetectionSystem refreshes overlap sets. Phase 0 (CollisionDetection).
type CollisionDetectionSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCollisionDetectionSystem(ws *world.State, log *zap.Logger) *CollisionDetectionSystem {
	return &CollisionDetectionSystem{world: ws, log: log}
}

func (s *CollisionDetectionSystem) Phase() coresys.Phase { return coresys.PhaseCollisionDetection }

func (s *CollisionDetectionSystem) Update(f coresys.Frame) {
	if pairs := DetectCollisions(s.world); pairs > 0 {
		s.log.Debug("overlaps detected", zap.Uint64("frame", f.Number), zap.Int("pairs", pairs))
	}
}

// CollisionResolveSystem turns the overlap sets of one role into collision
// notifications. Each entity yields at most one notification per frame: the
// first overlap with an entity of a different role. Same-role overlaps are
// ignored so hazards never hurt hazards. Phase 3 (EntityUpdates), before
// DamageSystem.
type CollisionResolveSystem struct {
	world *world.State
	role  component.Role
	out   *event.Queue[event.Collision]
}

func NewCollisionResolveSystem(ws *world.State, role component.Role, out *event.Queue[event.Collision]) *CollisionResolveSystem {
	return &CollisionResolveSystem{world: ws, role: role, out: out}
}

func (s *CollisionResolveSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *CollisionResolveSystem) Update(_ coresys.Frame) {
	s.world.EachRole(s.role, func(id ecs.EntityID) {
		c, ok := s.world.Collider.Get(id)
		if !ok {
			return
		}
		for _, other := range c.Overlaps {
			// Overlaps were computed before this frame's despawns. A dead id
			// does not use up the entity's one notification; the next live
			// overlap gets it instead.
			if !s.world.ECS.Alive(other) {
				continue
			}
			if s.world.HasRole(other, s.role) {
				continue
			}
			s.out.Push(event.Collision{Entity: id, Collided: other})
			return
		}
	})
}

// DamageScaler adjusts the raw CollisionDamage before it is applied.
type DamageScaler interface {
	ScaleCollisionDamage(victim, source component.Role, base float32) float32
}

// DamageSystem applies every collision notification of the frame:
// health(entity) -= damage(collided). Notifications whose entity has no
// Health, or whose collided entity has no CollisionDamage, are ignored.
// Phase 3 (EntityUpdates), after all CollisionResolveSystems.
type DamageSystem struct {
	world  *world.State
	in     *event.Queue[event.Collision]
	scaler DamageScaler
	log    *zap.Logger

	processed uint64
}

func NewDamageSystem(ws *world.State, in *event.Queue[event.Collision], scaler DamageScaler, log *zap.Logger) *DamageSystem {
	return &DamageSystem{world: ws, in: in, scaler: scaler, log: log}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

// Processed returns how many notifications have been consumed so far.
func (s *DamageSystem) Processed() uint64 { return s.processed }

func (s *DamageSystem) Update(f coresys.Frame) {
	s.in.Drain(func(ev event.Collision) {
		s.processed++
		health, ok := s.world.Health.Get(ev.Entity)
		if !ok {
			return
		}
		dmg, ok := s.world.Damage.Get(ev.Collided)
		if !ok {
			return
		}
		amount := dmg.Amount
		if s.scaler != nil {
			amount = s.scaler.ScaleCollisionDamage(s.world.RoleOf(ev.Entity), s.world.RoleOf(ev.Collided), amount)
		}
		health.Value -= amount
		s.log.Debug("collision damage",
			zap.Uint64("frame", f.Number),
			zap.Stringer("entity", ev.Entity),
			zap.Stringer("source", ev.Collided),
			zap.Float32("amount", amount),
			zap.Float32("health", health.Value),
		)
	})
}
