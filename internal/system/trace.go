package system

import (
	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// PositionTraceSystem logs every moving entity's velocity and position.
// Phase 4 (Diagnostics); only registered when tracing is enabled.
type PositionTraceSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewPositionTraceSystem(ws *world.State, log *zap.Logger) *PositionTraceSystem {
	return &PositionTraceSystem{world: ws, log: log}
}

func (s *PositionTraceSystem) Phase() coresys.Phase { return coresys.PhaseDiagnostics }

func (s *PositionTraceSystem) Update(f coresys.Frame) {
	if ce := s.log.Check(zap.DebugLevel, "entity"); ce == nil {
		return
	}
	ecs.Each2(s.world.Velocity, s.world.Spatial, func(id ecs.EntityID, v *component.Velocity, sp *component.Spatial) {
		s.log.Debug("entity",
			zap.Uint64("frame", f.Number),
			zap.Stringer("id", id),
			zap.Stringer("role", s.world.RoleOf(id)),
			zap.Float32s("velocity", v.Value[:]),
			zap.Float32s("position", sp.Position[:]),
		)
	})
}
