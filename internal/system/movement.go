package system

import (
	"errors"
	"math"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// ErrNonFiniteDelta is returned when the frame delta is NaN or infinite.
var ErrNonFiniteDelta = errors.New("frame delta is not finite")

func checkDelta(dt float32) error {
	d := float64(dt)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return ErrNonFiniteDelta
	}
	return nil
}

// ApplyAcceleration advances velocity = velocity + acceleration*dt.
func ApplyAcceleration(ws *world.State, dt float32) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	ecs.Each2(ws.Velocity, ws.Acceleration, func(_ ecs.EntityID, v *component.Velocity, a *component.Acceleration) {
		v.Value = v.Value.Add(a.Value.Mul(dt))
	})
	return nil
}

// ApplyVelocity advances position = position + velocity*dt.
func ApplyVelocity(ws *world.State, dt float32) error {
	if err := checkDelta(dt); err != nil {
		return err
	}
	ecs.Each2(ws.Velocity, ws.Spatial, func(_ ecs.EntityID, v *component.Velocity, s *component.Spatial) {
		s.Position = s.Position.Add(v.Value.Mul(dt))
	})
	return nil
}

// AccelerationSystem integrates acceleration into velocity. Phase 3
// (EntityUpdates), registered before VelocitySystem.
type AccelerationSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewAccelerationSystem(ws *world.State, log *zap.Logger) *AccelerationSystem {
	return &AccelerationSystem{world: ws, log: log}
}

func (s *AccelerationSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *AccelerationSystem) Update(f coresys.Frame) {
	if err := ApplyAcceleration(s.world, f.Delta); err != nil {
		s.log.Error("skip acceleration", zap.Uint64("frame", f.Number), zap.Float32("dt", f.Delta), zap.Error(err))
	}
}

// VelocitySystem integrates velocity into position. Phase 3 (EntityUpdates).
type VelocitySystem struct {
	world *world.State
	log   *zap.Logger
}

func NewVelocitySystem(ws *world.State, log *zap.Logger) *VelocitySystem {
	return &VelocitySystem{world: ws, log: log}
}

func (s *VelocitySystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *VelocitySystem) Update(f coresys.Frame) {
	if err := ApplyVelocity(s.world, f.Delta); err != nil {
		s.log.Error("skip velocity", zap.Uint64("frame", f.Number), zap.Float32("dt", f.Delta), zap.Error(err))
	}
}
