package game

import (
	"math"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/scripting"
)

// PilotContext summarises the world from the craft's point of view for the
// autopilot script.
func (k *Kernel) PilotContext() scripting.PilotContext {
	ws := k.world
	pc := scripting.PilotContext{
		Frame:   k.frame,
		Elapsed: k.elapsed,
		Hazards: ws.CountRole(component.RoleHazard),
		State:   k.machine.Current().String(),
	}

	craft, ok := ws.Craft()
	if !ok {
		return pc
	}
	pc.HasCraft = true
	pc.Shielded = ws.Shield.Has(craft)
	if h, ok := ws.Health.Get(craft); ok {
		pc.CraftHealth = h.Value
	}
	sp, ok := ws.Spatial.Get(craft)
	if !ok {
		return pc
	}

	forward := sp.Forward()
	nearest := float32(-1)
	ws.EachRole(component.RoleHazard, func(id ecs.EntityID) {
		hz, ok := ws.Spatial.Get(id)
		if !ok {
			return
		}
		d := hz.Position.Sub(sp.Position)
		dist := d.Len()
		if nearest >= 0 && dist >= nearest {
			return
		}
		nearest = dist
		pc.NearestDist = dist
		pc.NearestAngle = yawBetween(forward.X(), forward.Z(), d.X(), d.Z())
	})
	return pc
}

// yawBetween returns the rotation about +Y, in (-π, π], that turns the
// horizontal direction (fx, fz) towards (tx, tz).
func yawBetween(fx, fz, tx, tz float32) float32 {
	a := math.Atan2(float64(tx), float64(tz)) - math.Atan2(float64(fx), float64(fz))
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return float32(a)
}
