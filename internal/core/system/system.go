package system

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseCollisionDetection Phase = iota // 0: rebuild collider overlap sets
	PhaseDespawn                         // 1: distance / depleted-health removal
	PhaseUserInput                       // 2: craft controls, weapons, timed spawners
	PhaseEntityUpdates                   // 3: collision resolution, damage, motion
	PhaseDiagnostics                     // 4: read-only tracing
)

func (p Phase) String() string {
	switch p {
	case PhaseCollisionDetection:
		return "collision_detection"
	case PhaseDespawn:
		return "despawn"
	case PhaseUserInput:
		return "user_input"
	case PhaseEntityUpdates:
		return "entity_updates"
	case PhaseDiagnostics:
		return "diagnostics"
	}
	return "unknown"
}

// Frame is the per-tick context handed to every system.
type Frame struct {
	Number  uint64
	Delta   float32 // seconds since the previous tick
	Elapsed float64 // simulated seconds since the kernel started
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(f Frame)
}
