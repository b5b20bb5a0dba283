// Package game assembles the simulation kernel: the world, the state machine
// and the phase runner with every gameplay system registered in order.
package game

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/ecs"
	"github.com/l1jgo/asteroids/internal/core/event"
	coresys "github.com/l1jgo/asteroids/internal/core/system"
	"github.com/l1jgo/asteroids/internal/data"
	"github.com/l1jgo/asteroids/internal/gamestate"
	"github.com/l1jgo/asteroids/internal/input"
	"github.com/l1jgo/asteroids/internal/system"
	"github.com/l1jgo/asteroids/internal/telemetry"
	"github.com/l1jgo/asteroids/internal/world"
	"go.uber.org/zap"
)

// Deps bundles what the kernel needs from the process. Only Archetypes and
// Log are required.
type Deps struct {
	Archetypes *data.Archetypes
	Scaler     system.DamageScaler
	Rand       *rand.Rand
	Bus        *event.Bus
	Metrics    *telemetry.Metrics
	Trace      bool
	Log        *zap.Logger
}

// Kernel runs one simulation tick per call to Tick. It is not safe for
// concurrent use; the game loop goroutine owns it.
type Kernel struct {
	world   *world.State
	machine *gamestate.Machine
	bus     *event.Bus
	runner  *coresys.Runner
	metrics *telemetry.Metrics
	log     *zap.Logger

	controls   input.Controls
	collisions *event.Queue[event.Collision]
	states     *system.StateControlSystem
	crafts     *system.CraftSpawner
	asteroids  *system.AsteroidSpawnSystem
	damage     *system.DamageSystem

	frame   uint64
	elapsed float64
	flushed ecs.FlushStats // accumulated over the current tick
}

// New builds the kernel and spawns the first player craft.
func New(deps Deps) (*Kernel, error) {
	if deps.Archetypes == nil {
		deps.Archetypes = data.DefaultArchetypes()
	}
	if err := deps.Archetypes.Validate(); err != nil {
		return nil, fmt.Errorf("archetypes: %w", err)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Bus == nil {
		deps.Bus = event.NewBus()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	k := &Kernel{
		world:      world.NewState(),
		machine:    gamestate.NewMachine(),
		bus:        deps.Bus,
		metrics:    deps.Metrics,
		log:        deps.Log,
		collisions: event.NewQueue[event.Collision](),
	}
	k.runner = coresys.NewRunner(func(coresys.Phase) { k.flush() })
	k.registerSystems(deps)
	k.registerHooks()

	if _, err := k.crafts.Spawn(); err != nil {
		return nil, fmt.Errorf("spawn craft: %w", err)
	}
	k.world.ECS.Flush()
	return k, nil
}

func (k *Kernel) registerSystems(deps Deps) {
	ws, a, log := k.world, deps.Archetypes, deps.Log

	k.states = system.NewStateControlSystem(k.machine, &k.controls)
	k.crafts = system.NewCraftSpawner(ws, a.Spaceship, k.bus, log)
	k.asteroids = system.NewAsteroidSpawnSystem(ws, a.Asteroid, deps.Rand, k.bus, log)
	k.damage = system.NewDamageSystem(ws, k.collisions, deps.Scaler, log)

	// Phase 0: CollisionDetection
	k.runner.Register(system.NewCollisionDetectionSystem(ws, log))

	// Phase 1: Despawn
	k.runner.Register(system.NewDistanceDespawnSystem(ws, a.DespawnDistance, log))
	k.runner.Register(system.NewHealthDespawnSystem(ws, log))

	// Phase 2: UserInput
	k.runner.Register(system.NewCraftControlSystem(ws, a.Spaceship, &k.controls, log))
	k.runner.Register(system.NewWeaponSystem(ws, a.Missile, &k.controls, k.bus, log))
	k.runner.Register(system.NewShieldSystem(ws, &k.controls))
	k.runner.Register(k.asteroids)

	// Phase 3: EntityUpdates. Resolvers feed DamageSystem through the
	// collision queue, so they must come first.
	k.runner.Register(system.NewCollisionResolveSystem(ws, component.RoleHazard, k.collisions))
	k.runner.Register(system.NewCollisionResolveSystem(ws, component.RolePlayerCraft, k.collisions))
	k.runner.Register(system.NewCollisionResolveSystem(ws, component.RoleProjectile, k.collisions))
	k.runner.Register(k.damage)
	k.runner.Register(system.NewAccelerationSystem(ws, log))
	k.runner.Register(system.NewVelocitySystem(ws, log))
	k.runner.Register(system.NewAsteroidRotationSystem(ws, a.Asteroid.RotateSpeed))
	k.runner.Register(system.NewCraftDestroyedSystem(ws, k.machine, log))

	// Phase 4: Diagnostics
	if deps.Trace {
		k.runner.Register(system.NewPositionTraceSystem(ws, log.Named("trace")))
	}
}

func (k *Kernel) registerHooks() {
	ws := k.world

	ws.ECS.OnDespawn(func(id ecs.EntityID) {
		role := ws.RoleOf(id)
		if role == component.RoleNone {
			return
		}
		depleted := false
		if h, ok := ws.Health.Get(id); ok {
			depleted = h.Depleted()
		}
		event.Emit(k.bus, event.EntityDespawned{EntityID: id, Role: role, Depleted: depleted})
	})

	// Leaving a round clears the craft and its missiles. The flush has to
	// happen here so the spawner below no longer sees the old craft.
	k.machine.OnExit(gamestate.InGame, func(_, to gamestate.State) {
		if to != gamestate.GameOver {
			return
		}
		ws.Scoped.Each(func(id ecs.EntityID, _ *component.StateScoped) {
			ws.ECS.Despawn(id)
		})
		k.flush()
	})

	k.machine.OnEnter(gamestate.GameOver, func(_, _ gamestate.State) {
		if _, err := k.crafts.Spawn(); err != nil {
			k.log.Error("respawn craft", zap.Error(err))
		}
		k.flush()
	})
}

func (k *Kernel) flush() {
	st := k.world.ECS.Flush()
	k.flushed.Spawned += st.Spawned
	k.flushed.Despawned += st.Despawned
}

// Tick advances the simulation by dt seconds using the given control
// snapshot. Transitions requested during the previous tick are applied first;
// gameplay phases only run while the state is InGame.
func (k *Kernel) Tick(dt float32, c input.Controls) {
	start := time.Now()
	k.frame++
	if d := float64(dt); !math.IsNaN(d) && !math.IsInf(d, 0) {
		k.elapsed += d
	}
	k.controls = c
	k.flushed = ecs.FlushStats{}

	// Events emitted last tick become visible to observers now.
	k.bus.SwapBuffers()
	k.bus.DispatchAll()

	if from, to, ok := k.machine.Apply(); ok {
		k.log.Info("state transition",
			zap.Uint64("frame", k.frame),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		event.Emit(k.bus, event.StateEntered{From: from, To: to, Frame: k.frame, Elapsed: k.elapsed})
		k.metrics.Transition(context.Background(), from.String(), to.String())
	}
	k.flush()

	k.states.Evaluate()

	before := k.damage.Processed()
	if k.machine.Is(gamestate.InGame) {
		k.runner.Tick(coresys.Frame{Number: k.frame, Delta: dt, Elapsed: k.elapsed})
	}

	k.metrics.Frame(context.Background(), time.Since(start),
		k.flushed.Spawned, k.flushed.Despawned,
		int(k.damage.Processed()-before), k.world.ECS.Len())
}

// Advance is Tick with a wall-clock delta.
func (k *Kernel) Advance(d time.Duration, c input.Controls) {
	k.Tick(float32(d.Seconds()), c)
}

// World exposes the entity stores for rendering and inspection.
func (k *Kernel) World() *world.State { return k.world }

// State returns the current game state.
func (k *Kernel) State() gamestate.State { return k.machine.Current() }

// Machine exposes the state machine for observers that want hooks.
func (k *Kernel) Machine() *gamestate.Machine { return k.machine }

// Bus returns the event bus observers subscribe to.
func (k *Kernel) Bus() *event.Bus { return k.bus }

// Frame returns the number of ticks run so far.
func (k *Kernel) Frame() uint64 { return k.frame }

// Elapsed returns simulated seconds since start, paused time included.
func (k *Kernel) Elapsed() float64 { return k.elapsed }

// SpawnAsteroid queues one hazard outside the spawn timer; it appears at the
// next barrier.
func (k *Kernel) SpawnAsteroid() (ecs.EntityID, error) {
	return k.asteroids.Spawn()
}
