package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/event"
	"github.com/l1jgo/asteroids/internal/gamestate"
)

func deliver(bus *event.Bus) {
	bus.SwapBuffers()
	bus.DispatchAll()
}

func TestRoundTracker_CountsAndFinishes(t *testing.T) {
	bus := event.NewBus()
	var got []RoundSummary
	tr := NewRoundTracker(bus, func(s RoundSummary) { got = append(got, s) })
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	event.Emit(bus, event.EntitySpawned{Role: component.RoleProjectile})
	event.Emit(bus, event.EntitySpawned{Role: component.RoleProjectile})
	event.Emit(bus, event.EntitySpawned{Role: component.RoleHazard})
	event.Emit(bus, event.EntityDespawned{Role: component.RoleHazard, Depleted: true})
	event.Emit(bus, event.EntityDespawned{Role: component.RoleHazard, Depleted: false})
	event.Emit(bus, event.EntityDespawned{Role: component.RoleProjectile, Depleted: true})
	deliver(bus)

	assert.Equal(t, 2, tr.Current().ProjectilesFired)
	assert.Equal(t, 1, tr.Current().HazardsDestroyed)

	event.Emit(bus, event.StateEntered{From: gamestate.InGame, To: gamestate.GameOver, Frame: 120, Elapsed: 2})
	deliver(bus)

	require.Len(t, got, 1)
	assert.Equal(t, RoundSummary{
		Round:            1,
		EndFrame:         120,
		Duration:         2 * time.Second,
		ProjectilesFired: 2,
		HazardsSpawned:   1,
		HazardsDestroyed: 1,
		EndedAt:          fixed,
	}, got[0])
	assert.Equal(t, 2, tr.Current().Round)

	event.Emit(bus, event.StateEntered{From: gamestate.GameOver, To: gamestate.InGame, Frame: 121, Elapsed: 2.5})
	deliver(bus)
	event.Emit(bus, event.StateEntered{From: gamestate.InGame, To: gamestate.GameOver, Frame: 200, Elapsed: 4})
	deliver(bus)

	require.Len(t, tr.Finished(), 2)
	second := tr.Finished()[1]
	assert.Equal(t, uint64(121), second.StartFrame)
	assert.Equal(t, 1500*time.Millisecond, second.Duration)
}

func TestRoundTracker_PauseDoesNotEndRound(t *testing.T) {
	bus := event.NewBus()
	tr := NewRoundTracker(bus, nil)

	event.Emit(bus, event.StateEntered{From: gamestate.InGame, To: gamestate.Paused})
	event.Emit(bus, event.StateEntered{From: gamestate.Paused, To: gamestate.InGame})
	deliver(bus)

	assert.Empty(t, tr.Finished())
	assert.Equal(t, 1, tr.Current().Round)
}
