// Package stats aggregates kernel events into per-round summaries.
package stats

import (
	"time"

	"github.com/l1jgo/asteroids/internal/component"
	"github.com/l1jgo/asteroids/internal/core/event"
	"github.com/l1jgo/asteroids/internal/gamestate"
)

// RoundSummary describes one life of the player craft.
type RoundSummary struct {
	Round            int
	StartFrame       uint64
	EndFrame         uint64
	Duration         time.Duration // simulated time
	ProjectilesFired int
	HazardsSpawned   int
	HazardsDestroyed int // hazards whose health ran out
	EndedAt          time.Time
}

// RoundTracker counts events between round start and GameOver. Events arrive
// through the Bus one tick after they happened, which only shifts when a
// summary is delivered, not what it contains.
type RoundTracker struct {
	current  RoundSummary
	started  float64
	onFinish func(RoundSummary)
	now      func() time.Time
	finished []RoundSummary
}

// NewRoundTracker subscribes to bus. onFinish may be nil.
func NewRoundTracker(bus *event.Bus, onFinish func(RoundSummary)) *RoundTracker {
	t := &RoundTracker{
		current:  RoundSummary{Round: 1},
		onFinish: onFinish,
		now:      time.Now,
	}
	event.Subscribe(bus, t.onSpawned)
	event.Subscribe(bus, t.onDespawned)
	event.Subscribe(bus, t.onStateEntered)
	return t
}

// Current returns the running tally.
func (t *RoundTracker) Current() RoundSummary { return t.current }

// Finished returns every completed round, oldest first.
func (t *RoundTracker) Finished() []RoundSummary { return t.finished }

func (t *RoundTracker) onSpawned(ev event.EntitySpawned) {
	switch ev.Role {
	case component.RoleProjectile:
		t.current.ProjectilesFired++
	case component.RoleHazard:
		t.current.HazardsSpawned++
	}
}

func (t *RoundTracker) onDespawned(ev event.EntityDespawned) {
	if ev.Role == component.RoleHazard && ev.Depleted {
		t.current.HazardsDestroyed++
	}
}

func (t *RoundTracker) onStateEntered(ev event.StateEntered) {
	switch {
	case ev.To == gamestate.GameOver:
		s := t.current
		s.EndFrame = ev.Frame
		s.Duration = time.Duration((ev.Elapsed - t.started) * float64(time.Second))
		s.EndedAt = t.now()
		t.finished = append(t.finished, s)
		if t.onFinish != nil {
			t.onFinish(s)
		}
		t.current = RoundSummary{Round: s.Round + 1}
	case ev.From == gamestate.GameOver && ev.To == gamestate.InGame:
		t.current.StartFrame = ev.Frame
		t.started = ev.Elapsed
	}
}
