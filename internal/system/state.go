package system

import (
	"github.com/l1jgo/asteroids/internal/gamestate"
	"github.com/l1jgo/asteroids/internal/input"
)

// StateControlSystem evaluates state transitions every frame, whatever the
// current state: the pause edge toggles InGame and Paused, and GameOver
// immediately asks to return to InGame.
type StateControlSystem struct {
	machine  *gamestate.Machine
	controls *input.Controls
}

func NewStateControlSystem(machine *gamestate.Machine, controls *input.Controls) *StateControlSystem {
	return &StateControlSystem{machine: machine, controls: controls}
}

func (s *StateControlSystem) Evaluate() {
	switch s.machine.Current() {
	case gamestate.InGame:
		if s.controls.Pause {
			s.machine.Request(gamestate.Paused)
		}
	case gamestate.Paused:
		if s.controls.Pause {
			s.machine.Request(gamestate.InGame)
		}
	case gamestate.GameOver:
		s.machine.Request(gamestate.InGame)
	}
}
