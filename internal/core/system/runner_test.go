package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase { return r.phase }
func (r *recorder) Update(Frame) { *r.log = append(*r.log, r.name) }

func TestRunner_PhaseOrderWithBarriers(t *testing.T) {
	var log []string
	r := NewRunner(func(p Phase) { log = append(log, "|"+p.String()) })

	r.Register(&recorder{"damage", PhaseEntityUpdates, &log})
	r.Register(&recorder{"detect", PhaseCollisionDetection, &log})
	r.Register(&recorder{"motion", PhaseEntityUpdates, &log})
	r.Register(&recorder{"despawn", PhaseDespawn, &log})
	r.Register(&recorder{"fire", PhaseUserInput, &log})

	r.Tick(Frame{Number: 1, Delta: 0.016})

	assert.Equal(t, []string{
		"detect", "|collision_detection",
		"despawn", "|despawn",
		"fire", "|user_input",
		"damage", "motion", "|entity_updates",
	}, log)
}

func TestRunner_TickPhase(t *testing.T) {
	var log []string
	r := NewRunner(func(p Phase) { log = append(log, "|"+p.String()) })
	r.Register(&recorder{"detect", PhaseCollisionDetection, &log})
	r.Register(&recorder{"despawn", PhaseDespawn, &log})

	r.TickPhase(PhaseDespawn, Frame{})
	r.TickPhase(PhaseDiagnostics, Frame{})

	assert.Equal(t, []string{"despawn", "|despawn"}, log)
}
