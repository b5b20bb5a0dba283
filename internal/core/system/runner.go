package system

import (
	"slices"
)

// Barrier is called after each phase that ran at least one system. The
// kernel uses it to flush deferred structural commands.
type Barrier func(Phase)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool
	barrier Barrier
}

func NewRunner(barrier Barrier) *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		barrier: barrier,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) Tick(f Frame) {
	r.ensureSorted()
	for i := 0; i < len(r.systems); {
		phase := r.systems[i].Phase()
		for ; i < len(r.systems) && r.systems[i].Phase() == phase; i++ {
			r.systems[i].Update(f)
		}
		if r.barrier != nil {
			r.barrier(phase)
		}
	}
}

// TickPhase runs only the systems of one phase, followed by its barrier.
func (r *Runner) TickPhase(phase Phase, f Frame) {
	r.ensureSorted()
	ran := false
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(f)
			ran = true
		}
	}
	if ran && r.barrier != nil {
		r.barrier(phase)
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		slices.SortStableFunc(r.systems, func(a, b System) int {
			return int(a.Phase()) - int(b.Phase())
		})
		r.sorted = true
	}
}
