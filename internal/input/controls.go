// Package input turns raw key state into the per-frame control snapshot the
// simulation consumes.
package input

// Controls is the control-signal snapshot for one frame. Movement fields are
// held state; Fire, Shield and Pause are edges, true only on the frame the
// key went down.
type Controls struct {
	Forward   bool
	Backward  bool
	YawLeft   bool
	YawRight  bool
	RollLeft  bool
	RollRight bool

	Fire   bool
	Shield bool
	Pause  bool
}

// Keys is raw held state as reported by a device or script.
type Keys struct {
	Forward   bool
	Backward  bool
	YawLeft   bool
	YawRight  bool
	RollLeft  bool
	RollRight bool
	Fire      bool
	Shield    bool
	Pause     bool
}

// Tracker remembers the previous Keys so edge signals fire once per press.
type Tracker struct {
	prev Keys
}

// Update folds the current held state into a Controls snapshot.
func (t *Tracker) Update(k Keys) Controls {
	c := Controls{
		Forward:   k.Forward,
		Backward:  k.Backward,
		YawLeft:   k.YawLeft,
		YawRight:  k.YawRight,
		RollLeft:  k.RollLeft,
		RollRight: k.RollRight,
		Fire:      k.Fire && !t.prev.Fire,
		Shield:    k.Shield && !t.prev.Shield,
		Pause:     k.Pause && !t.prev.Pause,
	}
	t.prev = k
	return c
}

// Reset forgets the previous state, so a key still held counts as a new press.
func (t *Tracker) Reset() { t.prev = Keys{} }
