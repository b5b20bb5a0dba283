package system

import "math"

// repeatingTimer fires once each time the accumulated delta crosses the
// interval. Leftover time carries into the next period.
type repeatingTimer struct {
	interval float32
	elapsed  float32
}

func newRepeatingTimer(interval float32) repeatingTimer {
	return repeatingTimer{interval: interval}
}

// tick advances the timer and reports whether it finished during this tick.
// A tick longer than several intervals still fires only once. Non-positive
// and non-finite deltas leave the timer untouched.
func (t *repeatingTimer) tick(dt float32) bool {
	if t.interval <= 0 || !(dt > 0) || checkDelta(dt) != nil {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed = float32(math.Mod(float64(t.elapsed), float64(t.interval)))
	return true
}
