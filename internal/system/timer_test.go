package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeatingTimer(t *testing.T) {
	tm := newRepeatingTimer(1)
	assert.False(t, tm.tick(0.6))
	assert.True(t, tm.tick(0.6))
	assert.InDelta(t, 0.2, tm.elapsed, 1e-6)

	// several intervals in one tick still fire once
	assert.True(t, tm.tick(3.5))
	assert.InDelta(t, 0.7, tm.elapsed, 1e-5)
}

func TestRepeatingTimer_IgnoresBadDelta(t *testing.T) {
	tm := newRepeatingTimer(1)
	for _, dt := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		assert.False(t, tm.tick(dt))
	}
	assert.Zero(t, tm.elapsed)

	off := newRepeatingTimer(0)
	assert.False(t, off.tick(10))
}
