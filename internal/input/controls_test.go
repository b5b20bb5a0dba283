package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_EdgesFireOncePerPress(t *testing.T) {
	var tr Tracker

	c := tr.Update(Keys{Fire: true, Forward: true})
	assert.True(t, c.Fire)
	assert.True(t, c.Forward)

	c = tr.Update(Keys{Fire: true, Forward: true})
	assert.False(t, c.Fire, "held fire must not repeat")
	assert.True(t, c.Forward, "movement is held state")

	c = tr.Update(Keys{})
	assert.False(t, c.Fire)

	c = tr.Update(Keys{Fire: true, Pause: true, Shield: true})
	assert.True(t, c.Fire)
	assert.True(t, c.Pause)
	assert.True(t, c.Shield)
}

func TestTracker_Reset(t *testing.T) {
	var tr Tracker
	tr.Update(Keys{Pause: true})
	tr.Reset()
	assert.True(t, tr.Update(Keys{Pause: true}).Pause)
}
