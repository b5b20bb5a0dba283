package component

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollider_RejectsNonPositiveRadius(t *testing.T) {
	for _, r := range []float32{0, -1, float32(math.NaN())} {
		_, err := NewCollider(r)
		assert.ErrorIs(t, err, ErrInvalidRadius, "radius %v", r)
	}

	c, err := NewCollider(2.5)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), c.Radius())
	assert.Empty(t, c.Overlaps)
}

func TestSpatial_ForwardFollowsYaw(t *testing.T) {
	s := NewSpatial(mgl32.Vec3{})
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, s.Forward())

	s.RotateY(math.Pi / 2)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, s.Forward())
}

func TestSpatial_RollKeepsForward(t *testing.T) {
	s := NewSpatial(mgl32.Vec3{})
	s.RotateLocalZ(1.2)
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, s.Forward())
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "axis %d of %v", i, got)
	}
}

func TestHealth_Depleted(t *testing.T) {
	assert.True(t, (&Health{Value: 0}).Depleted())
	assert.True(t, (&Health{Value: -3}).Depleted())
	assert.False(t, (&Health{Value: 0.1}).Depleted())
}
