package component

import "github.com/go-gl/mathgl/mgl32"

// Spatial is an entity's world transform.
type Spatial struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewSpatial places an entity at pos with identity orientation.
func NewSpatial(pos mgl32.Vec3) *Spatial {
	return &Spatial{Position: pos, Orientation: mgl32.QuatIdent()}
}

// Forward is the direction the entity faces: local +Z rotated into world space.
func (s *Spatial) Forward() mgl32.Vec3 {
	return s.Orientation.Rotate(mgl32.Vec3{0, 0, 1})
}

// RotateY turns the entity about the world Y axis.
func (s *Spatial) RotateY(angle float32) {
	s.Orientation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}).Mul(s.Orientation).Normalize()
}

// RotateLocalZ rolls the entity about its own Z axis.
func (s *Spatial) RotateLocalZ(angle float32) {
	s.Orientation = s.Orientation.Mul(mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})).Normalize()
}

// Velocity in world units per second.
type Velocity struct {
	Value mgl32.Vec3
}

// Acceleration in world units per second squared.
type Acceleration struct {
	Value mgl32.Vec3
}
