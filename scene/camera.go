package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes shared by both projection modes.
const (
	NearPlane = 0.01
	FarPlane  = 100
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera looks from Position towards Target. FOV is the vertical field of
// view in degrees; OrthographicSize is the half-height of the orthographic
// view volume.
type Camera struct {
	Position         mgl32.Vec3
	Target           mgl32.Vec3
	FOV              float32
	AspectRatio      float32
	OrthographicSize float32
	Orthographic     bool
}

func NewCamera() *Camera {
	return &Camera{
		FOV:              60,
		AspectRatio:      1,
		OrthographicSize: 10,
	}
}

// UpdateAspectRatio must be called whenever the output surface is resized.
// A zero height (minimized window) keeps the previous ratio.
func (c *Camera) UpdateAspectRatio(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

// ViewMatrix builds the world-to-camera transform. Position must differ from
// Target; otherwise the result is NaN.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward).Normalize()

	// The camera looks down -Z in view space.
	back := forward.Mul(-1)

	// The basis is orthonormal, so its inverse is its transpose.
	basis := mgl32.Mat4FromCols(right.Vec4(0), up.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1}).Transpose()
	translation := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return basis.Mul4(translation)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.Orthographic {
		top := c.OrthographicSize
		right := top * c.AspectRatio
		return mgl32.Ortho(-right, right, -top, top, NearPlane, FarPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, NearPlane, FarPlane)
}
