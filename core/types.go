package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Transform places an object in the world. Rotation holds Euler angles in
// radians, applied X first, then Y, then Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Scale: mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix returns T·S·R with R = Rz·Ry·Rx.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translation.Mul4(scale).Mul4(t.RotationMatrix())
}

func (t Transform) RotationMatrix() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(t.Rotation.X())
	ry := mgl32.HomogRotate3DY(t.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(t.Rotation.Z())
	return rz.Mul4(ry).Mul4(rx)
}

// Rotate adds delta to the Euler angles. Angles are left unwrapped.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
}
