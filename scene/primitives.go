package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"transform-demo/core"
)

// cubeFace describes one side of a cube by its outward normal and two in-plane
// axes with u × v = normal, so corners listed (-u-v, +u-v, +u+v, -u+v) wind
// counter-clockwise seen from outside.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

var cubeFaces = [6]cubeFace{
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
}

// CreateCube generates a box centered on the origin with four vertices per face.
func CreateCube(width, height, depth float32) core.MeshData {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	data := core.MeshData{
		Vertices: make([]core.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	for _, face := range cubeFaces {
		base := uint32(len(data.Vertices))
		for _, c := range corners {
			p := face.normal.Add(face.u.Mul(c[0])).Add(face.v.Mul(c[1]))
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: mgl32.Vec3{p[0] * half[0], p[1] * half[1], p[2] * half[2]},
				Normal:   face.normal,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		data.Indices = append(data.Indices,
			base, base+1, base+2,
			base+2, base+3, base,
		)
	}

	return data
}
