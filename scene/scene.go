package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"transform-demo/core"
)

// Object is a named transform drawn with the shared cube mesh.
type Object struct {
	Name      string
	Transform core.Transform
}

// Pan moves the camera around the world Y axis on a circle.
type Pan struct {
	Radius float32
	Speed  float32
}

// Scene holds everything the render loop reads each frame.
type Scene struct {
	Name       string
	Objects    []*Object
	Camera     *Camera
	Pan        Pan
	Background mgl32.Vec3
}

func NewScene() *Scene {
	return &Scene{
		Objects: make([]*Object, 0),
		Camera:  NewCamera(),
		Pan:     Pan{Radius: 10, Speed: 1},
	}
}

// DefaultScene returns six cubes of assorted sizes spread around the origin.
func DefaultScene() *Scene {
	s := NewScene()
	s.Name = "Transformations"
	cubes := []struct {
		position, rotation, scale mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 1}, mgl32.Vec3{1, 0, 1}, mgl32.Vec3{1, 1, 1}},
		{mgl32.Vec3{5, 1, -4}, mgl32.Vec3{5, 1, -4}, mgl32.Vec3{2, 2, 2}},
		{mgl32.Vec3{3, -3, 0}, mgl32.Vec3{3, -3, 0}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{mgl32.Vec3{0, 3, 1}, mgl32.Vec3{0, 3, 1}, mgl32.Vec3{3, 3, 3}},
		{mgl32.Vec3{2, -1, 2}, mgl32.Vec3{2, -1, 2}, mgl32.Vec3{1, 1, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, -0.5, 0.3}, mgl32.Vec3{1, 2, 0.5}},
	}
	for i, c := range cubes {
		s.AddObject(&Object{
			Name: cubeName(i),
			Transform: core.Transform{
				Position: c.position,
				Rotation: c.rotation,
				Scale:    c.scale,
			},
		})
	}
	s.placeCamera(0)
	return s
}

func cubeName(i int) string {
	return fmt.Sprintf("Cube%d", i)
}

func (s *Scene) AddObject(obj *Object) {
	s.Objects = append(s.Objects, obj)
}

// Resize keeps the camera aspect ratio in step with the framebuffer.
func (s *Scene) Resize(width, height int) {
	s.Camera.UpdateAspectRatio(width, height)
}

// Update advances the scene to time t (seconds). The camera is placed on the
// pan circle; the first half of the objects spin about X and the rest about
// Z. Spin accumulates every call and is never wrapped.
func (s *Scene) Update(t float32) {
	s.placeCamera(t)

	half := len(s.Objects) / 2
	for i, o := range s.Objects {
		if i < half {
			o.Transform.Rotate(mgl32.Vec3{float32(math.Sin(float64(t))) * 0.1, 0, 0})
		} else {
			o.Transform.Rotate(mgl32.Vec3{0, 0, float32(math.Cos(float64(t))) * 0.2})
		}
	}
}

func (s *Scene) placeCamera(t float32) {
	angle := float64(t * s.Pan.Speed)
	s.Camera.Position[0] = s.Pan.Radius * float32(math.Sin(angle))
	s.Camera.Position[2] = s.Pan.Radius * float32(math.Cos(angle))
}
