package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"transform-demo/core"
)

var (
	ErrDegenerateCamera = errors.New("camera target lies on the pan circle")
	ErrInvalidPan       = errors.New("pan radius must be positive")
	ErrEmptySceneFile   = errors.New("empty scene file")
)

// SceneFile is the on-disk YAML layout of a scene. Optional fields are
// pointers so that absent keys fall back to the defaults of NewScene.
type SceneFile struct {
	Name       string       `yaml:"name,omitempty"`
	Background *[3]float32  `yaml:"background,omitempty"`
	Camera     CameraData   `yaml:"camera"`
	Pan        *PanData     `yaml:"pan,omitempty"`
	Objects    []ObjectData `yaml:"objects"`
}

type CameraData struct {
	Position         *[3]float32 `yaml:"position,omitempty"`
	Target           *[3]float32 `yaml:"target,omitempty"`
	FOV              *float32    `yaml:"fov,omitempty"`
	OrthographicSize *float32    `yaml:"orthographic_size,omitempty"`
	Orthographic     bool        `yaml:"orthographic"`
}

type PanData struct {
	Radius float32 `yaml:"radius"`
	Speed  float32 `yaml:"speed"`
}

type ObjectData struct {
	Name     string      `yaml:"name"`
	Position [3]float32  `yaml:"position"`
	Rotation [3]float32  `yaml:"rotation"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
}

// LoadScene reads and validates a YAML scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes YAML scene data. Unknown keys are rejected.
func ParseScene(data []byte) (*Scene, error) {
	var file SceneFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySceneFile
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	return file.Scene()
}

// SaveScene writes s as YAML to path.
func SaveScene(path string, s *Scene) error {
	data, err := yaml.Marshal(NewSceneFile(s))
	if err != nil {
		return fmt.Errorf("scene: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

// Scene builds a runtime scene from the file contents.
func (f *SceneFile) Scene() (*Scene, error) {
	s := NewScene()
	s.Name = f.Name
	if f.Background != nil {
		s.Background = mgl32.Vec3(*f.Background)
	}

	if f.Pan != nil {
		if f.Pan.Radius <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidPan, f.Pan.Radius)
		}
		s.Pan = Pan{Radius: f.Pan.Radius, Speed: f.Pan.Speed}
	}

	cam := s.Camera
	if f.Camera.Position != nil {
		cam.Position = mgl32.Vec3(*f.Camera.Position)
	}
	if f.Camera.Target != nil {
		cam.Target = mgl32.Vec3(*f.Camera.Target)
	}
	if f.Camera.FOV != nil {
		cam.FOV = *f.Camera.FOV
	}
	if f.Camera.OrthographicSize != nil {
		cam.OrthographicSize = *f.Camera.OrthographicSize
	}
	cam.Orthographic = f.Camera.Orthographic

	// Update owns x and z; only the height is taken from the file.
	s.placeCamera(0)
	if s.targetOnPanCircle() {
		return nil, fmt.Errorf("%w: target %v, radius %v", ErrDegenerateCamera, cam.Target, s.Pan.Radius)
	}

	for i, o := range f.Objects {
		t := core.NewTransform()
		t.Position = mgl32.Vec3(o.Position)
		t.Rotation = mgl32.Vec3(o.Rotation)
		if o.Scale != nil {
			t.Scale = mgl32.Vec3(*o.Scale)
		}
		name := o.Name
		if name == "" {
			name = cubeName(i)
		}
		s.AddObject(&Object{Name: name, Transform: t})
	}
	return s, nil
}

// targetOnPanCircle reports whether the panning camera passes through its
// target at some time, where the view matrix is undefined.
func (s *Scene) targetOnPanCircle() bool {
	cam := s.Camera
	if !mgl32.FloatEqual(cam.Position.Y(), cam.Target.Y()) {
		return false
	}
	dist := mgl32.Vec2{cam.Target.X(), cam.Target.Z()}.Len()
	return mgl32.FloatEqualThreshold(dist, s.Pan.Radius, 1e-4)
}

// NewSceneFile captures the current state of s.
func NewSceneFile(s *Scene) *SceneFile {
	bg := [3]float32(s.Background)
	pos := [3]float32(s.Camera.Position)
	target := [3]float32(s.Camera.Target)
	fov := s.Camera.FOV
	orthoSize := s.Camera.OrthographicSize

	f := &SceneFile{
		Name:       s.Name,
		Background: &bg,
		Camera: CameraData{
			Position:         &pos,
			Target:           &target,
			FOV:              &fov,
			OrthographicSize: &orthoSize,
			Orthographic:     s.Camera.Orthographic,
		},
		Pan:     &PanData{Radius: s.Pan.Radius, Speed: s.Pan.Speed},
		Objects: make([]ObjectData, 0, len(s.Objects)),
	}
	for _, o := range s.Objects {
		scale := [3]float32(o.Transform.Scale)
		f.Objects = append(f.Objects, ObjectData{
			Name:     o.Name,
			Position: [3]float32(o.Transform.Position),
			Rotation: [3]float32(o.Transform.Rotation),
			Scale:    &scale,
		})
	}
	return f
}
