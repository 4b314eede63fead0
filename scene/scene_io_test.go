package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `
name: sample
background: [0.1, 0.2, 0.3]
camera:
  position: [0, 2, 12]
  fov: 75
  orthographic_size: 6
  orthographic: true
pan:
  radius: 12
  speed: 0.5
objects:
  - name: big
    position: [5, 1, -4]
    rotation: [0, 1.5, 0]
    scale: [2, 2, 2]
  - position: [1, 0, 1]
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, s.Background)
	assert.Equal(t, mgl32.Vec3{0, 2, 12}, s.Camera.Position)
	assert.Equal(t, mgl32.Vec3{}, s.Camera.Target)
	assert.Equal(t, float32(75), s.Camera.FOV)
	assert.Equal(t, float32(6), s.Camera.OrthographicSize)
	assert.True(t, s.Camera.Orthographic)
	assert.Equal(t, Pan{Radius: 12, Speed: 0.5}, s.Pan)

	require.Len(t, s.Objects, 2)
	assert.Equal(t, "big", s.Objects[0].Name)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, s.Objects[0].Transform.Scale)
	assert.Equal(t, mgl32.Vec3{0, 1.5, 0}, s.Objects[0].Transform.Rotation)

	// Unnamed objects get a generated name and unit scale.
	assert.Equal(t, "Cube1", s.Objects[1].Name)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Objects[1].Transform.Scale)
}

func TestParseSceneDefaults(t *testing.T) {
	s, err := ParseScene([]byte("objects: []\n"))
	require.NoError(t, err)

	assert.Equal(t, float32(60), s.Camera.FOV)
	assert.Equal(t, float32(10), s.Camera.OrthographicSize)
	assert.False(t, s.Camera.Orthographic)
	assert.Equal(t, Pan{Radius: 10, Speed: 1}, s.Pan)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, s.Camera.Position)
	assert.Empty(t, s.Objects)
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty", "", ErrEmptySceneFile},
		{"target where the pan starts", "camera: {position: [0, 0, 5], target: [0, 0, 10]}\n", ErrDegenerateCamera},
		{"target elsewhere on the pan circle", "camera: {position: [0, 2, 0], target: [6, 2, 8]}\n", ErrDegenerateCamera},
		{"zero pan radius", "pan:\n  radius: 0\n  speed: 1\n", ErrInvalidPan},
		{"negative pan radius", "pan:\n  radius: -3\n  speed: 1\n", ErrInvalidPan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSceneUsesPannedCamera(t *testing.T) {
	tests := []struct {
		name string
		data string
		want mgl32.Vec3
	}{
		{"position equal to target", "camera: {position: [0, 0, 0], target: [0, 0, 0]}\n", mgl32.Vec3{0, 0, 10}},
		{"target off the circle height", "camera: {position: [3, 1, 3], target: [0, 0, 10]}\n", mgl32.Vec3{0, 1, 10}},
		{"target inside the circle", "pan: {radius: 6, speed: 1}\ncamera: {target: [0, 0, 5]}\n", mgl32.Vec3{0, 0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Camera.Position)

			s.Update(0)
			view := s.Camera.ViewMatrix()
			for i, v := range view {
				assert.False(t, math.IsNaN(float64(v)), "view[%d] is NaN", i)
			}
		})
	}
}

func TestParseSceneRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "camera:\n  zoom: 3\n"},
		{"short vector", "objects:\n  - position: [1, 2]\n"},
		{"not a mapping", "- 1\n- 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "scene: read")
}

func TestLoadSceneWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pan:\n  radius: -1\n"), 0644))

	_, err := LoadScene(path)
	assert.ErrorIs(t, err, ErrInvalidPan)
	assert.Contains(t, err.Error(), path)
}

func TestSaveLoadScene(t *testing.T) {
	want := DefaultScene()
	want.Background = mgl32.Vec3{0.2, 0.3, 0.4}
	want.Camera.Orthographic = true
	want.Apply(ControlPanSpeed, 1)

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, SaveScene(path, want))

	got, err := LoadScene(path)
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Background, got.Background)
	assert.Equal(t, want.Pan, got.Pan)
	assert.Equal(t, *want.Camera, *got.Camera)
	require.Len(t, got.Objects, len(want.Objects))
	for i := range want.Objects {
		assert.Equal(t, *want.Objects[i], *got.Objects[i])
	}
}

func TestShippedSceneMatchesDefault(t *testing.T) {
	got, err := LoadScene(filepath.Join("..", "scenes", "transformations.yaml"))
	require.NoError(t, err)

	want := DefaultScene()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Pan, got.Pan)
	assert.Equal(t, *want.Camera, *got.Camera)
	require.Len(t, got.Objects, len(want.Objects))
	for i := range want.Objects {
		assert.Equal(t, *want.Objects[i], *got.Objects[i])
	}
}
