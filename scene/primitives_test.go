package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCubeCounts(t *testing.T) {
	cube := CreateCube(1, 1, 1)
	assert.Len(t, cube.Vertices, 24)
	assert.Len(t, cube.Indices, 36)
	for _, idx := range cube.Indices {
		require.Less(t, idx, uint32(len(cube.Vertices)))
	}
}

func TestCreateCubeExtents(t *testing.T) {
	cube := CreateCube(2, 4, 6)
	for _, v := range cube.Vertices {
		assert.InDelta(t, 1, abs32(v.Position.X()), 1e-6)
		assert.InDelta(t, 2, abs32(v.Position.Y()), 1e-6)
		assert.InDelta(t, 3, abs32(v.Position.Z()), 1e-6)
	}
}

func TestCreateCubeWindsOutward(t *testing.T) {
	cube := CreateCube(1, 2, 3)
	for i := 0; i < len(cube.Indices); i += 3 {
		a := cube.Vertices[cube.Indices[i]]
		b := cube.Vertices[cube.Indices[i+1]]
		c := cube.Vertices[cube.Indices[i+2]]

		faceNormal := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, faceNormal.Dot(a.Normal), float32(0), "triangle %d winds inward", i/3)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
