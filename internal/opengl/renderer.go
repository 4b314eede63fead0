package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"transform-demo/scene"
)

// Uniform names shared with the GLSL sources below.
const (
	UniformModel      = "_Model"
	UniformView       = "_View"
	UniformProjection = "_Projection"
)

const vertexShader = `#version 410 core
layout(location = 0) in vec3 vPos;
layout(location = 1) in vec3 vNormal;
layout(location = 2) in vec2 vUV;

uniform mat4 _Model;
uniform mat4 _View;
uniform mat4 _Projection;

out vec3 Normal;
out vec2 UV;

void main() {
	Normal = vNormal;
	UV = vUV;
	gl_Position = _Projection * _View * _Model * vec4(vPos, 1.0);
}
`

const fragmentShader = `#version 410 core
in vec3 Normal;
in vec2 UV;

out vec4 FragColor;

void main() {
	FragColor = vec4(abs(Normal) * 0.8 + vec3(UV, 0.0) * 0.2, 1.0);
}
`

// Renderer draws every scene object with one shared cube mesh.
type Renderer struct {
	program *Program
	cube    *Mesh
}

// NewRenderer loads the GL function pointers, so a context must be current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	program, err := NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{
		program: program,
		cube:    UploadMesh(scene.CreateCube(1, 1, 1)),
	}, nil
}

// Version reports the driver's GL version string.
func (r *Renderer) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Render clears the frame and draws s. View and projection are computed once
// per frame; the model matrix once per object.
func (r *Renderer) Render(s *scene.Scene) {
	bg := s.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4(UniformView, s.Camera.ViewMatrix())
	r.program.SetMat4(UniformProjection, s.Camera.ProjectionMatrix())

	for _, obj := range s.Objects {
		r.program.SetMat4(UniformModel, obj.Transform.ModelMatrix())
		r.cube.Draw()
	}
}

func (r *Renderer) Destroy() {
	r.cube.Destroy()
	r.program.Destroy()
}
