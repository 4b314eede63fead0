package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Control identifies one adjustable setting of the demo.
type Control int

const (
	ControlPanRadius Control = iota
	ControlPanSpeed
	ControlFOV
	ControlOrthographicSize
)

// Range is the inclusive interval a control is clamped to.
type Range struct {
	Min, Max float32
}

var controlRanges = map[Control]Range{
	ControlPanRadius:        {Min: 5, Max: 20},
	ControlPanSpeed:         {Min: 0.1, Max: 4},
	ControlFOV:              {Min: 10, Max: 180},
	ControlOrthographicSize: {Min: 1, Max: 30},
}

func (c Control) String() string {
	switch c {
	case ControlPanRadius:
		return "Pan Radius"
	case ControlPanSpeed:
		return "Pan Speed"
	case ControlFOV:
		return "Fov"
	case ControlOrthographicSize:
		return "Orthographic Height"
	}
	return "Unknown"
}

func (c Control) Range() Range {
	return controlRanges[c]
}

// Value reads the current setting for c.
func (s *Scene) Value(c Control) float32 {
	switch c {
	case ControlPanRadius:
		return s.Pan.Radius
	case ControlPanSpeed:
		return s.Pan.Speed
	case ControlFOV:
		return s.Camera.FOV
	case ControlOrthographicSize:
		return s.Camera.OrthographicSize
	}
	return 0
}

// Apply adds delta to the setting for c and clamps it to its range. It
// returns the new value.
func (s *Scene) Apply(c Control, delta float32) float32 {
	r, ok := controlRanges[c]
	if !ok {
		return 0
	}
	v := mgl32.Clamp(s.Value(c)+delta, r.Min, r.Max)
	switch c {
	case ControlPanRadius:
		s.Pan.Radius = v
	case ControlPanSpeed:
		s.Pan.Speed = v
	case ControlFOV:
		s.Camera.FOV = v
	case ControlOrthographicSize:
		s.Camera.OrthographicSize = v
	}
	return v
}

func (s *Scene) ToggleOrthographic() bool {
	s.Camera.Orthographic = !s.Camera.Orthographic
	return s.Camera.Orthographic
}
