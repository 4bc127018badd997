package interaction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// HandlerType names the six interaction handler kinds owned by a Pack.
type HandlerType int

const (
	CameraHandlerType HandlerType = iota
	CrosshairsHandlerType
	RefImageHandlerType
	SlideHandlerType
	StackHandlerType
	WindowLevelHandlerType
)

var allHandlerTypes = []HandlerType{
	CameraHandlerType,
	CrosshairsHandlerType,
	RefImageHandlerType,
	SlideHandlerType,
	StackHandlerType,
	WindowLevelHandlerType,
}

func (t HandlerType) String() string {
	switch t {
	case CameraHandlerType:
		return "Camera"
	case CrosshairsHandlerType:
		return "Crosshairs"
	case RefImageHandlerType:
		return "RefImageTransform"
	case SlideHandlerType:
		return "SlideTransform"
	case StackHandlerType:
		return "StackTransform"
	case WindowLevelHandlerType:
		return "WindowLevel"
	default:
		return fmt.Sprintf("HandlerType(%d)", int(t))
	}
}

// Handler turns pointer input on one view into camera or frame changes.
//
// Positions are normalised device coordinates of the view: [-1, 1] on both
// axes with +Y up. Scroll deltas are in wheel notches, positive away from the
// user.
type Handler interface {
	Type() HandlerType
	Press(pos r2.Vec)
	Drag(from, to r2.Vec)
	Release(pos r2.Vec)
	Scroll(delta float64)
}

// Settings holds the sensitivities shared by all handlers.
type Settings struct {
	// RotateRadiansPerNDC is the rotation applied per unit of pointer travel
	RotateRadiansPerNDC float64

	// ZoomPerNDC is the log zoom change per unit of vertical pointer travel
	ZoomPerNDC float64

	// ScrollZoomFactor is the zoom factor applied per scroll notch
	ScrollZoomFactor float64

	// ScrollStep is the World distance the crosshairs move per scroll notch
	ScrollStep float64

	// WindowPerNDC and LevelPerNDC scale window/level drags
	WindowPerNDC float64
	LevelPerNDC  float64

	// MinWindow is the smallest window width
	MinWindow float64

	// InitialWindow and InitialLevel seed the window/level handler
	InitialWindow float64
	InitialLevel  float64

	// MinZoom and MaxZoom bound camera zoom
	MinZoom float64
	MaxZoom float64

	// OrthoHalfHeight is the World half height shown at zoom 1
	OrthoHalfHeight float64

	// FieldOfView is the vertical perspective angle in radians
	FieldOfView float64
}

// DefaultSettings returns the default handler settings.
func DefaultSettings() Settings {
	return Settings{
		RotateRadiansPerNDC: math.Pi / 2,
		ZoomPerNDC:          1,
		ScrollZoomFactor:    1.1,
		ScrollStep:          1,
		WindowPerNDC:        0.5,
		LevelPerNDC:         0.5,
		MinWindow:           1e-3,
		InitialWindow:       1,
		InitialLevel:        0.5,
		MinZoom:             0.01,
		MaxZoom:             100,
		OrthoHalfHeight:     150,
		FieldOfView:         30 * math.Pi / 180,
	}
}

// signedAngle returns the angle in radians swept from a to b about the view
// centre, positive counter-clockwise.
func signedAngle(a, b r2.Vec) float64 {
	if r2.Norm(a) == 0 || r2.Norm(b) == 0 {
		return 0
	}
	return math.Atan2(r2.Cross(a, b), r2.Dot(a, b))
}
