// Package camera implements the view camera read by renderers.
//
// A camera is anchored to a start frame (world_O_start) supplied by a provider
// and re-evaluated on every query, so it follows the crosshairs or slide stack
// it is linked to. User manipulation is kept separately as start_O_camera.
// The camera looks down its -Z axis with +Y up on screen; its z=0 plane is the
// plane through the start frame origin that 2D views display.
package camera

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/pkg/frame"
)

// ErrNullProvider is returned when a camera is created without a start frame
// provider.
var ErrNullProvider = errors.New("camera start frame provider is nil")

// Defaults for new cameras.
const (
	DefaultOrthoHalfHeight = 150.0
	DefaultFieldOfView     = 30 * math.Pi / 180
	DefaultMinZoom         = 0.01
	DefaultMaxZoom         = 100.0
)

// ProjectionType selects orthographic or perspective projection.
type ProjectionType int

const (
	Orthographic ProjectionType = iota
	Perspective
)

func (p ProjectionType) String() string {
	switch p {
	case Orthographic:
		return "Orthographic"
	case Perspective:
		return "Perspective"
	default:
		return fmt.Sprintf("ProjectionType(%d)", int(p))
	}
}

// StartFrameProvider returns the current world_O_start transform.
type StartFrameProvider func() frame.Frame

// Camera is a view camera.
type Camera struct {
	projection ProjectionType
	startFrame StartFrameProvider

	// startOCamera is the accumulated user manipulation
	startOCamera frame.Frame

	zoom    float64
	minZoom float64
	maxZoom float64

	// aspect is viewport width over height
	aspect float64

	orthoHalfHeight float64

	// fieldOfView is the vertical angle in radians (perspective only)
	fieldOfView float64
}

// Option configures a Camera.
type Option func(*Camera)

// WithZoomLimits bounds the zoom factor.
func WithZoomLimits(min, max float64) Option {
	return func(c *Camera) {
		if min > 0 && max >= min {
			c.minZoom, c.maxZoom = min, max
		}
	}
}

// WithOrthoHalfHeight sets the World half height shown at zoom 1.
func WithOrthoHalfHeight(h float64) Option {
	return func(c *Camera) {
		if h > 0 {
			c.orthoHalfHeight = h
		}
	}
}

// WithFieldOfView sets the vertical field of view in radians.
func WithFieldOfView(angle float64) Option {
	return func(c *Camera) {
		if angle > 0 && angle < math.Pi {
			c.fieldOfView = angle
		}
	}
}

// New creates a camera anchored to the frames returned by provider.
func New(projection ProjectionType, provider StartFrameProvider, opts ...Option) (*Camera, error) {
	if provider == nil {
		return nil, ErrNullProvider
	}
	c := &Camera{
		projection:      projection,
		startFrame:      provider,
		zoom:            1,
		minZoom:         DefaultMinZoom,
		maxZoom:         DefaultMaxZoom,
		aspect:          1,
		orthoHalfHeight: DefaultOrthoHalfHeight,
		fieldOfView:     DefaultFieldOfView,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Projection returns the projection type.
func (c *Camera) Projection() ProjectionType {
	return c.projection
}

// ZoomFactor returns the current zoom factor.
func (c *Camera) ZoomFactor() float64 {
	return c.zoom
}

// AspectRatio returns the viewport width over height.
func (c *Camera) AspectRatio() float64 {
	return c.aspect
}

// SetAspectRatio sets the viewport width over height. Non-positive values are
// ignored.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// WorldOStart returns the current start frame.
func (c *Camera) WorldOStart() frame.Frame {
	return c.startFrame()
}

// StartOCamera returns the user manipulation relative to the start frame.
func (c *Camera) StartOCamera() frame.Frame {
	return c.startOCamera
}

// WorldOCamera returns the camera frame in World space.
func (c *Camera) WorldOCamera() frame.Frame {
	return c.WorldOStart().Compose(c.startOCamera)
}

// ViewMatrix returns camera_O_world as a 4x4 matrix.
func (c *Camera) ViewMatrix() *mat.Dense {
	return c.WorldOCamera().Inverse().Matrix()
}

// Translate moves the camera by delta, given in camera coordinates.
func (c *Camera) Translate(delta r3.Vec) {
	o := r3.Add(c.startOCamera.WorldOrigin(), c.startOCamera.MapDirectionToWorld(delta))
	c.startOCamera.SetWorldOrigin(o)
}

// Roll rotates the camera by angle radians about its viewing axis.
func (c *Camera) Roll(angle float64) {
	q := c.startOCamera.FrameToWorldRotation()
	c.startOCamera.SetFrameToWorldRotation(quat.Mul(q, frame.AxisAngle(angle, r3.Vec{Z: 1})))
}

// Orbit rotates the camera by angle radians about axis (camera coordinates)
// through the World point pivot.
func (c *Camera) Orbit(angle float64, axis r3.Vec, pivot r3.Vec) {
	pivotStart := c.WorldOStart().MapPointFromWorld(pivot)
	r := frame.AxisAngle(angle, c.startOCamera.MapDirectionToWorld(axis))

	arm := r3.Sub(c.startOCamera.WorldOrigin(), pivotStart)
	c.startOCamera.SetWorldOrigin(r3.Add(pivotStart, frame.Rotate(r, arm)))
	c.startOCamera.SetFrameToWorldRotation(quat.Mul(r, c.startOCamera.FrameToWorldRotation()))
}

// Zoom multiplies the zoom factor by factor, clamped to the zoom limits.
// Non-positive factors are ignored.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetZoom(c.zoom * factor)
}

// SetZoom sets the zoom factor, clamped to the zoom limits.
func (c *Camera) SetZoom(zoom float64) {
	c.zoom = math.Max(c.minZoom, math.Min(c.maxZoom, zoom))
}

// Reset drops all user manipulation.
func (c *Camera) Reset() {
	c.startOCamera = frame.Frame{}
	c.zoom = 1
}

// ViewHalfExtents returns the World half width and half height visible in the
// camera z=0 plane.
func (c *Camera) ViewHalfExtents() (halfWidth, halfHeight float64) {
	switch c.projection {
	case Perspective:
		halfHeight = c.eyeDistance() * math.Tan(c.fieldOfView/2) / c.zoom
	default:
		halfHeight = c.orthoHalfHeight / c.zoom
	}
	return halfHeight * c.aspect, halfHeight
}

// EyePosition returns the World position of the eye. Perspective cameras sit
// back from the z=0 plane so that the plane fills the ortho half height at
// zoom 1.
func (c *Camera) EyePosition() r3.Vec {
	return c.WorldOCamera().MapPointToWorld(r3.Vec{Z: c.eyeDistance()})
}

// ViewNormal returns the World direction from the z=0 plane toward the viewer.
func (c *Camera) ViewNormal() r3.Vec {
	return c.WorldOCamera().MapDirectionToWorld(r3.Vec{Z: 1})
}

// WorldPointAtNDC maps normalised device coordinates, in [-1, 1] with +Y up,
// onto the camera z=0 plane in World space.
func (c *Camera) WorldPointAtNDC(ndc r2.Vec) r3.Vec {
	hw, hh := c.ViewHalfExtents()
	return c.WorldOCamera().MapPointToWorld(r3.Vec{X: ndc.X * hw, Y: ndc.Y * hh})
}

// WorldVectorAtNDC maps a displacement in normalised device coordinates onto a
// World displacement within the camera z=0 plane.
func (c *Camera) WorldVectorAtNDC(delta r2.Vec) r3.Vec {
	hw, hh := c.ViewHalfExtents()
	return c.WorldOCamera().MapDirectionToWorld(r3.Vec{X: delta.X * hw, Y: delta.Y * hh})
}

func (c *Camera) eyeDistance() float64 {
	return c.orthoHalfHeight / math.Tan(c.fieldOfView/2)
}
