package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/pkg/camera"
)

// CameraMode is the sub-mode of the camera handler.
type CameraMode int

const (
	CameraTranslateMode CameraMode = iota
	CameraRotateMode
	CameraZoomMode
)

// CameraHandler pans, rotates and zooms the view camera.
type CameraHandler struct {
	camera   *camera.Camera
	settings Settings
	mode     CameraMode
}

func newCameraHandler(cam *camera.Camera, settings Settings) *CameraHandler {
	return &CameraHandler{camera: cam, settings: settings}
}

func (h *CameraHandler) Type() HandlerType { return CameraHandlerType }

// Mode returns the current sub-mode.
func (h *CameraHandler) Mode() CameraMode { return h.mode }

// SetMode selects the sub-mode used by drags.
func (h *CameraHandler) SetMode(mode CameraMode) { h.mode = mode }

func (h *CameraHandler) Press(pos r2.Vec) {}

// Drag moves the camera so that the scene follows the pointer. In rotate mode
// orthographic cameras roll about the view axis while perspective cameras
// orbit the start frame origin.
func (h *CameraHandler) Drag(from, to r2.Vec) {
	d := r2.Sub(to, from)

	switch h.mode {
	case CameraTranslateMode:
		hw, hh := h.camera.ViewHalfExtents()
		h.camera.Translate(r3.Vec{X: -d.X * hw, Y: -d.Y * hh})

	case CameraRotateMode:
		if h.camera.Projection() == camera.Orthographic {
			h.camera.Roll(-signedAngle(from, to))
			return
		}
		pivot := h.camera.WorldOStart().WorldOrigin()
		rate := h.settings.RotateRadiansPerNDC
		h.camera.Orbit(-d.X*rate, r3.Vec{Y: 1}, pivot)
		h.camera.Orbit(d.Y*rate, r3.Vec{X: 1}, pivot)

	case CameraZoomMode:
		h.camera.Zoom(math.Exp(d.Y * h.settings.ZoomPerNDC))
	}
}

func (h *CameraHandler) Release(pos r2.Vec) {}

// Scroll zooms in for positive deltas.
func (h *CameraHandler) Scroll(delta float64) {
	h.camera.Zoom(math.Pow(h.settings.ScrollZoomFactor, delta))
}
