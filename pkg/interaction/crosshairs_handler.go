package interaction

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/pkg/camera"
	"histoalign/pkg/frame"
	"histoalign/pkg/transformation"
)

// CrosshairsMode is the sub-mode of the crosshairs handler.
type CrosshairsMode int

const (
	CrosshairsMoveMode CrosshairsMode = iota
	CrosshairsRotateMode
)

// CrosshairsHandler positions and rotates the crosshairs from a view. Drags
// stage the crosshairs; releasing the pointer commits them.
type CrosshairsHandler struct {
	camera         *camera.Camera
	transforms     *transformation.Manager
	crosshairsType CrosshairsType
	settings       Settings
	mode           CrosshairsMode
}

func newCrosshairsHandler(cam *camera.Camera, tm *transformation.Manager, t CrosshairsType, settings Settings) *CrosshairsHandler {
	return &CrosshairsHandler{camera: cam, transforms: tm, crosshairsType: t, settings: settings}
}

func (h *CrosshairsHandler) Type() HandlerType { return CrosshairsHandlerType }

// Mode returns the current sub-mode.
func (h *CrosshairsHandler) Mode() CrosshairsMode { return h.mode }

// SetMode selects the sub-mode used by presses and drags.
func (h *CrosshairsHandler) SetMode(mode CrosshairsMode) { h.mode = mode }

// Press moves the crosshairs under the pointer in move mode.
func (h *CrosshairsHandler) Press(pos r2.Vec) {
	if h.mode == CrosshairsMoveMode {
		h.transforms.StageCrosshairsOrigin(h.camera.WorldPointAtNDC(pos))
	}
}

// Drag follows the pointer in move mode, or rotates the reference crosshairs
// about the view normal in rotate mode.
func (h *CrosshairsHandler) Drag(from, to r2.Vec) {
	switch h.mode {
	case CrosshairsMoveMode:
		h.transforms.StageCrosshairsOrigin(h.camera.WorldPointAtNDC(to))

	case CrosshairsRotateMode:
		f := mustFrame(h.transforms.CrosshairsFrame(transformation.Staged))
		h.transforms.StageCrosshairsFrame(f.Rotated(signedAngle(from, to), h.camera.ViewNormal()))
	}
}

// Release commits the staged crosshairs.
func (h *CrosshairsHandler) Release(pos r2.Vec) {
	h.commit()
}

// Scroll steps the crosshairs along the view normal, toward the viewer for
// positive deltas, and commits immediately.
func (h *CrosshairsHandler) Scroll(delta float64) {
	f := mustFrame(h.transforms.CrosshairsFrame(transformation.Staged))
	step := r3.Scale(delta*h.settings.ScrollStep, h.camera.ViewNormal())
	h.transforms.StageCrosshairsOrigin(r3.Add(f.WorldOrigin(), step))
	h.commit()
}

func (h *CrosshairsHandler) commit() {
	h.transforms.CommitCrosshairsFrame()
	if h.crosshairsType == SlideStackCrosshairs {
		// Slide stack crosshairs are only committed together with the stack.
		h.transforms.CommitSlideStackFrame()
	}
}

// mustFrame unwraps a frame read with a valid State.
func mustFrame(f frame.Frame, err error) frame.Frame {
	if err != nil {
		panic(err)
	}
	return f
}
