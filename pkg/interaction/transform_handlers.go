package interaction

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/pkg/camera"
	"histoalign/pkg/frame"
	"histoalign/pkg/transformation"
)

// TransformMode is the sub-mode shared by the image, slide and stack handlers.
type TransformMode int

const (
	TranslateMode TransformMode = iota
	RotateMode
)

// StackHandler moves the slide stack within the view plane. Rotations turn the
// stack about the view normal through the crosshairs.
type StackHandler struct {
	camera     *camera.Camera
	transforms *transformation.Manager
	mode       TransformMode
}

func newStackHandler(cam *camera.Camera, tm *transformation.Manager) *StackHandler {
	return &StackHandler{camera: cam, transforms: tm}
}

func (h *StackHandler) Type() HandlerType { return StackHandlerType }

// Mode returns the current sub-mode.
func (h *StackHandler) Mode() TransformMode { return h.mode }

// SetMode selects the sub-mode used by drags.
func (h *StackHandler) SetMode(mode TransformMode) { h.mode = mode }

func (h *StackHandler) Press(pos r2.Vec) {}

func (h *StackHandler) Drag(from, to r2.Vec) {
	f := mustFrame(h.transforms.SlideStackFrame(transformation.Staged))
	pivot := mustFrame(h.transforms.CrosshairsFrame(transformation.Committed)).WorldOrigin()
	h.transforms.StageSlideStackFrame(dragFrame(h.camera, h.mode, f, from, to, pivot))
}

// Release commits the slide stack and its crosshairs.
func (h *StackHandler) Release(pos r2.Vec) {
	h.transforms.CommitSlideStackFrame()
}

func (h *StackHandler) Scroll(delta float64) {}

// slotHandler edits a frame held in a transformation.Slot. The slot frame is
// expressed relative to a parent frame, given as world_O_parent.
type slotHandler struct {
	camera *camera.Camera
	slot   *transformation.Slot
	parent func() frame.Frame
	pivot  func() r3.Vec
	mode   TransformMode
}

// Mode returns the current sub-mode.
func (h *slotHandler) Mode() TransformMode { return h.mode }

// SetMode selects the sub-mode used by drags.
func (h *slotHandler) SetMode(mode TransformMode) { h.mode = mode }

func (h *slotHandler) Press(pos r2.Vec) {}

func (h *slotHandler) Drag(from, to r2.Vec) {
	parent := h.parent()
	world := parent.Compose(mustFrame(h.slot.Get(transformation.Staged)))
	moved := dragFrame(h.camera, h.mode, world, from, to, h.pivot())
	h.slot.Stage(parent.Inverse().Compose(moved))
}

// Release commits the staged frame.
func (h *slotHandler) Release(pos r2.Vec) {
	h.slot.Commit()
}

func (h *slotHandler) Scroll(delta float64) {}

// RefImageHandler moves the reference image (world_O_subject).
type RefImageHandler struct {
	slotHandler
}

func newRefImageHandler(cam *camera.Camera, tm *transformation.Manager) *RefImageHandler {
	return &RefImageHandler{slotHandler{
		camera: cam,
		slot:   tm.SubjectSlot(),
		parent: func() frame.Frame { return frame.Frame{} },
		pivot: func() r3.Vec {
			return mustFrame(tm.CrosshairsFrame(transformation.Committed)).WorldOrigin()
		},
	}}
}

func (h *RefImageHandler) Type() HandlerType { return RefImageHandlerType }

// SlideHandler moves the active slide within the slide stack
// (stack_O_slide).
type SlideHandler struct {
	slotHandler
}

func newSlideHandler(cam *camera.Camera, tm *transformation.Manager) *SlideHandler {
	return &SlideHandler{slotHandler{
		camera: cam,
		slot:   tm.ActiveSlideSlot(),
		parent: func() frame.Frame {
			return mustFrame(tm.SlideStackFrame(transformation.Committed))
		},
		pivot: func() r3.Vec {
			return mustFrame(tm.SlideStackCrosshairsFrame(transformation.Committed)).WorldOrigin()
		},
	}}
}

func (h *SlideHandler) Type() HandlerType { return SlideHandlerType }

// dragFrame applies a pointer drag to a World frame: translation in the view
// plane, or rotation about the view normal through pivot.
func dragFrame(cam *camera.Camera, mode TransformMode, f frame.Frame, from, to r2.Vec, pivot r3.Vec) frame.Frame {
	switch mode {
	case TranslateMode:
		f.SetWorldOrigin(r3.Add(f.WorldOrigin(), cam.WorldVectorAtNDC(r2.Sub(to, from))))
	case RotateMode:
		angle := signedAngle(from, to)
		r := frame.New(pivot, frame.AxisAngle(angle, cam.ViewNormal()))
		// Rotate about pivot: T(pivot) * R * T(-pivot) * f
		f = r.Compose(frame.New(r3.Scale(-1, pivot), frame.Identity)).Compose(f)
	}
	return f
}
