package interaction

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/internal/models"
	"histoalign/pkg/camera"
	"histoalign/pkg/directions"
	"histoalign/pkg/frame"
)

// ErrConfiguration is returned when a policy table has no entry for a value
// it is meant to cover. It indicates a mismatch between the enums and the
// tables, not a user error.
var ErrConfiguration = errors.New("interaction policy table mismatch")

// The policy tables below are built once at package initialisation and never
// modified. init verifies that each is total over its key domain.

var viewCrosshairsTypes = map[models.ViewType]CrosshairsType{
	models.ImageAxial:         ReferenceCrosshairs,
	models.ImageCoronal:       ReferenceCrosshairs,
	models.ImageSagittal:      ReferenceCrosshairs,
	models.Image3D:            ReferenceCrosshairs,
	models.ImageBig3D:         ReferenceCrosshairs,
	models.StackActiveSlide:   SlideStackCrosshairs,
	models.StackSide1:         SlideStackCrosshairs,
	models.StackSide2:         SlideStackCrosshairs,
	models.Stack3D:            SlideStackCrosshairs,
	models.RegActiveSlide:     SlideStackCrosshairs,
	models.RegRefImageAtSlide: SlideStackCrosshairs,
}

var viewCameraTypes = map[models.ViewType]CameraType{
	models.ImageAxial:         CameraAxial,
	models.ImageCoronal:       CameraCoronal,
	models.ImageSagittal:      CameraSagittal,
	models.Image3D:            Camera3D,
	models.ImageBig3D:         CameraBig3D,
	models.StackActiveSlide:   CameraSlideActive2D,
	models.StackSide1:         CameraSlideStackSide1,
	models.StackSide2:         CameraSlideStackSide2,
	models.Stack3D:            CameraSlideStack3D,
	models.RegActiveSlide:     CameraSlideActive2D,
	models.RegRefImageAtSlide: CameraSlideActive2D,
}

var cameraProjectionTypes = map[CameraType]camera.ProjectionType{
	CameraAxial:           camera.Orthographic,
	CameraCoronal:         camera.Orthographic,
	CameraSagittal:        camera.Orthographic,
	Camera3D:              camera.Perspective,
	CameraBig3D:           camera.Perspective,
	CameraSlideActive2D:   camera.Orthographic,
	CameraSlideStackSide1: camera.Orthographic,
	CameraSlideStackSide2: camera.Orthographic,
	CameraSlideStack3D:    camera.Perspective,
}

var cameraStartFrameTypes = map[CameraType]StartFrameType{
	CameraAxial:           CrosshairsAxialLAI,
	CameraCoronal:         CrosshairsCoronalLSA,
	CameraSagittal:        CrosshairsSagittalPSL,
	Camera3D:              CrosshairsCoronalLSA,
	CameraBig3D:           CrosshairsCoronalLSA,
	CameraSlideActive2D:   SlideStackFacingNegativeZ,
	CameraSlideStackSide1: SlideStackFacingNegativeX,
	CameraSlideStackSide2: SlideStackFacingNegativeY,
	CameraSlideStack3D:    SlideStackFacingNegativeZ,
}

var startFrameLinkedTypes = map[StartFrameType]LinkedFrameType{
	CrosshairsAxialLAI:        LinkedToCrosshairs,
	CrosshairsAxialRAS:        LinkedToCrosshairs,
	CrosshairsCoronalLSA:      LinkedToCrosshairs,
	CrosshairsCoronalRSP:      LinkedToCrosshairs,
	CrosshairsSagittalPSL:     LinkedToCrosshairs,
	CrosshairsSagittalASR:     LinkedToCrosshairs,
	SlideStackFacingNegativeZ: LinkedToSlideStack,
	SlideStackFacingPositiveZ: LinkedToSlideStack,
	SlideStackFacingNegativeX: LinkedToSlideStack,
	SlideStackFacingNegativeY: LinkedToSlideStack,
}

// neurologicalStartFrames maps radiological crosshairs start frames onto their
// opposite handedness variant.
var neurologicalStartFrames = map[StartFrameType]StartFrameType{
	CrosshairsAxialLAI:    CrosshairsAxialRAS,
	CrosshairsCoronalLSA:  CrosshairsCoronalRSP,
	CrosshairsSagittalPSL: CrosshairsSagittalASR,
}

// startFrameAxes gives the World (or slide stack) targets of the camera +X and
// +Y axes for each start frame type.
var startFrameAxes = map[StartFrameType][2]r3.Vec{
	CrosshairsAxialLAI:        {directions.MustAnatomy(directions.Left), directions.MustAnatomy(directions.Anterior)},
	CrosshairsAxialRAS:        {directions.MustAnatomy(directions.Right), directions.MustAnatomy(directions.Anterior)},
	CrosshairsCoronalLSA:      {directions.MustAnatomy(directions.Left), directions.MustAnatomy(directions.Superior)},
	CrosshairsCoronalRSP:      {directions.MustAnatomy(directions.Right), directions.MustAnatomy(directions.Superior)},
	CrosshairsSagittalPSL:     {directions.MustAnatomy(directions.Posterior), directions.MustAnatomy(directions.Superior)},
	CrosshairsSagittalASR:     {directions.MustAnatomy(directions.Anterior), directions.MustAnatomy(directions.Superior)},
	SlideStackFacingNegativeZ: {directions.MustCartesian(directions.X), directions.MustCartesian(directions.Y)},
	SlideStackFacingPositiveZ: {directions.MustCartesian(directions.NegX), directions.MustCartesian(directions.Y)},
	SlideStackFacingNegativeX: {directions.MustCartesian(directions.Y), directions.MustCartesian(directions.Z)},
	SlideStackFacingNegativeY: {directions.MustCartesian(directions.NegX), directions.MustCartesian(directions.Z)},
}

var startFrameRotations = buildStartFrameRotations()

func buildStartFrameRotations() map[StartFrameType]quat.Number {
	cameraX := directions.MustCartesian(directions.X)
	cameraY := directions.MustCartesian(directions.Y)

	rotations := make(map[StartFrameType]quat.Number, len(startFrameAxes))
	for t, axes := range startFrameAxes {
		var f frame.Frame
		if err := f.SetFrameToWorldRotationFromAxes(cameraX, axes[0], cameraY, axes[1], true); err != nil {
			panic(fmt.Sprintf("start frame %v: %v", t, err))
		}
		rotations[t] = f.FrameToWorldRotation()
	}
	return rotations
}

func init() {
	for _, v := range models.AllViewTypes {
		if _, ok := viewCrosshairsTypes[v]; !ok {
			panic(fmt.Sprintf("no crosshairs type for view type %v", v))
		}
		if _, ok := viewCameraTypes[v]; !ok {
			panic(fmt.Sprintf("no camera type for view type %v", v))
		}
	}
	for _, c := range allCameraTypes {
		if _, ok := cameraProjectionTypes[c]; !ok {
			panic(fmt.Sprintf("no projection type for camera type %v", c))
		}
		if _, ok := cameraStartFrameTypes[c]; !ok {
			panic(fmt.Sprintf("no start frame type for camera type %v", c))
		}
	}
	for _, s := range allStartFrameTypes {
		if _, ok := startFrameLinkedTypes[s]; !ok {
			panic(fmt.Sprintf("no linked frame type for start frame type %v", s))
		}
		if _, ok := startFrameRotations[s]; !ok {
			panic(fmt.Sprintf("no anatomical rotation for start frame type %v", s))
		}
	}
	for from, to := range neurologicalStartFrames {
		if startFrameLinkedTypes[from] != startFrameLinkedTypes[to] {
			panic(fmt.Sprintf("start frame %v and its variant %v link to different frames", from, to))
		}
	}
}

// CrosshairsTypeFor returns the default crosshairs of a view type.
func CrosshairsTypeFor(v models.ViewType) (CrosshairsType, error) {
	t, ok := viewCrosshairsTypes[v]
	if !ok {
		return 0, fmt.Errorf("%w: no crosshairs type for view type %v", ErrConfiguration, v)
	}
	return t, nil
}

// CameraTypeFor returns the default camera of a view type.
func CameraTypeFor(v models.ViewType) (CameraType, error) {
	t, ok := viewCameraTypes[v]
	if !ok {
		return 0, fmt.Errorf("%w: no camera type for view type %v", ErrConfiguration, v)
	}
	return t, nil
}

// ProjectionTypeFor returns the projection of a camera type.
func ProjectionTypeFor(c CameraType) (camera.ProjectionType, error) {
	t, ok := cameraProjectionTypes[c]
	if !ok {
		return 0, fmt.Errorf("%w: no projection type for camera type %v", ErrConfiguration, c)
	}
	return t, nil
}

// StartFrameTypeFor returns the start frame of a camera type under the given
// convention.
func StartFrameTypeFor(c CameraType, conv Convention) (StartFrameType, error) {
	t, ok := cameraStartFrameTypes[c]
	if !ok {
		return 0, fmt.Errorf("%w: no start frame type for camera type %v", ErrConfiguration, c)
	}
	if conv == Neurological {
		if n, ok := neurologicalStartFrames[t]; ok {
			t = n
		}
	}
	return t, nil
}

// LinkedFrameTypeFor returns the frame a start frame type is anchored to.
func LinkedFrameTypeFor(s StartFrameType) (LinkedFrameType, error) {
	t, ok := startFrameLinkedTypes[s]
	if !ok {
		return 0, fmt.Errorf("%w: no linked frame type for start frame type %v", ErrConfiguration, s)
	}
	return t, nil
}

// DefaultLinkedFrameType returns the frame a camera type is anchored to by
// default: the link of its start frame type.
func DefaultLinkedFrameType(c CameraType) (LinkedFrameType, error) {
	s, err := StartFrameTypeFor(c, Radiological)
	if err != nil {
		return 0, err
	}
	return LinkedFrameTypeFor(s)
}

// AnatomicalRotation returns linked_O_start for a start frame type.
func AnatomicalRotation(s StartFrameType) (quat.Number, error) {
	q, ok := startFrameRotations[s]
	if !ok {
		return quat.Number{}, fmt.Errorf("%w: no anatomical rotation for start frame type %v", ErrConfiguration, s)
	}
	return q, nil
}
