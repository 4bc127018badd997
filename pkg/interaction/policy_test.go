package interaction

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/internal/models"
	"histoalign/pkg/camera"
	"histoalign/pkg/frame"
	"histoalign/pkg/transformation"
)

const tol = 1e-9

func vecApproxEqual(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

// TestComputeStartFrameCoversAllViewTypes verifies table exhaustiveness
func TestComputeStartFrameCoversAllViewTypes(t *testing.T) {
	for _, conv := range []Convention{Radiological, Neurological} {
		m, err := NewManager(transformation.NewManager(), WithConvention(conv))
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		for _, v := range models.AllViewTypes {
			if _, err := m.ComputeStartFrame(v); err != nil {
				t.Errorf("Convention %v, view %v: unexpected error %v", conv, v, err)
			}
		}
	}
}

// TestComputeStartFrameAxialScenario checks the crosshairs-linked resolution
func TestComputeStartFrameAxialScenario(t *testing.T) {
	tm := transformation.NewManager()
	tm.StageCrosshairsFrame(frame.New(r3.Vec{X: 1, Y: 2, Z: 3}, frame.Identity))
	tm.CommitCrosshairsFrame()

	m, _ := NewManager(tm)
	got, err := m.ComputeStartFrame(models.ImageAxial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	q, err := AnatomicalRotation(CrosshairsAxialLAI)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := frame.New(r3.Vec{X: 1, Y: 2, Z: 3}, q)
	if !got.ApproxEqual(expected, tol) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestComputeStartFrameUsesCommittedFrames verifies staged edits are ignored
func TestComputeStartFrameUsesCommittedFrames(t *testing.T) {
	tm := transformation.NewManager()
	m, _ := NewManager(tm)

	tm.StageCrosshairsOrigin(r3.Vec{X: 9})
	got, _ := m.ComputeStartFrame(models.ImageCoronal)
	if got.WorldOrigin() != (r3.Vec{}) {
		t.Errorf("Expected staged origin to be ignored, got %v", got.WorldOrigin())
	}
}

// TestComputeStartFrameSlideStackScenario checks the slide stack link
func TestComputeStartFrameSlideStackScenario(t *testing.T) {
	tm := transformation.NewManager()
	stack := frame.New(r3.Vec{Z: 40}, frame.AxisAngle(0.3, r3.Vec{Z: 1}))
	tm.StageCrosshairsOrigin(r3.Vec{X: 5, Y: 5, Z: 45})
	tm.CommitCrosshairsFrame()
	tm.StageSlideStackFrame(stack)
	tm.CommitSlideStackFrame()

	m, _ := NewManager(tm)
	got, err := m.ComputeStartFrame(models.StackActiveSlide)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := frame.New(r3.Vec{X: 5, Y: 5, Z: 45}, stack.FrameToWorldRotation())
	if !got.ApproxEqual(expected, tol) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Image views keep following the reference crosshairs
	img, _ := m.ComputeStartFrame(models.ImageCoronal)
	q, _ := AnatomicalRotation(CrosshairsCoronalLSA)
	if !frame.RotationsApproxEqual(img.FrameToWorldRotation(), q, tol) {
		t.Errorf("Expected coronal rotation %v, got %v", q, img.FrameToWorldRotation())
	}
}

// TestAnatomicalRotations verifies each start frame aims the camera axes
func TestAnatomicalRotations(t *testing.T) {
	for _, s := range allStartFrameTypes {
		q, err := AnatomicalRotation(s)
		if err != nil {
			t.Fatalf("Unexpected error for %v: %v", s, err)
		}
		axes := startFrameAxes[s]
		x := frame.Rotate(q, r3.Vec{X: 1})
		y := frame.Rotate(q, r3.Vec{Y: 1})
		z := frame.Rotate(q, r3.Vec{Z: 1})

		if !vecApproxEqual(x, axes[0]) {
			t.Errorf("%v: expected camera X along %v, got %v", s, axes[0], x)
		}
		if !vecApproxEqual(y, axes[1]) {
			t.Errorf("%v: expected camera Y along %v, got %v", s, axes[1], y)
		}
		if !vecApproxEqual(z, r3.Cross(axes[0], axes[1])) {
			t.Errorf("%v: expected right-handed camera frame, got Z %v", s, z)
		}
	}
}

// TestAxialLAILooksFromInferior spot-checks the radiological axial view
func TestAxialLAILooksFromInferior(t *testing.T) {
	q, _ := AnatomicalRotation(CrosshairsAxialLAI)
	// Camera +Z points toward the viewer, which sits at the subject's feet
	if got := frame.Rotate(q, r3.Vec{Z: 1}); !vecApproxEqual(got, r3.Vec{Z: -1}) {
		t.Errorf("Expected camera Z along Inferior, got %v", got)
	}
}

// TestStartFrameConvention verifies the neurological variants
func TestStartFrameConvention(t *testing.T) {
	tests := []struct {
		camera   CameraType
		radio    StartFrameType
		neuro    StartFrameType
		linkType LinkedFrameType
	}{
		{CameraAxial, CrosshairsAxialLAI, CrosshairsAxialRAS, LinkedToCrosshairs},
		{CameraCoronal, CrosshairsCoronalLSA, CrosshairsCoronalRSP, LinkedToCrosshairs},
		{CameraSagittal, CrosshairsSagittalPSL, CrosshairsSagittalASR, LinkedToCrosshairs},
		{CameraSlideActive2D, SlideStackFacingNegativeZ, SlideStackFacingNegativeZ, LinkedToSlideStack},
		{CameraSlideStackSide1, SlideStackFacingNegativeX, SlideStackFacingNegativeX, LinkedToSlideStack},
	}

	for _, tt := range tests {
		r, _ := StartFrameTypeFor(tt.camera, Radiological)
		n, _ := StartFrameTypeFor(tt.camera, Neurological)
		if r != tt.radio {
			t.Errorf("%v: expected radiological %v, got %v", tt.camera, tt.radio, r)
		}
		if n != tt.neuro {
			t.Errorf("%v: expected neurological %v, got %v", tt.camera, tt.neuro, n)
		}
		if l, _ := DefaultLinkedFrameType(tt.camera); l != tt.linkType {
			t.Errorf("%v: expected link %v, got %v", tt.camera, tt.linkType, l)
		}
	}
}

// TestProjectionTypes spot-checks the projection table
func TestProjectionTypes(t *testing.T) {
	for c, expected := range map[CameraType]camera.ProjectionType{
		CameraAxial:        camera.Orthographic,
		Camera3D:           camera.Perspective,
		CameraSlideStack3D: camera.Perspective,
	} {
		if got, _ := ProjectionTypeFor(c); got != expected {
			t.Errorf("%v: expected %v, got %v", c, expected, got)
		}
	}
}

// TestCrosshairsTypes spot-checks the crosshairs table
func TestCrosshairsTypes(t *testing.T) {
	if got, _ := CrosshairsTypeFor(models.ImageSagittal); got != ReferenceCrosshairs {
		t.Errorf("Expected reference crosshairs for sagittal view, got %v", got)
	}
	if got, _ := CrosshairsTypeFor(models.StackSide2); got != SlideStackCrosshairs {
		t.Errorf("Expected slide stack crosshairs for stack side view, got %v", got)
	}
}

// TestPolicyLookupMisses verifies out-of-domain keys report ErrConfiguration
func TestPolicyLookupMisses(t *testing.T) {
	if _, err := CameraTypeFor(models.ViewType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from CameraTypeFor, got %v", err)
	}
	if _, err := CrosshairsTypeFor(models.ViewType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from CrosshairsTypeFor, got %v", err)
	}
	if _, err := ProjectionTypeFor(CameraType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from ProjectionTypeFor, got %v", err)
	}
	if _, err := StartFrameTypeFor(CameraType(99), Radiological); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from StartFrameTypeFor, got %v", err)
	}
	if _, err := LinkedFrameTypeFor(StartFrameType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from LinkedFrameTypeFor, got %v", err)
	}
	if _, err := AnatomicalRotation(StartFrameType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from AnatomicalRotation, got %v", err)
	}

	m, _ := NewManager(transformation.NewManager())
	if _, err := m.ComputeStartFrame(models.ViewType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from ComputeStartFrame, got %v", err)
	}
	if _, err := m.linkedFrame(LinkedFrameType(99)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from linkedFrame, got %v", err)
	}
}

// TestParseConvention verifies convention names
func TestParseConvention(t *testing.T) {
	if c, err := ParseConvention("neurological"); err != nil || c != Neurological {
		t.Errorf("Expected neurological, got %v (%v)", c, err)
	}
	if c, err := ParseConvention(""); err != nil || c != Radiological {
		t.Errorf("Expected radiological default, got %v (%v)", c, err)
	}
	if _, err := ParseConvention("sideways"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}
}
