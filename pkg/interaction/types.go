package interaction

import "fmt"

// CrosshairsType selects which crosshairs a view displays.
type CrosshairsType int

const (
	// ReferenceCrosshairs track the reference image
	ReferenceCrosshairs CrosshairsType = iota
	// SlideStackCrosshairs track the slide stack
	SlideStackCrosshairs
)

// CameraType is the default camera of a view type.
type CameraType int

const (
	CameraAxial CameraType = iota
	CameraCoronal
	CameraSagittal
	Camera3D
	CameraBig3D
	CameraSlideActive2D
	CameraSlideStackSide1
	CameraSlideStackSide2
	CameraSlideStack3D
)

var allCameraTypes = []CameraType{
	CameraAxial,
	CameraCoronal,
	CameraSagittal,
	Camera3D,
	CameraBig3D,
	CameraSlideActive2D,
	CameraSlideStackSide1,
	CameraSlideStackSide2,
	CameraSlideStack3D,
}

// LinkedFrameType names the frame a camera start frame is anchored to.
type LinkedFrameType int

const (
	LinkedToCrosshairs LinkedFrameType = iota
	LinkedToSlideStack
	LinkedToNone
)

// StartFrameType is one of the canonical camera start alignments. The letters
// of the crosshairs variants give the anatomical directions of the camera +X,
// +Y and +Z axes.
type StartFrameType int

const (
	CrosshairsAxialLAI StartFrameType = iota
	CrosshairsAxialRAS
	CrosshairsCoronalLSA
	CrosshairsCoronalRSP
	CrosshairsSagittalPSL
	CrosshairsSagittalASR
	SlideStackFacingNegativeZ
	SlideStackFacingPositiveZ
	SlideStackFacingNegativeX
	SlideStackFacingNegativeY
)

var allStartFrameTypes = []StartFrameType{
	CrosshairsAxialLAI,
	CrosshairsAxialRAS,
	CrosshairsCoronalLSA,
	CrosshairsCoronalRSP,
	CrosshairsSagittalPSL,
	CrosshairsSagittalASR,
	SlideStackFacingNegativeZ,
	SlideStackFacingPositiveZ,
	SlideStackFacingNegativeX,
	SlideStackFacingNegativeY,
}

// Convention selects the handedness of the crosshairs-linked start frames.
type Convention int

const (
	// Radiological views show the subject's left on screen right
	Radiological Convention = iota
	// Neurological views show the subject's left on screen left
	Neurological
)

// ParseConvention parses "radiological" or "neurological".
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "radiological":
		return Radiological, nil
	case "neurological":
		return Neurological, nil
	default:
		return 0, fmt.Errorf("%w: unknown convention %q", ErrConfiguration, s)
	}
}

func (t CrosshairsType) String() string {
	switch t {
	case ReferenceCrosshairs:
		return "Reference"
	case SlideStackCrosshairs:
		return "SlideStack"
	default:
		return fmt.Sprintf("CrosshairsType(%d)", int(t))
	}
}

var cameraTypeNames = map[CameraType]string{
	CameraAxial:           "Axial",
	CameraCoronal:         "Coronal",
	CameraSagittal:        "Sagittal",
	Camera3D:              "3D",
	CameraBig3D:           "Big3D",
	CameraSlideActive2D:   "SlideActive_2D",
	CameraSlideStackSide1: "SlideStack_Side1",
	CameraSlideStackSide2: "SlideStack_Side2",
	CameraSlideStack3D:    "SlideStack_3D",
}

func (t CameraType) String() string {
	if s, ok := cameraTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("CameraType(%d)", int(t))
}

func (t LinkedFrameType) String() string {
	switch t {
	case LinkedToCrosshairs:
		return "Crosshairs"
	case LinkedToSlideStack:
		return "SlideStack"
	case LinkedToNone:
		return "None"
	default:
		return fmt.Sprintf("LinkedFrameType(%d)", int(t))
	}
}

var startFrameTypeNames = map[StartFrameType]string{
	CrosshairsAxialLAI:        "Crosshairs_Axial_LAI",
	CrosshairsAxialRAS:        "Crosshairs_Axial_RAS",
	CrosshairsCoronalLSA:      "Crosshairs_Coronal_LSA",
	CrosshairsCoronalRSP:      "Crosshairs_Coronal_RSP",
	CrosshairsSagittalPSL:     "Crosshairs_Sagittal_PSL",
	CrosshairsSagittalASR:     "Crosshairs_Sagittal_ASR",
	SlideStackFacingNegativeZ: "SlideStack_FacingNegativeZ",
	SlideStackFacingPositiveZ: "SlideStack_FacingPositiveZ",
	SlideStackFacingNegativeX: "SlideStack_FacingNegativeX",
	SlideStackFacingNegativeY: "SlideStack_FacingNegativeY",
}

func (t StartFrameType) String() string {
	if s, ok := startFrameTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("StartFrameType(%d)", int(t))
}

func (c Convention) String() string {
	switch c {
	case Radiological:
		return "radiological"
	case Neurological:
		return "neurological"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}
