package interaction

import (
	"fmt"

	"histoalign/internal/models"
	"histoalign/pkg/camera"
)

// ModeType is the interaction mode chosen from the toolbar. Each mode selects
// one handler type and a sub-mode of that handler.
type ModeType int

const (
	ModePointer ModeType = iota
	ModeCrosshairsRotate
	ModeCameraTranslate
	ModeCameraRotate
	ModeCameraZoom
	ModeWindowLevel
	ModeRefImageTranslate
	ModeRefImageRotate
	ModeStackTranslate
	ModeStackRotate
	ModeSlideTranslate
	ModeSlideRotate
)

// AllModeTypes lists every interaction mode.
var AllModeTypes = []ModeType{
	ModePointer,
	ModeCrosshairsRotate,
	ModeCameraTranslate,
	ModeCameraRotate,
	ModeCameraZoom,
	ModeWindowLevel,
	ModeRefImageTranslate,
	ModeRefImageRotate,
	ModeStackTranslate,
	ModeStackRotate,
	ModeSlideTranslate,
	ModeSlideRotate,
}

var modeNames = map[ModeType]string{
	ModePointer:           "Pointer",
	ModeCrosshairsRotate:  "CrosshairsRotate",
	ModeCameraTranslate:   "CameraTranslate",
	ModeCameraRotate:      "CameraRotate",
	ModeCameraZoom:        "CameraZoom",
	ModeWindowLevel:       "WindowLevel",
	ModeRefImageTranslate: "RefImageTranslate",
	ModeRefImageRotate:    "RefImageRotate",
	ModeStackTranslate:    "StackTranslate",
	ModeStackRotate:       "StackRotate",
	ModeSlideTranslate:    "SlideTranslate",
	ModeSlideRotate:       "SlideRotate",
}

func (m ModeType) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ModeType(%d)", int(m))
}

// ParseModeType returns the mode with the given name.
func ParseModeType(name string) (ModeType, error) {
	for m, s := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interaction mode %q", ErrConfiguration, name)
}

// HandlerTypeFor returns the handler type a mode activates.
func HandlerTypeFor(mode ModeType) (HandlerType, error) {
	switch mode {
	case ModePointer, ModeCrosshairsRotate:
		return CrosshairsHandlerType, nil
	case ModeCameraTranslate, ModeCameraRotate, ModeCameraZoom:
		return CameraHandlerType, nil
	case ModeWindowLevel:
		return WindowLevelHandlerType, nil
	case ModeRefImageTranslate, ModeRefImageRotate:
		return RefImageHandlerType, nil
	case ModeStackTranslate, ModeStackRotate:
		return StackHandlerType, nil
	case ModeSlideTranslate, ModeSlideRotate:
		return SlideHandlerType, nil
	default:
		return 0, fmt.Errorf("%w: no handler for interaction mode %v", ErrConfiguration, mode)
	}
}

// Pack is the interaction state of one view: its camera and one handler of
// each kind. The active handler is kept as a HandlerType tag.
type Pack struct {
	view       models.View
	linkedType LinkedFrameType

	camera      *camera.Camera
	cameraH     *CameraHandler
	crosshairsH *CrosshairsHandler
	refImageH   *RefImageHandler
	slideH      *SlideHandler
	stackH      *StackHandler
	windowH     *WindowLevelHandler

	active HandlerType
}

// View returns the view this pack serves.
func (p *Pack) View() models.View { return p.view }

// Camera returns the view camera.
func (p *Pack) Camera() *camera.Camera { return p.camera }

// LinkedFrameType returns the frame the camera start frame is anchored to.
func (p *Pack) LinkedFrameType() LinkedFrameType { return p.linkedType }

// CameraHandler returns the camera handler.
func (p *Pack) CameraHandler() *CameraHandler { return p.cameraH }

// CrosshairsHandler returns the crosshairs handler.
func (p *Pack) CrosshairsHandler() *CrosshairsHandler { return p.crosshairsH }

// RefImageHandler returns the reference image handler.
func (p *Pack) RefImageHandler() *RefImageHandler { return p.refImageH }

// SlideHandler returns the active slide handler.
func (p *Pack) SlideHandler() *SlideHandler { return p.slideH }

// StackHandler returns the slide stack handler.
func (p *Pack) StackHandler() *StackHandler { return p.stackH }

// WindowLevelHandler returns the window/level handler.
func (p *Pack) WindowLevelHandler() *WindowLevelHandler { return p.windowH }

// Handler returns the handler of the given type, or nil for an unknown type.
func (p *Pack) Handler(t HandlerType) Handler {
	switch t {
	case CameraHandlerType:
		return p.cameraH
	case CrosshairsHandlerType:
		return p.crosshairsH
	case RefImageHandlerType:
		return p.refImageH
	case SlideHandlerType:
		return p.slideH
	case StackHandlerType:
		return p.stackH
	case WindowLevelHandlerType:
		return p.windowH
	default:
		return nil
	}
}

// ActiveHandlerType returns the type of the active handler.
func (p *Pack) ActiveHandlerType() HandlerType { return p.active }

// ActiveHandler returns the handler receiving this view's pointer events.
func (p *Pack) ActiveHandler() Handler { return p.Handler(p.active) }

// applyMode activates the handler for mode and sets its sub-mode.
func (p *Pack) applyMode(mode ModeType) error {
	t, err := HandlerTypeFor(mode)
	if err != nil {
		return err
	}

	switch mode {
	case ModePointer:
		p.crosshairsH.SetMode(CrosshairsMoveMode)
	case ModeCrosshairsRotate:
		p.crosshairsH.SetMode(CrosshairsRotateMode)
	case ModeCameraTranslate:
		p.cameraH.SetMode(CameraTranslateMode)
	case ModeCameraRotate:
		p.cameraH.SetMode(CameraRotateMode)
	case ModeCameraZoom:
		p.cameraH.SetMode(CameraZoomMode)
	case ModeRefImageTranslate:
		p.refImageH.SetMode(TranslateMode)
	case ModeRefImageRotate:
		p.refImageH.SetMode(RotateMode)
	case ModeStackTranslate:
		p.stackH.SetMode(TranslateMode)
	case ModeStackRotate:
		p.stackH.SetMode(RotateMode)
	case ModeSlideTranslate:
		p.slideH.SetMode(TranslateMode)
	case ModeSlideRotate:
		p.slideH.SetMode(RotateMode)
	}

	p.active = t
	return nil
}
