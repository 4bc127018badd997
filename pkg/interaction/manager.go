// Package interaction maps pointer input on each view to camera and frame
// changes, and decides where each view's camera starts.
//
// The Manager owns one Pack per view UID. A Pack holds the view camera and one
// handler of each kind; the interaction mode picks which handler is active on
// every view. Camera start frames are resolved from the static policy tables
// in policy.go and the committed frames of a transformation.Manager.
package interaction

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/internal/models"
	"histoalign/pkg/camera"
	"histoalign/pkg/frame"
	"histoalign/pkg/transformation"
)

var (
	// ErrNullDependency is returned when a Manager is built without a
	// required collaborator.
	ErrNullDependency = errors.New("missing dependency")

	// ErrUnknownView is returned for a view UID with no Pack.
	ErrUnknownView = errors.New("unknown view")

	// ErrDuplicateView is returned when a second Pack is requested for a UID.
	ErrDuplicateView = errors.New("view already registered")
)

// Manager owns the interaction packs of all views.
type Manager struct {
	transforms *transformation.Manager
	settings   Settings
	convention Convention
	logger     *log.Logger

	mode  ModeType
	packs map[models.ViewUID]*Pack
}

// Option configures a Manager.
type Option func(*Manager)

// WithSettings sets the handler and camera settings used for new packs.
func WithSettings(s Settings) Option {
	return func(m *Manager) { m.settings = s }
}

// WithConvention sets the handedness of crosshairs-linked start frames.
func WithConvention(c Convention) Option {
	return func(m *Manager) { m.convention = c }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager reading and writing frames through tm.
func NewManager(tm *transformation.Manager, opts ...Option) (*Manager, error) {
	if tm == nil {
		return nil, fmt.Errorf("%w: transformation manager", ErrNullDependency)
	}
	m := &Manager{
		transforms: tm,
		settings:   DefaultSettings(),
		convention: Radiological,
		logger:     log.New(io.Discard, "", 0),
		mode:       ModePointer,
		packs:      make(map[models.ViewUID]*Pack),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Transformations returns the frame store shared by all handlers.
func (m *Manager) Transformations() *transformation.Manager {
	return m.transforms
}

// Convention returns the start frame handedness convention.
func (m *Manager) Convention() Convention {
	return m.convention
}

// ComputeStartFrame returns world_O_cameraStart for a view type: the committed
// frame its camera links to by default, composed with the anatomical rotation
// of its start frame type.
func (m *Manager) ComputeStartFrame(v models.ViewType) (frame.Frame, error) {
	return m.resolveStartFrame(v, nil)
}

func (m *Manager) resolveStartFrame(v models.ViewType, link *LinkedFrameType) (frame.Frame, error) {
	cameraType, err := CameraTypeFor(v)
	if err != nil {
		return frame.Frame{}, err
	}
	startType, err := StartFrameTypeFor(cameraType, m.convention)
	if err != nil {
		return frame.Frame{}, err
	}

	var linkType LinkedFrameType
	if link != nil {
		linkType = *link
	} else if linkType, err = LinkedFrameTypeFor(startType); err != nil {
		return frame.Frame{}, err
	}

	linked, err := m.linkedFrame(linkType)
	if err != nil {
		return frame.Frame{}, err
	}
	rotation, err := AnatomicalRotation(startType)
	if err != nil {
		return frame.Frame{}, err
	}
	return linked.Compose(frame.New(r3.Vec{}, rotation)), nil
}

// linkedFrame returns the committed frame for a link type.
func (m *Manager) linkedFrame(t LinkedFrameType) (frame.Frame, error) {
	switch t {
	case LinkedToCrosshairs:
		return m.transforms.CrosshairsFrame(transformation.Committed)
	case LinkedToSlideStack:
		return m.transforms.SlideStackCrosshairsFrame(transformation.Committed)
	case LinkedToNone:
		return frame.Frame{}, nil
	default:
		return frame.Frame{}, fmt.Errorf("%w: unknown linked frame type %v", ErrConfiguration, t)
	}
}

// RegisterView creates the Pack for a view. Each UID gets exactly one Pack.
// The new pack starts in the current interaction mode.
func (m *Manager) RegisterView(v models.View) (*Pack, error) {
	if _, ok := m.packs[v.UID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateView, v.UID)
	}

	p, err := m.newPack(v)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.UID, err)
	}
	if err := p.applyMode(m.mode); err != nil {
		return nil, err
	}

	m.packs[v.UID] = p
	m.logger.Printf("registered view %s (%v, linked to %v)", v.UID, v.Type, p.linkedType)
	return p, nil
}

// RegisterViews registers every view, stopping at the first error.
func (m *Manager) RegisterViews(views []models.View) error {
	for _, v := range views {
		if _, err := m.RegisterView(v); err != nil {
			return err
		}
	}
	return nil
}

// UnregisterView drops the Pack of a view being torn down.
func (m *Manager) UnregisterView(uid models.ViewUID) error {
	if _, ok := m.packs[uid]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownView, uid)
	}
	delete(m.packs, uid)
	m.logger.Printf("unregistered view %s", uid)
	return nil
}

// Views returns the registered views ordered by UID.
func (m *Manager) Views() []models.View {
	views := make([]models.View, 0, len(m.packs))
	for _, p := range m.packs {
		views = append(views, p.view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].UID < views[j].UID })
	return views
}

// Pack returns the Pack of a view.
func (m *Manager) Pack(uid models.ViewUID) (*Pack, error) {
	p, ok := m.packs[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, uid)
	}
	return p, nil
}

// Camera returns the camera of a view.
func (m *Manager) Camera(uid models.ViewUID) (*camera.Camera, error) {
	p, err := m.Pack(uid)
	if err != nil {
		return nil, err
	}
	return p.camera, nil
}

// ActiveInteractionHandler returns the handler receiving a view's events.
func (m *Manager) ActiveInteractionHandler(uid models.ViewUID) (Handler, error) {
	p, err := m.Pack(uid)
	if err != nil {
		return nil, err
	}
	return p.ActiveHandler(), nil
}

// InteractionModeType returns the current interaction mode.
func (m *Manager) InteractionModeType() ModeType {
	return m.mode
}

// SetInteractionModeType switches every view to the handler for mode. Frames
// and cameras are not touched.
func (m *Manager) SetInteractionModeType(mode ModeType) error {
	if _, err := HandlerTypeFor(mode); err != nil {
		return err
	}
	for _, p := range m.packs {
		if err := p.applyMode(mode); err != nil {
			return err
		}
	}
	m.mode = mode
	m.logger.Printf("interaction mode %v", mode)
	return nil
}

// SetViewLinkedFrameType re-anchors a view camera. LinkedToNone fixes the
// camera start frame in World space.
func (m *Manager) SetViewLinkedFrameType(uid models.ViewUID, t LinkedFrameType) error {
	p, err := m.Pack(uid)
	if err != nil {
		return err
	}
	if _, err := m.linkedFrame(t); err != nil {
		return err
	}
	p.linkedType = t
	m.logger.Printf("view %s linked to %v", uid, t)
	return nil
}

// Press routes a pointer press to the active handler of a view.
func (m *Manager) Press(uid models.ViewUID, pos r2.Vec) error {
	h, err := m.ActiveInteractionHandler(uid)
	if err != nil {
		return err
	}
	h.Press(pos)
	return nil
}

// Drag routes a pointer drag to the active handler of a view.
func (m *Manager) Drag(uid models.ViewUID, from, to r2.Vec) error {
	h, err := m.ActiveInteractionHandler(uid)
	if err != nil {
		return err
	}
	h.Drag(from, to)
	return nil
}

// Release routes a pointer release to the active handler of a view.
func (m *Manager) Release(uid models.ViewUID, pos r2.Vec) error {
	h, err := m.ActiveInteractionHandler(uid)
	if err != nil {
		return err
	}
	h.Release(pos)
	return nil
}

// Scroll routes a wheel event to the active handler of a view.
func (m *Manager) Scroll(uid models.ViewUID, delta float64) error {
	h, err := m.ActiveInteractionHandler(uid)
	if err != nil {
		return err
	}
	h.Scroll(delta)
	return nil
}

func (m *Manager) newPack(v models.View) (*Pack, error) {
	cameraType, err := CameraTypeFor(v.Type)
	if err != nil {
		return nil, err
	}
	projection, err := ProjectionTypeFor(cameraType)
	if err != nil {
		return nil, err
	}
	crosshairsType, err := CrosshairsTypeFor(v.Type)
	if err != nil {
		return nil, err
	}
	link, err := DefaultLinkedFrameType(cameraType)
	if err != nil {
		return nil, err
	}

	p := &Pack{view: v, linkedType: link}

	// The tables are total over closed enums, so a failure here is a
	// programming error.
	provider := func() frame.Frame {
		f, err := m.resolveStartFrame(p.view.Type, &p.linkedType)
		if err != nil {
			panic(err)
		}
		return f
	}

	cam, err := camera.New(projection, provider,
		camera.WithZoomLimits(m.settings.MinZoom, m.settings.MaxZoom),
		camera.WithOrthoHalfHeight(m.settings.OrthoHalfHeight),
		camera.WithFieldOfView(m.settings.FieldOfView),
	)
	if err != nil {
		return nil, err
	}

	p.camera = cam
	p.cameraH = newCameraHandler(cam, m.settings)
	p.crosshairsH = newCrosshairsHandler(cam, m.transforms, crosshairsType, m.settings)
	p.refImageH = newRefImageHandler(cam, m.transforms)
	p.slideH = newSlideHandler(cam, m.transforms)
	p.stackH = newStackHandler(cam, m.transforms)
	p.windowH = newWindowLevelHandler(m.settings)
	return p, nil
}
