// Package transformation holds the two-phase (Staged/Committed) frames edited
// by interaction handlers and read by cameras and renderers.
//
// Staged values change continuously while the user drags. Committed values
// only change on an explicit commit, which copies the whole staged frame.
package transformation

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"histoalign/pkg/frame"
)

// ErrUnknownState is returned when a frame is requested for an invalid State.
var ErrUnknownState = errors.New("unknown transformation state")

// State selects the staged or committed value of a frame.
type State int

const (
	Staged State = iota
	Committed
)

func (s State) String() string {
	switch s {
	case Staged:
		return "Staged"
	case Committed:
		return "Committed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Slot is a staged/committed pair of frames.
type Slot struct {
	staged    frame.Frame
	committed frame.Frame
}

// Stage replaces the staged frame.
func (s *Slot) Stage(f frame.Frame) {
	s.staged = f
}

// Commit copies the staged frame to the committed frame.
func (s *Slot) Commit() {
	s.committed = s.staged
}

// Get returns the frame for the given state.
func (s *Slot) Get(state State) (frame.Frame, error) {
	switch state {
	case Staged:
		return s.staged, nil
	case Committed:
		return s.committed, nil
	default:
		return frame.Frame{}, fmt.Errorf("%w: %v", ErrUnknownState, state)
	}
}

// Manager owns the reference crosshairs, slide stack crosshairs and slide stack
// frames, and keeps them coupled:
//
//   - both crosshairs share a World origin;
//   - the slide stack crosshairs rotation follows the slide stack rotation.
type Manager struct {
	crosshairs      Slot
	stackCrosshairs Slot
	stack           Slot

	// subject and activeSlide are independent of the coupled frames above
	subject     Slot
	activeSlide Slot
}

// NewManager returns a manager with every frame at identity.
func NewManager() *Manager {
	return &Manager{}
}

// StageCrosshairsOrigin stages worldOrigin as the origin of both crosshairs.
func (m *Manager) StageCrosshairsOrigin(worldOrigin r3.Vec) {
	m.crosshairs.staged.SetWorldOrigin(worldOrigin)
	m.stackCrosshairs.staged.SetWorldOrigin(worldOrigin)
}

// StageCrosshairsFrame stages the reference crosshairs frame. Its origin is
// shared with the slide stack crosshairs.
func (m *Manager) StageCrosshairsFrame(f frame.Frame) {
	m.StageCrosshairsOrigin(f.WorldOrigin())
	m.crosshairs.staged.SetFrameToWorldRotation(f.FrameToWorldRotation())
}

// CommitCrosshairsFrame commits the reference crosshairs frame only. The slide
// stack crosshairs are committed together with the slide stack.
func (m *Manager) CommitCrosshairsFrame() {
	m.crosshairs.Commit()
}

// StageSlideStackFrame stages the slide stack frame and aligns the staged slide
// stack crosshairs rotation with it. The crosshairs origin is left alone.
func (m *Manager) StageSlideStackFrame(f frame.Frame) {
	m.stack.Stage(f)
	m.stackCrosshairs.staged.SetFrameToWorldRotation(f.FrameToWorldRotation())
}

// CommitSlideStackFrame commits the slide stack and slide stack crosshairs.
func (m *Manager) CommitSlideStackFrame() {
	m.stack.Commit()
	m.stackCrosshairs.Commit()
}

// CrosshairsFrame returns the reference crosshairs frame.
func (m *Manager) CrosshairsFrame(state State) (frame.Frame, error) {
	return m.crosshairs.Get(state)
}

// SlideStackCrosshairsFrame returns the slide stack crosshairs frame.
func (m *Manager) SlideStackCrosshairsFrame(state State) (frame.Frame, error) {
	return m.stackCrosshairs.Get(state)
}

// SlideStackFrame returns the slide stack frame.
func (m *Manager) SlideStackFrame(state State) (frame.Frame, error) {
	return m.stack.Get(state)
}

// SubjectSlot returns the reference image world_O_subject slot.
func (m *Manager) SubjectSlot() *Slot {
	return &m.subject
}

// ActiveSlideSlot returns the active slide frame slot.
func (m *Manager) ActiveSlideSlot() *Slot {
	return &m.activeSlide
}
