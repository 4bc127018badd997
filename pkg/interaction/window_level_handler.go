package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// WindowLevelHandler adjusts the intensity window of the image shown in a
// view. Horizontal drags change the window width, vertical drags the level.
type WindowLevelHandler struct {
	window   float64
	level    float64
	settings Settings
	onChange func(window, level float64)
}

func newWindowLevelHandler(settings Settings) *WindowLevelHandler {
	return &WindowLevelHandler{
		window:   math.Max(settings.InitialWindow, settings.MinWindow),
		level:    settings.InitialLevel,
		settings: settings,
	}
}

func (h *WindowLevelHandler) Type() HandlerType { return WindowLevelHandlerType }

// WindowLevel returns the current window width and level.
func (h *WindowLevelHandler) WindowLevel() (window, level float64) {
	return h.window, h.level
}

// SetWindowLevel sets the window width and level. The width is clamped to the
// configured minimum.
func (h *WindowLevelHandler) SetWindowLevel(window, level float64) {
	h.window = math.Max(window, h.settings.MinWindow)
	h.level = level
	if h.onChange != nil {
		h.onChange(h.window, h.level)
	}
}

// OnChange registers a callback run after every window/level change.
func (h *WindowLevelHandler) OnChange(fn func(window, level float64)) {
	h.onChange = fn
}

func (h *WindowLevelHandler) Press(pos r2.Vec) {}

func (h *WindowLevelHandler) Drag(from, to r2.Vec) {
	d := r2.Sub(to, from)
	h.SetWindowLevel(h.window+d.X*h.settings.WindowPerNDC, h.level+d.Y*h.settings.LevelPerNDC)
}

func (h *WindowLevelHandler) Release(pos r2.Vec) {}

func (h *WindowLevelHandler) Scroll(delta float64) {}
