// Package wm holds the model tree (Monitor/Workspace/Window/World), the
// layout engine, the window-manager command core, and the event
// reactor described by the layout and coordination engine spec.
package wm

import (
	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

// MinWindowWidth is the lower clamp for Window.Width (invariant 7).
const MinWindowWidth = 0.1

// DefaultWindowWidth is the width assigned to newly created windows.
const DefaultWindowWidth = 1.0

// Window is one managed top-level OS window.
type Window struct {
	ID platform.WindowID

	// Workspace is a non-owning back-reference; the Workspace owns the
	// Window via its Windows slice.
	Workspace *Workspace

	// X is the horizontal offset in screen-widths from the workspace
	// origin. It is derived: every relayout recomputes it from Width.
	X float64

	// Width is the horizontal size in screen-widths, clamped to
	// [MinWindowWidth, +Inf).
	Width float64

	// OSRect is the last screen rectangle the adapter reported for this
	// window: seeded from the creation event (AdoptWindowAt) and updated
	// on each EventWindowMoved, used to drive display-proxy updates.
	// Zero when the adapter has reported no rectangle.
	OSRect geom.Rect

	// Title is the window's last known OS title, updated from
	// EventTitleChanged, for introspection tools to display.
	Title string
}

func newWindow(id platform.WindowID, ws *Workspace) *Window {
	return &Window{ID: id, Workspace: ws, Width: DefaultWindowWidth}
}
