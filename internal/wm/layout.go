package wm

import (
	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

// Gap is the pixel inset the layout engine applies on every side of the
// work rect. Adjacent windows are placed edge to edge, with no gap
// between them. It is a package
// variable rather than a Monitor/Workspace field because it is a daemon-wide
// config knob (internal/config), not part of the model tree proper.
var Gap = 8

// Placement is one window's computed layout outcome for a refresh pass.
type Placement struct {
	Window *Window
	Rect   geom.Rect
	Hidden bool
}

// ComputeMonitorLayout returns the placement of every window belonging to
// mon's focused workspace, plus a Hidden placement for every window in
// every other workspace on that monitor (non-focused workspaces are
// always fully hidden, per spec §4.C).
func ComputeMonitorLayout(mon *Monitor) []Placement {
	var placements []Placement

	focused := mon.CurrentWorkspace()
	placements = append(placements, computeWorkspaceLayout(mon, focused)...)

	for _, ws := range mon.Workspaces {
		if ws == focused {
			continue
		}
		for _, w := range ws.Windows {
			placements = append(placements, Placement{Window: w, Hidden: true})
		}
	}

	return placements
}

// computeWorkspaceLayout implements the scrolling layout math from spec
// §4.C: avail is the work rect inset by Gap on every side, origin_x is
// shifted left by the scroll offset in pixels, and each window's pixel
// width/advance is floored independently so rounding error cannot
// accumulate across the row. A window whose target rect does not
// intersect the monitor's physical rect is reported hidden instead of
// moved off-screen.
func computeWorkspaceLayout(mon *Monitor, ws *Workspace) []Placement {
	placements := make([]Placement, 0, len(ws.Windows))
	if len(ws.Windows) == 0 {
		return placements
	}

	avail := mon.WorkRect.Inset(Gap)
	availWidth := avail.Width()
	originX := avail.Left - int(float64(availWidth)*ws.ScrollOffset)

	for _, w := range ws.Windows {
		wPx := int(float64(availWidth) * w.Width)
		dxPx := int(float64(availWidth) * w.X)
		x := originX + dxPx
		rect := geom.New(x, avail.Top, x+wPx, avail.Bottom)

		if !rect.Intersects(mon.Rect) {
			placements = append(placements, Placement{Window: w, Hidden: true})
			continue
		}
		placements = append(placements, Placement{Window: w, Rect: rect})
	}

	return placements
}

// ComputeWorldLayout computes placements for every monitor in the world.
func ComputeWorldLayout(world *World) map[platform.WindowID]Placement {
	out := make(map[platform.WindowID]Placement)
	for _, mon := range world.Monitors {
		for _, p := range ComputeMonitorLayout(mon) {
			out[p.Window.ID] = p
		}
	}
	return out
}
