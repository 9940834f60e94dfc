package wm

import (
	"sort"

	"github.com/Glitch752/winscrollwm/internal/platform"
)

// World is the root of the model tree: an ordered sequence of Monitor,
// sorted by left-then-top of Rect at construction, plus the index of
// the currently focused monitor.
type World struct {
	Monitors            []*Monitor
	FocusedMonitorIndex int
}

// NewWorld builds a World from already-constructed monitors, sorting
// them in place by (Rect.Left, Rect.Top).
func NewWorld(monitors []*Monitor) *World {
	sort.SliceStable(monitors, func(i, j int) bool {
		a, b := monitors[i].Rect, monitors[j].Rect
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.Top < b.Top
	})
	return &World{Monitors: monitors}
}

// CurrentMonitor returns the focused monitor. Panics only if Monitors
// is empty, which cannot happen once the World has been constructed
// from a non-empty adapter snapshot.
func (w *World) CurrentMonitor() *Monitor {
	return w.Monitors[w.FocusedMonitorIndex]
}

// FindWindow scans every monitor/workspace for a window with the given
// id, returning the window and its owning workspace.
func (w *World) FindWindow(id platform.WindowID) (*Window, *Workspace) {
	for _, mon := range w.Monitors {
		for _, ws := range mon.Workspaces {
			for _, win := range ws.Windows {
				if win.ID == id {
					return win, ws
				}
			}
		}
	}
	return nil, nil
}

// MonitorAt locates the Monitor whose Rect contains the given screen
// point, or nil if none does.
func (w *World) MonitorAt(x, y int) *Monitor {
	for _, mon := range w.Monitors {
		if mon.Rect.Contains(x, y) {
			return mon
		}
	}
	return nil
}

// MonitorIndexAt is like MonitorAt but returns the index, or -1.
func (w *World) MonitorIndexAt(x, y int) int {
	for i, mon := range w.Monitors {
		if mon.Rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// EnsureValidWorkspaces runs Monitor.EnsureValidWorkspaces on every
// monitor in the world.
func (w *World) EnsureValidWorkspaces() {
	for _, mon := range w.Monitors {
		mon.EnsureValidWorkspaces()
	}
}
