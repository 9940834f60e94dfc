package wm

import "github.com/Glitch752/winscrollwm/internal/geom"

// Monitor is one physical display.
type Monitor struct {
	// Workspaces is the top-to-bottom ordered vertical stack.
	Workspaces []*Workspace

	// Rect is the physical screen rectangle in OS pixel coordinates.
	Rect geom.Rect

	// WorkRect excludes OS-reserved bars (docks, panels).
	WorkRect geom.Rect

	// FocusedWorkspaceID must name a member of Workspaces.
	FocusedWorkspaceID int64
}

// NewMonitor builds a monitor with a single empty workspace, focused.
func NewMonitor(rect, workRect geom.Rect) *Monitor {
	mon := &Monitor{Rect: rect, WorkRect: workRect}
	ws := newWorkspace(mon)
	mon.Workspaces = []*Workspace{ws}
	mon.FocusedWorkspaceID = ws.ID
	return mon
}

// IndexOfWorkspace returns the position of ws within Workspaces, or -1.
func (m *Monitor) IndexOfWorkspace(ws *Workspace) int {
	for i, candidate := range m.Workspaces {
		if candidate == ws {
			return i
		}
	}
	return -1
}

// CurrentWorkspace returns the workspace matching FocusedWorkspaceID. If
// none matches (drift, or an empty Workspaces slice), it repairs by
// pointing at the first workspace, creating one if necessary.
func (m *Monitor) CurrentWorkspace() *Workspace {
	for _, ws := range m.Workspaces {
		if ws.ID == m.FocusedWorkspaceID {
			return ws
		}
	}
	if len(m.Workspaces) == 0 {
		ws := newWorkspace(m)
		m.Workspaces = []*Workspace{ws}
		m.FocusedWorkspaceID = ws.ID
		return ws
	}
	m.FocusedWorkspaceID = m.Workspaces[0].ID
	return m.Workspaces[0]
}

// EnsureValidWorkspaces enforces invariants 3 and 4: at least one
// workspace exists, and an empty buffer workspace is always present at
// the top and bottom of the stack whenever the adjacent edge workspace
// holds windows. Idempotent.
func (m *Monitor) EnsureValidWorkspaces() {
	if len(m.Workspaces) == 0 {
		ws := newWorkspace(m)
		m.Workspaces = []*Workspace{ws}
		m.FocusedWorkspaceID = ws.ID
		return
	}

	if !m.Workspaces[0].IsEmpty() {
		buf := newWorkspace(m)
		m.Workspaces = append([]*Workspace{buf}, m.Workspaces...)
	}

	last := len(m.Workspaces) - 1
	if !m.Workspaces[last].IsEmpty() {
		buf := newWorkspace(m)
		m.Workspaces = append(m.Workspaces, buf)
	}

	// Repair a dangling focus pointer left behind by the buffer
	// insertions above (they don't change FocusedWorkspaceID, but a
	// prior mutation elsewhere might have).
	for _, ws := range m.Workspaces {
		if ws.ID == m.FocusedWorkspaceID {
			return
		}
	}
	m.FocusedWorkspaceID = m.Workspaces[0].ID
}
