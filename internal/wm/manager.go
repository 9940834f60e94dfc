package wm

import (
	"log"
	"sync"

	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

// presetWidths is the cycle toggle-preset-width steps through, grounded
// on the original manager's preset_widths list. Widths are screen-width
// fractions, matching Window.Width's unit.
var presetWidths = []float64{0.4, 0.5, 0.6, 1.0}

// Manager is the window-manager command core: its command methods back
// the verbs of the command protocol (see Dispatch), and AdoptWindow,
// ForgetWindow and MouseMove serve the event reactor and the main loop.
// Every method that touches the World acquires mu first; the unexported
// *Locked helpers assume the lock is already held — the same split the
// reference tiler uses internally, generalized from a single workspace
// lock to the whole world.
type Manager struct {
	mu      sync.Mutex
	world   *World
	adapter platform.Adapter
	running bool

	// restartRequested is set by the restart_wm command so the main
	// loop knows to re-exec the daemon after a clean shutdown instead
	// of just exiting.
	restartRequested bool
}

// RestartRequested reports whether the last Exit was triggered by
// restart_wm rather than a plain exit.
func (m *Manager) RestartRequested() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restartRequested
}

// NewManager builds a Manager over an already-populated World.
func NewManager(world *World, adapter platform.Adapter) *Manager {
	return &Manager{world: world, adapter: adapter, running: true}
}

func (m *Manager) Lock()   { m.mu.Lock() }
func (m *Manager) Unlock() { m.mu.Unlock() }

// World exposes the underlying model tree for read-only callers (the
// event reactor, introspection tools). Callers must hold the Manager's
// lock for the duration of any traversal.
func (m *Manager) World() *World { return m.world }

// --- focus commands ---

// FocusHorizontal moves focus by delta positions within the current
// workspace.
func (m *Manager) FocusHorizontal(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focusHorizontalLocked(delta)
}

func (m *Manager) focusHorizontalLocked(delta int) {
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	ws.MoveFocus(delta)
	m.refreshLocked()
}

// FocusPosition jumps focus to an absolute position in the current
// workspace (negative counts from the end).
func (m *Manager) FocusPosition(pos int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	ws.FocusPosition(pos)
	m.refreshLocked()
}

// WorkspaceFocus moves the current monitor's focused-workspace pointer
// by delta (up is negative, matching the top-to-bottom stack order),
// clamped to the valid range.
func (m *Manager) WorkspaceFocus(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mon := m.world.CurrentMonitor()
	idx := mon.IndexOfWorkspace(mon.CurrentWorkspace())
	next := clampInt(idx+delta, 0, len(mon.Workspaces)-1)
	mon.FocusedWorkspaceID = mon.Workspaces[next].ID
	m.refreshLocked()
}

// MonitorFocus moves the world's focused-monitor index by delta,
// clamped to the valid range.
func (m *Manager) MonitorFocus(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.world.FocusedMonitorIndex = clampInt(m.world.FocusedMonitorIndex+delta, 0, len(m.world.Monitors)-1)
	m.refreshLocked()
}

// --- resize commands ---

// Resize adjusts the focused window's width by delta screen-widths,
// clamped to MinWindowWidth, and relayouts its workspace.
func (m *Manager) Resize(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	w.Width = maxFloat(w.Width+delta, MinWindowWidth)
	ws.Relayout()
	m.refreshLocked()
}

// ToggleMaximize sets the focused window's width to 1.0 (full
// screen-width) if it isn't already, otherwise restores 0.5.
func (m *Manager) ToggleMaximize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	if w.Width >= 1.0 {
		w.Width = 0.5
	} else {
		w.Width = 1.0
	}
	ws.Relayout()
	m.refreshLocked()
}

// TogglePresetWidth steps the focused window's width forward through
// presetWidths. If the current width (rounded to two decimals) isn't
// found in the cycle, it restarts at the first preset rather than
// erroring — matching the reference implementation's recovery from a
// failed preset lookup.
func (m *Manager) TogglePresetWidth() {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}

	rounded := roundTo(w.Width, 2)
	idx := -1
	for i, p := range presetWidths {
		if p == rounded {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.Width = presetWidths[0]
	} else {
		w.Width = presetWidths[(idx+1)%len(presetWidths)]
	}
	ws.Relayout()
	m.refreshLocked()
}

// --- window move commands ---

// MoveWindowHorizontal swaps the focused window with its neighbor delta
// positions away within the same workspace.
func (m *Manager) MoveWindowHorizontal(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	from := ws.IndexOf(w)
	to := clampInt(from+delta, 0, len(ws.Windows)-1)
	if from == to {
		return
	}
	ws.Windows[from], ws.Windows[to] = ws.Windows[to], ws.Windows[from]
	ws.Relayout()
	m.refreshLocked()
}

// MoveWindowToPosition moves the focused window to an absolute position
// within its workspace (negative counts from the end).
func (m *Manager) MoveWindowToPosition(pos int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	if pos < 0 {
		pos = len(ws.Windows) + pos
	}
	pos = clampInt(pos, 0, len(ws.Windows)-1)
	from := ws.IndexOf(w)
	if from == pos {
		return
	}
	ws.removeWindow(w)
	ws.insertWindow(w, pos)
	ws.Relayout()
	m.refreshLocked()
}

// MoveWindowVertical transfers the focused window to the workspace
// delta positions above (negative) or below (positive) the current one
// on the same monitor, creating buffer workspaces as needed (invariant
// 3) and focusing the moved window in its new workspace. A no-op if
// there is no focused window or the target would fall outside the
// (possibly just-extended) stack.
func (m *Manager) MoveWindowVertical(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mon := m.world.CurrentMonitor()
	src := mon.CurrentWorkspace()
	w := src.FocusedWindow()
	if w == nil {
		return
	}

	// Guarantee a buffer exists on the side we're moving toward before
	// computing the target index, so moving off the current edge always
	// has somewhere to land.
	mon.EnsureValidWorkspaces()
	srcIdx := mon.IndexOfWorkspace(src)
	targetIdx := srcIdx + delta
	if targetIdx < 0 || targetIdx >= len(mon.Workspaces) {
		return
	}
	target := mon.Workspaces[targetIdx]

	src.removeWindow(w)
	src.Relayout()
	target.insertWindow(w, len(target.Windows))
	target.Relayout()
	mon.FocusedWorkspaceID = target.ID

	mon.EnsureValidWorkspaces()

	if err := m.adapter.FocusWindow(w.ID); err != nil {
		log.Printf("wm: focus window %d after vertical move: %v", w.ID, err)
	}
	m.refreshLocked()
}

// MoveWindowToMonitor transfers the focused window to the monitor delta
// positions away in the world's monitor order, placing it into that
// monitor's current workspace. A no-op if there is no focused window or
// the target monitor index is out of range.
func (m *Manager) MoveWindowToMonitor(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	srcMon := m.world.CurrentMonitor()
	src := srcMon.CurrentWorkspace()
	w := src.FocusedWindow()
	if w == nil {
		return
	}

	targetMonIdx := clampInt(m.world.FocusedMonitorIndex, 0, len(m.world.Monitors)-1)
	targetMonIdx += delta
	if targetMonIdx < 0 || targetMonIdx >= len(m.world.Monitors) {
		return
	}
	targetMon := m.world.Monitors[targetMonIdx]
	target := targetMon.CurrentWorkspace()

	src.removeWindow(w)
	src.Relayout()
	target.insertWindow(w, len(target.Windows))
	target.Relayout()
	targetMon.FocusedWorkspaceID = target.ID
	m.world.FocusedMonitorIndex = targetMonIdx

	srcMon.EnsureValidWorkspaces()
	targetMon.EnsureValidWorkspaces()

	if err := m.adapter.FocusWindow(w.ID); err != nil {
		log.Printf("wm: focus window %d after monitor move: %v", w.ID, err)
	}
	m.refreshLocked()
}

// --- window lifecycle commands ---

// CloseWindow asks the adapter to close the focused window. The window
// is removed from the model only once the adapter later reports its
// destruction through the event reactor, not here.
func (m *Manager) CloseWindow() {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := ws.FocusedWindow()
	if w == nil {
		return
	}
	if err := m.adapter.CloseWindow(w.ID); err != nil {
		log.Printf("wm: close window %d: %v", w.ID, err)
	}
}

// Open asks the adapter to launch a new program with the given
// arguments. The resulting window, if any, arrives via the event
// reactor's window-created handler.
func (m *Manager) Open(args []string) {
	if err := m.adapter.Open(args); err != nil {
		log.Printf("wm: open %v: %v", args, err)
	}
}

// --- window tree mutation entry points used by the event reactor ---

// AdoptWindow inserts a newly observed window at the end of the current
// workspace and focuses it.
func (m *Manager) AdoptWindow(id platform.WindowID) *Window {
	return m.AdoptWindowAt(id, geom.Rect{})
}

// AdoptWindowAt is AdoptWindow plus an initial OS rectangle, for
// adapters that can report a new window's geometry at creation time
// (used to seed a display proxy's initial placement).
func (m *Manager) AdoptWindowAt(id platform.WindowID, osRect geom.Rect) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	w := newWindow(id, ws)
	w.OSRect = osRect
	ws.insertWindow(w, len(ws.Windows))
	ws.Relayout()
	m.world.CurrentMonitor().EnsureValidWorkspaces()
	m.refreshLocked()
	return w
}

// ForgetWindow removes a destroyed window from the model tree.
func (m *Manager) ForgetWindow(id platform.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ws := m.world.FindWindow(id)
	if w == nil {
		return
	}
	ws.removeWindow(w)
	ws.Relayout()
	ws.Monitor.EnsureValidWorkspaces()
	m.refreshLocked()
}

// --- process lifecycle ---

// Exit stops the adapter and marks the manager as no longer running.
// The main loop observes running going false and returns.
func (m *Manager) Exit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false
	return m.adapter.Stop()
}

// Running reports whether the manager is still accepting commands.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// --- cursor-follows-focus ---

// MouseMove is invoked periodically by the main loop's cursor-poll
// ticker. It implements focus-follows-mouse across monitors: when the
// cursor has moved onto a monitor other than the currently focused one,
// that monitor becomes focused and the layout is reapplied so its
// focused workspace is what the user now sees under the pointer.
// Grounded on the reference implementation's cursor-poll loop.
func (m *Manager) MouseMove() {
	m.mu.Lock()
	defer m.mu.Unlock()

	curX, curY, err := m.adapter.CursorPos()
	if err != nil {
		log.Printf("wm: cursor position: %v", err)
		return
	}

	idx := m.world.MonitorIndexAt(curX, curY)
	if idx < 0 || idx == m.world.FocusedMonitorIndex {
		return
	}
	m.world.FocusedMonitorIndex = idx
	m.refreshLocked()
}

// --- layout flush ---

// refreshLocked recomputes the world's layout and pushes every
// placement to the adapter, then asks it to flush batched changes. The
// caller must already hold mu.
func (m *Manager) refreshLocked() {
	for _, mon := range m.world.Monitors {
		for _, p := range ComputeMonitorLayout(mon) {
			var err error
			if p.Hidden {
				err = m.adapter.Hide(p.Window.ID)
			} else {
				err = m.adapter.MoveResize(p.Window.ID, p.Rect)
			}
			if err != nil {
				log.Printf("wm: layout window %d: %v", p.Window.ID, err)
			}
		}
	}
	if err := m.adapter.Refresh(); err != nil {
		log.Printf("wm: adapter refresh: %v", err)
	}

	if focused := m.world.CurrentMonitor().CurrentWorkspace().FocusedWindow(); focused != nil {
		if err := m.adapter.FocusWindow(focused.ID); err != nil {
			log.Printf("wm: focus window %d: %v", focused.ID, err)
		}
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int(v*scale+0.5)) / scale
}
