package wm

import (
	"sync/atomic"

	"github.com/Glitch752/winscrollwm/internal/platform"
)

// workspaceIDCounter is the process-wide monotonic source of Workspace
// ids (spec §9: "never reused" within a process lifetime).
var workspaceIDCounter int64

func nextWorkspaceID() int64 {
	return atomic.AddInt64(&workspaceIDCounter, 1)
}

// Workspace is a horizontally scrolling strip of windows on one monitor.
type Workspace struct {
	ID int64

	// Windows is the display-ordered (left-to-right) sequence of
	// member windows. The Workspace owns these.
	Windows []*Window

	// Monitor is a non-owning back-reference, nil only during
	// reassignment (move-window-to-monitor mid-transfer).
	Monitor *Monitor

	// FocusedWindowID is platform.NoWindow iff Windows is empty;
	// otherwise it must name a member of Windows.
	FocusedWindowID platform.WindowID

	// ScrollOffset is the horizontal shift, in screen-widths, applied
	// when laying out this workspace. ReclampScroll keeps it within
	// [0, total width - 1] when the windows are wider than the screen,
	// and sets it to (total width - 1) / 2, zero or negative, when they
	// fit, which centers them.
	ScrollOffset float64
}

// newWorkspace allocates an empty workspace owned by mon.
func newWorkspace(mon *Monitor) *Workspace {
	return &Workspace{ID: nextWorkspaceID(), Monitor: mon, FocusedWindowID: platform.NoWindow}
}

// IndexOf returns the position of w within the workspace, or -1.
func (ws *Workspace) IndexOf(w *Window) int {
	for i, candidate := range ws.Windows {
		if candidate == w {
			return i
		}
	}
	return -1
}

// FocusedWindow returns the currently focused window, or nil if the
// workspace has no windows.
func (ws *Workspace) FocusedWindow() *Window {
	if len(ws.Windows) == 0 {
		return nil
	}
	for _, w := range ws.Windows {
		if w.ID == ws.FocusedWindowID {
			return w
		}
	}
	// FocusedWindowID drifted out of sync (shouldn't happen if callers
	// always clamp after mutation); repair by focusing the first window.
	ws.FocusedWindowID = ws.Windows[0].ID
	return ws.Windows[0]
}

func (ws *Workspace) focusedIndex() int {
	for i, w := range ws.Windows {
		if w.ID == ws.FocusedWindowID {
			return i
		}
	}
	return -1
}

// totalWidth sums every member window's Width.
func (ws *Workspace) totalWidth() float64 {
	var total float64
	for _, w := range ws.Windows {
		total += w.Width
	}
	return total
}

// Relayout assigns Window.X as the prefix sum of widths in display
// order, then reclamps the scroll offset. Idempotent: calling it twice
// in a row yields identical X assignments (spec §8).
func (ws *Workspace) Relayout() {
	var x float64
	for _, w := range ws.Windows {
		w.X = x
		x += w.Width
	}
	ws.ReclampScroll()
}

// ReclampScroll enforces invariant 6 and, when a focused window exists,
// additionally shifts the offset by the minimal amount needed to keep
// that window fully on-screen (spec §4.B).
func (ws *Workspace) ReclampScroll() {
	total := ws.totalWidth()

	if total <= 1.0 {
		ws.ScrollOffset = (total - 1.0) / 2.0
		return
	}

	maxOffset := total - 1.0
	ws.ScrollOffset = clampFloat(ws.ScrollOffset, 0, maxOffset)

	focused := ws.FocusedWindow()
	if focused == nil {
		return
	}

	visibleStart := ws.ScrollOffset
	visibleEnd := ws.ScrollOffset + 1.0 - focused.Width
	if focused.X < visibleStart {
		ws.ScrollOffset = focused.X
	} else if focused.X > visibleEnd {
		ws.ScrollOffset = focused.X - (1.0 - focused.Width)
	}
	ws.ScrollOffset = clampFloat(ws.ScrollOffset, 0, maxOffset)
}

// MoveFocus shifts focus by delta positions, clamped to the valid
// range, then relayouts. A no-op on an empty workspace.
func (ws *Workspace) MoveFocus(delta int) {
	if len(ws.Windows) == 0 {
		return
	}
	current := ws.focusedIndex()
	if current < 0 {
		current = 0
	}
	next := clampInt(current+delta, 0, len(ws.Windows)-1)
	ws.FocusedWindowID = ws.Windows[next].ID
	ws.Relayout()
}

// FocusPosition sets focus to an absolute position (negative counts
// from the end), clamped, then relayouts.
func (ws *Workspace) FocusPosition(pos int) {
	if len(ws.Windows) == 0 {
		return
	}
	if pos < 0 {
		pos = len(ws.Windows) + pos
	}
	pos = clampInt(pos, 0, len(ws.Windows)-1)
	ws.FocusedWindowID = ws.Windows[pos].ID
	ws.Relayout()
}

// removeWindow deletes w from the workspace and repairs focus, leaving
// X/scroll stale until the caller relayouts. Returns false if w was not
// a member.
func (ws *Workspace) removeWindow(w *Window) bool {
	idx := ws.IndexOf(w)
	if idx < 0 {
		return false
	}
	wasFocused := ws.FocusedWindowID == w.ID
	ws.Windows = append(ws.Windows[:idx:idx], ws.Windows[idx+1:]...)

	if len(ws.Windows) == 0 {
		ws.FocusedWindowID = platform.NoWindow
		return true
	}
	if wasFocused {
		next := clampInt(idx, 0, len(ws.Windows)-1)
		ws.FocusedWindowID = ws.Windows[next].ID
	}
	return true
}

// insertWindow appends w at the given position (clamped) and focuses
// it, leaving layout stale until the caller relayouts.
func (ws *Workspace) insertWindow(w *Window, pos int) {
	pos = clampInt(pos, 0, len(ws.Windows))
	ws.Windows = append(ws.Windows, nil)
	copy(ws.Windows[pos+1:], ws.Windows[pos:])
	ws.Windows[pos] = w
	w.Workspace = ws
	ws.FocusedWindowID = w.ID
}

// IsEmpty reports whether the workspace has no windows.
func (ws *Workspace) IsEmpty() bool {
	return len(ws.Windows) == 0
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
