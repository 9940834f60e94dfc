package wm

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

func newTestManager(t *testing.T, displays ...platform.Display) (*Manager, *platform.FakeAdapter) {
	t.Helper()
	Gap = 0
	fake := platform.NewFakeAdapter(displays...)
	raw, err := fake.Monitors()
	if err != nil {
		t.Fatalf("Monitors: %v", err)
	}
	monitors := make([]*Monitor, len(raw))
	for i, d := range raw {
		monitors[i] = NewMonitor(d.Rect, d.WorkRect)
	}
	world := NewWorld(monitors)
	return NewManager(world, fake), fake
}

func TestFocusHorizontalRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ws := m.world.CurrentMonitor().CurrentWorkspace()
	a := m.AdoptWindow(1)
	b := m.AdoptWindow(2)
	_ = a

	if ws.FocusedWindowID != b.ID {
		t.Fatalf("expected newest window focused")
	}

	m.FocusHorizontal(-1)
	if ws.FocusedWindowID != platform.WindowID(1) {
		t.Fatalf("expected focus left to land on window 1")
	}

	m.FocusHorizontal(1)
	if ws.FocusedWindowID != b.ID {
		t.Fatalf("expected focus right to return to window 2")
	}

	m.FocusHorizontal(1)
	if ws.FocusedWindowID != b.ID {
		t.Fatalf("expected focus right at the edge to be a clamped no-op")
	}
}

func TestResizeThenRelayoutUpdatesAdapter(t *testing.T) {
	m, fake := newTestManager(t)
	w := m.AdoptWindow(1)

	m.Resize(-0.5)
	if w.Width != 0.5 {
		t.Fatalf("expected width 0.5, got %v", w.Width)
	}

	calls := fake.Calls()
	var last *platform.FakeCall
	for i := range calls {
		if calls[i].Method == "MoveResize" && calls[i].Window == w.ID {
			last = &calls[i]
		}
	}
	if last == nil {
		t.Fatalf("expected a MoveResize call after resize")
	}
	if last.Rect.Width() != 500 {
		t.Fatalf("expected half-width rect after resize, got %d", last.Rect.Width())
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	m.Resize(-10)
	if w.Width != MinWindowWidth {
		t.Fatalf("expected width clamped to %v, got %v", MinWindowWidth, w.Width)
	}
}

func TestTogglePresetWidthCycles(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	w.Width = 1.0

	m.TogglePresetWidth()
	if w.Width != 0.4 {
		t.Fatalf("expected wraparound to first preset, got %v", w.Width)
	}
	m.TogglePresetWidth()
	if w.Width != 0.5 {
		t.Fatalf("expected second preset, got %v", w.Width)
	}
}

func TestTogglePresetWidthRestartsOnUnknownWidth(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	w.Width = 0.73

	m.TogglePresetWidth()
	if w.Width != presetWidths[0] {
		t.Fatalf("expected restart at first preset, got %v", w.Width)
	}
}

func TestToggleMaximize(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	w.Width = 0.5

	m.ToggleMaximize()
	if w.Width != 1.0 {
		t.Fatalf("expected maximize to 1.0, got %v", w.Width)
	}
	m.ToggleMaximize()
	if w.Width != 0.5 {
		t.Fatalf("expected restore to 0.5, got %v", w.Width)
	}
}

func TestMoveWindowVerticalCreatesBuffers(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	mon := m.world.CurrentMonitor()

	if len(mon.Workspaces) != 3 {
		t.Fatalf("expected AdoptWindow to trigger buffer creation, got %d workspaces", len(mon.Workspaces))
	}

	m.MoveWindowVertical(-1)

	// The window lands in what was the top buffer, which now itself
	// needs a fresh empty buffer above it (invariant 3), so the stack
	// grows from 3 to 4 workspaces: [empty, {1}, empty, empty].
	if len(mon.Workspaces) != 4 {
		t.Fatalf("expected 4 workspaces after moving up, got %d", len(mon.Workspaces))
	}
	if mon.Workspaces[1].FocusedWindow() != w {
		t.Fatalf("expected window to have moved into the second workspace")
	}
	if !mon.Workspaces[0].IsEmpty() {
		t.Fatalf("expected new top buffer to be empty")
	}
	if !mon.Workspaces[2].IsEmpty() || !mon.Workspaces[3].IsEmpty() {
		t.Fatalf("expected remaining workspaces to be empty")
	}
}

func TestMoveWindowVerticalNoOpAtEdgeWithoutFocusedWindow(t *testing.T) {
	m, _ := newTestManager(t)
	mon := m.world.CurrentMonitor()
	before := len(mon.Workspaces)
	m.MoveWindowVertical(-1)
	if len(mon.Workspaces) != before {
		t.Fatalf("expected no-op when no window is focused")
	}
}

func TestMoveWindowToMonitor(t *testing.T) {
	displays := []platform.Display{
		{Index: 0, Rect: geom.FromSize(0, 0, 1000, 800), WorkRect: geom.FromSize(0, 0, 1000, 800)},
		{Index: 1, Rect: geom.FromSize(1000, 0, 1000, 800), WorkRect: geom.FromSize(1000, 0, 1000, 800)},
	}
	m, _ := newTestManager(t, displays...)
	w := m.AdoptWindow(1)

	m.MoveWindowToMonitor(1)

	if m.world.FocusedMonitorIndex != 1 {
		t.Fatalf("expected focused monitor index to follow the moved window")
	}
	found, ws := m.world.FindWindow(w.ID)
	if found == nil || ws.Monitor != m.world.Monitors[1] {
		t.Fatalf("expected window to now live on monitor 1")
	}
}

func TestMoveWindowToMonitorNoOpAtEdge(t *testing.T) {
	m, _ := newTestManager(t)
	m.AdoptWindow(1)
	m.MoveWindowToMonitor(1)
	if m.world.FocusedMonitorIndex != 0 {
		t.Fatalf("expected no-op with a single monitor")
	}
}

func TestCloseWindowAsksAdapter(t *testing.T) {
	m, fake := newTestManager(t)
	w := m.AdoptWindow(1)
	m.CloseWindow()

	var sawClose bool
	for _, c := range fake.Calls() {
		if c.Method == "CloseWindow" && c.Window == w.ID {
			sawClose = true
		}
	}
	if !sawClose {
		t.Fatalf("expected CloseWindow to be forwarded to the adapter")
	}
	if _, ws := m.world.FindWindow(w.ID); ws == nil {
		t.Fatalf("expected window to remain in the model until the adapter reports destruction")
	}
}

func TestForgetWindowRemovesFromModel(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	m.ForgetWindow(w.ID)
	if found, _ := m.world.FindWindow(w.ID); found != nil {
		t.Fatalf("expected window removed from model")
	}
}

func TestExitStopsAdapterOnce(t *testing.T) {
	m, fake := newTestManager(t)
	if err := m.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if m.Running() {
		t.Fatalf("expected Running() false after Exit")
	}
	if err := m.Exit(); err != nil {
		t.Fatalf("second Exit should be a no-op, got %v", err)
	}
	_ = fake
}

func TestMouseMoveFollowsCursorAcrossMonitors(t *testing.T) {
	displays := []platform.Display{
		{Index: 0, Rect: geom.FromSize(0, 0, 1000, 800), WorkRect: geom.FromSize(0, 0, 1000, 800)},
		{Index: 1, Rect: geom.FromSize(1000, 0, 1000, 800), WorkRect: geom.FromSize(1000, 0, 1000, 800)},
	}
	m, fake := newTestManager(t, displays...)
	fake.SetCursorPos(1500, 100)

	m.MouseMove()

	if m.world.FocusedMonitorIndex != 1 {
		t.Fatalf("expected focus to follow cursor onto monitor 1")
	}
}
