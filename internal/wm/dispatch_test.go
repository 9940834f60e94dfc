package wm

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/platform"
	"github.com/Glitch752/winscrollwm/internal/protocol"
)

func dispatchLine(t *testing.T, m *Manager, line string) {
	t.Helper()
	cmd, ok := protocol.Parse(line)
	if !ok {
		t.Fatalf("failed to parse %q", line)
	}
	if err := m.Dispatch(cmd); err != nil {
		t.Fatalf("Dispatch(%q): %v", line, err)
	}
}

func TestDispatchFocusFirstLast(t *testing.T) {
	m, _ := newTestManager(t)
	m.AdoptWindow(1)
	m.AdoptWindow(2)
	m.AdoptWindow(3)
	ws := m.World().CurrentMonitor().CurrentWorkspace()

	dispatchLine(t, m, "focus_first")
	if ws.FocusedWindowID != platform.WindowID(1) {
		t.Fatalf("focus_first: focused = %v, want 1", ws.FocusedWindowID)
	}

	dispatchLine(t, m, "focus_last")
	if ws.FocusedWindowID != platform.WindowID(3) {
		t.Fatalf("focus_last: focused = %v, want 3", ws.FocusedWindowID)
	}
}

func TestDispatchResizeStepIsOneTenth(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	w.Width = 0.5

	dispatchLine(t, m, "resize_inc")
	if got := roundTo(w.Width, 2); got != 0.6 {
		t.Fatalf("resize_inc: width = %v, want 0.6", got)
	}

	dispatchLine(t, m, "resize_dec")
	if got := roundTo(w.Width, 2); got != 0.5 {
		t.Fatalf("resize_dec: width = %v, want 0.5", got)
	}
}
