package wm

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

func newTestMonitor() *Monitor {
	return NewMonitor(geom.FromSize(0, 0, 1920, 1080), geom.FromSize(0, 0, 1920, 1080))
}

func TestRelayoutIsIdempotent(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	b := newWindow(2, ws)
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.Relayout()
	x1 := []float64{a.X, b.X}
	off1 := ws.ScrollOffset
	ws.Relayout()
	x2 := []float64{a.X, b.X}
	if x1[0] != x2[0] || x1[1] != x2[1] || off1 != ws.ScrollOffset {
		t.Fatalf("relayout not idempotent: %v vs %v", x1, x2)
	}
}

func TestScrollCenteringWhenNarrow(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	w := newWindow(1, ws)
	w.Width = 0.5
	ws.insertWindow(w, 0)
	ws.Relayout()

	want := (0.5 - 1.0) / 2.0
	if ws.ScrollOffset != want {
		t.Fatalf("ScrollOffset = %v, want %v", ws.ScrollOffset, want)
	}
}

func TestScrollClampedWhenWide(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	b := newWindow(2, ws)
	c := newWindow(3, ws)
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.insertWindow(c, 2)
	ws.Relayout()

	if ws.ScrollOffset < 0 {
		t.Fatalf("ScrollOffset went negative: %v", ws.ScrollOffset)
	}
	total := ws.totalWidth()
	if ws.ScrollOffset > total-1.0 {
		t.Fatalf("ScrollOffset %v exceeds max %v", ws.ScrollOffset, total-1.0)
	}
}

func TestMoveFocusClamps(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	b := newWindow(2, ws)
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.FocusedWindowID = a.ID

	ws.MoveFocus(-5)
	if ws.FocusedWindowID != a.ID {
		t.Fatalf("expected focus clamped to first window")
	}

	ws.MoveFocus(5)
	if ws.FocusedWindowID != b.ID {
		t.Fatalf("expected focus clamped to last window")
	}
}

func TestRemoveWindowRepairsFocus(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	b := newWindow(2, ws)
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.FocusedWindowID = b.ID

	ws.removeWindow(b)
	if ws.FocusedWindowID != a.ID {
		t.Fatalf("expected focus to fall back to remaining window")
	}

	ws.removeWindow(a)
	if ws.FocusedWindowID != platform.NoWindow {
		t.Fatalf("expected FocusedWindowID to reset to NoWindow on empty workspace")
	}
}

func TestInsertWindowAtPosition(t *testing.T) {
	mon := newTestMonitor()
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	b := newWindow(2, ws)
	c := newWindow(3, ws)
	ws.insertWindow(a, 0)
	ws.insertWindow(c, 1)
	ws.insertWindow(b, 1)

	if ws.Windows[0] != a || ws.Windows[1] != b || ws.Windows[2] != c {
		t.Fatalf("unexpected order: %v %v %v", ws.Windows[0].ID, ws.Windows[1].ID, ws.Windows[2].ID)
	}
}
