package wm

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/geom"
)

func TestComputeWorkspaceLayoutSingleFullWidth(t *testing.T) {
	Gap = 0
	mon := NewMonitor(geom.FromSize(0, 0, 1000, 800), geom.FromSize(0, 0, 1000, 800))
	ws := mon.CurrentWorkspace()
	w := newWindow(1, ws)
	ws.insertWindow(w, 0)
	ws.Relayout()

	placements := ComputeMonitorLayout(mon)
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	p := placements[0]
	if p.Hidden {
		t.Fatalf("expected window to be visible")
	}
	if p.Rect.Width() != 1000 {
		t.Fatalf("expected full work-rect width, got %d", p.Rect.Width())
	}
}

func TestComputeWorkspaceLayoutTwoHalfWidth(t *testing.T) {
	Gap = 0
	mon := NewMonitor(geom.FromSize(0, 0, 1000, 800), geom.FromSize(0, 0, 1000, 800))
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	a.Width = 0.5
	b := newWindow(2, ws)
	b.Width = 0.5
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.Relayout()

	placements := ComputeMonitorLayout(mon)
	byID := map[int]geom.Rect{}
	for _, p := range placements {
		if p.Hidden {
			t.Fatalf("did not expect either window hidden")
		}
		byID[int(p.Window.ID)] = p.Rect
	}
	if byID[1].Left != 0 || byID[1].Width() != 500 {
		t.Fatalf("window 1 rect = %+v", byID[1])
	}
	if byID[2].Left != 500 || byID[2].Width() != 500 {
		t.Fatalf("window 2 rect = %+v", byID[2])
	}
}

func TestComputeMonitorLayoutHidesNonFocusedWorkspaces(t *testing.T) {
	Gap = 0
	mon := NewMonitor(geom.FromSize(0, 0, 1000, 800), geom.FromSize(0, 0, 1000, 800))
	first := mon.CurrentWorkspace()
	w1 := newWindow(1, first)
	first.insertWindow(w1, 0)
	first.Relayout()

	second := newWorkspace(mon)
	mon.Workspaces = append(mon.Workspaces, second)
	w2 := newWindow(2, second)
	second.insertWindow(w2, 0)
	second.Relayout()
	mon.FocusedWorkspaceID = first.ID

	placements := ComputeMonitorLayout(mon)
	var sawHiddenW2 bool
	for _, p := range placements {
		if p.Window.ID == 2 {
			sawHiddenW2 = true
			if !p.Hidden {
				t.Fatalf("expected window on non-focused workspace to be hidden")
			}
		}
	}
	if !sawHiddenW2 {
		t.Fatalf("expected placement entry for window on non-focused workspace")
	}
}

func TestComputeWorkspaceLayoutHidesOffscreenWindow(t *testing.T) {
	Gap = 0
	mon := NewMonitor(geom.FromSize(0, 0, 1000, 800), geom.FromSize(0, 0, 1000, 800))
	ws := mon.CurrentWorkspace()
	a := newWindow(1, ws)
	a.Width = 1.0
	b := newWindow(2, ws)
	b.Width = 1.0
	ws.insertWindow(a, 0)
	ws.insertWindow(b, 1)
	ws.FocusedWindowID = b.ID
	ws.Relayout()

	placements := ComputeMonitorLayout(mon)
	hiddenCount := 0
	for _, p := range placements {
		if p.Window.ID == 1 {
			if !p.Hidden {
				t.Fatalf("expected window scrolled fully offscreen to be hidden")
			}
			hiddenCount++
		}
	}
	if hiddenCount != 1 {
		t.Fatalf("expected exactly one hidden placement for window 1")
	}
}
