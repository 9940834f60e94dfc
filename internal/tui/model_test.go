package tui

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/ipc"
)

func TestClampWrapsAroundMonitorList(t *testing.T) {
	data := &ipc.MonitorsData{Monitors: []ipc.MonitorInfo{{}, {}, {}}}

	if got := clamp(-1, data); got != 2 {
		t.Fatalf("clamp(-1) = %d, want 2", got)
	}
	if got := clamp(3, data); got != 0 {
		t.Fatalf("clamp(3) = %d, want 0", got)
	}
	if got := clamp(1, data); got != 1 {
		t.Fatalf("clamp(1) = %d, want 1", got)
	}
}

func TestClampHandlesNilOrEmpty(t *testing.T) {
	if got := clamp(5, nil); got != 0 {
		t.Fatalf("clamp with nil data = %d, want 0", got)
	}
	if got := clamp(5, &ipc.MonitorsData{}); got != 0 {
		t.Fatalf("clamp with empty monitors = %d, want 0", got)
	}
}
