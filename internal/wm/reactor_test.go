package wm

import (
	"testing"

	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

// recordingProxy is a displayproxy.Proxy test double that logs every
// call it receives, keyed by verb, for assertions.
type recordingProxy struct {
	calls []string
}

func (p *recordingProxy) Create(id uint32, rect geom.Rect, x, y int) error {
	p.calls = append(p.calls, "create")
	return nil
}
func (p *recordingProxy) Update(id uint32, rect geom.Rect, x, y int) error {
	p.calls = append(p.calls, "update")
	return nil
}
func (p *recordingProxy) Show(id uint32) error {
	p.calls = append(p.calls, "show")
	return nil
}
func (p *recordingProxy) Hide(id uint32) error {
	p.calls = append(p.calls, "hide")
	return nil
}
func (p *recordingProxy) Reorder(id uint32) error {
	p.calls = append(p.calls, "reorder")
	return nil
}
func (p *recordingProxy) Close(id uint32) error {
	p.calls = append(p.calls, "close")
	return nil
}

func (p *recordingProxy) has(verb string) bool {
	for _, c := range p.calls {
		if c == verb {
			return true
		}
	}
	return false
}

func TestReactorMinimizeRestorePreservesModel(t *testing.T) {
	m, _ := newTestManager(t)
	w := m.AdoptWindow(1)
	w.Width = 0.7
	ws := m.World().CurrentMonitor().CurrentWorkspace()
	wsID := ws.ID
	windowCountBefore := len(ws.Windows)

	proxy := &recordingProxy{}
	r := NewReactorWithProxy(m, proxy)

	r.handle(platform.Event{Kind: platform.EventWindowMinimized, WindowID: 1})
	r.handle(platform.Event{Kind: platform.EventWindowRestored, WindowID: 1})

	if len(ws.Windows) != windowCountBefore {
		t.Fatalf("minimize/restore must not change window count, got %d want %d", len(ws.Windows), windowCountBefore)
	}
	got, _ := m.World().FindWindow(1)
	if got == nil {
		t.Fatalf("window 1 should still be tracked after minimize/restore")
	}
	if got != w {
		t.Fatalf("minimize/restore must not replace the Window with a new instance")
	}
	if got.Width != 0.7 {
		t.Fatalf("minimize/restore must not reset width, got %v", got.Width)
	}
	if ws.ID != wsID {
		t.Fatalf("workspace identity should not change")
	}
	if !proxy.has("hide") || !proxy.has("show") {
		t.Fatalf("expected both hide and show calls, got %v", proxy.calls)
	}
}

func TestReactorDrivesDisplayProxyLifecycle(t *testing.T) {
	m, _ := newTestManager(t)
	proxy := &recordingProxy{}
	r := NewReactorWithProxy(m, proxy)

	rect := geom.FromSize(10, 20, 100, 50)
	r.handle(platform.Event{Kind: platform.EventWindowCreated, WindowID: 1, Rect: rect})
	if !proxy.has("create") {
		t.Fatalf("expected proxy.Create on window-created, got %v", proxy.calls)
	}
	w, _ := m.World().FindWindow(1)
	if w == nil {
		t.Fatalf("expected window 1 to be adopted")
	}
	if w.OSRect != rect {
		t.Fatalf("expected OSRect seeded from creation event, got %+v", w.OSRect)
	}

	moved := geom.FromSize(30, 40, 100, 50)
	r.handle(platform.Event{Kind: platform.EventWindowMoved, WindowID: 1, Rect: moved})
	if !proxy.has("update") {
		t.Fatalf("expected proxy.Update on window-moved, got %v", proxy.calls)
	}
	if w.OSRect != moved {
		t.Fatalf("expected OSRect updated from move event, got %+v", w.OSRect)
	}

	r.handle(platform.Event{Kind: platform.EventForegroundChanged, WindowID: 1})
	if !proxy.has("reorder") {
		t.Fatalf("expected proxy.Reorder on foreground-changed, got %v", proxy.calls)
	}

	r.handle(platform.Event{Kind: platform.EventWindowDestroyed, WindowID: 1})
	if !proxy.has("close") {
		t.Fatalf("expected proxy.Close on window-destroyed, got %v", proxy.calls)
	}
	if gone, _ := m.World().FindWindow(1); gone != nil {
		t.Fatalf("expected window 1 removed from the model after destroy")
	}
}
