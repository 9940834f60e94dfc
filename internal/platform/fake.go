package platform

import (
	"context"
	"sync"

	"github.com/Glitch752/winscrollwm/internal/geom"
)

// FakeCall records a single adapter method invocation for assertions in
// tests that care about what the core told the adapter to do.
type FakeCall struct {
	Method string
	Window WindowID
	Rect   geom.Rect
}

// FakeAdapter is a pure in-memory Adapter for tests: it serves a fixed
// (or test-supplied) monitor snapshot, records every OS call instead of
// performing it, and only emits events when the test pushes them via
// Emit. Grounded on the reference fake adapter that accompanies the
// original implementation this contract was distilled from.
type FakeAdapter struct {
	mu sync.Mutex

	displays  []Display
	events    chan Event
	calls     []FakeCall
	cursorX   int
	cursorY   int
	stopped   bool
	openCalls [][]string
}

var _ Adapter = (*FakeAdapter)(nil)

// NewFakeAdapter builds a fake with the given monitor snapshot. Pass no
// displays to get a single 1000x1000 monitor at the origin.
func NewFakeAdapter(displays ...Display) *FakeAdapter {
	if len(displays) == 0 {
		displays = []Display{{
			Index:    0,
			Rect:     geom.FromSize(0, 0, 1000, 1000),
			WorkRect: geom.FromSize(0, 0, 1000, 1000),
		}}
	}
	return &FakeAdapter{
		displays: displays,
		events:   make(chan Event, 64),
	}
}

func (f *FakeAdapter) Initialize(ctx context.Context) error { return nil }

func (f *FakeAdapter) Monitors() ([]Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Display, len(f.displays))
	copy(out, f.displays)
	return out, nil
}

func (f *FakeAdapter) FocusWindow(id WindowID) error {
	f.record(FakeCall{Method: "FocusWindow", Window: id})
	return nil
}

func (f *FakeAdapter) MoveResize(id WindowID, rect geom.Rect) error {
	f.record(FakeCall{Method: "MoveResize", Window: id, Rect: rect})
	return nil
}

func (f *FakeAdapter) Hide(id WindowID) error {
	f.record(FakeCall{Method: "Hide", Window: id})
	return nil
}

func (f *FakeAdapter) CloseWindow(id WindowID) error {
	f.record(FakeCall{Method: "CloseWindow", Window: id})
	return nil
}

func (f *FakeAdapter) Refresh() error {
	f.record(FakeCall{Method: "Refresh"})
	return nil
}

func (f *FakeAdapter) Open(args []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]string, len(args))
	copy(cp, args)
	f.openCalls = append(f.openCalls, cp)
	return nil
}

func (f *FakeAdapter) CursorPos() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursorX, f.cursorY, nil
}

func (f *FakeAdapter) Events() <-chan Event {
	return f.events
}

func (f *FakeAdapter) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return nil
	}
	f.stopped = true
	close(f.events)
	return nil
}

// SetCursorPos lets a test drive cursor-follows-focus without a real
// pointer device.
func (f *FakeAdapter) SetCursorPos(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorX, f.cursorY = x, y
}

// Emit pushes an adapter-originated event, as if the OS had reported it.
func (f *FakeAdapter) Emit(ev Event) {
	f.events <- ev
}

// Calls returns a snapshot of every recorded call, in order.
func (f *FakeAdapter) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// OpenCalls returns a snapshot of every Open invocation's arguments.
func (f *FakeAdapter) OpenCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.openCalls))
	copy(out, f.openCalls)
	return out
}

func (f *FakeAdapter) record(c FakeCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}
