package wm

import (
	"log"

	"github.com/Glitch752/winscrollwm/internal/displayproxy"
	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
)

// Reactor consumes the adapter's event stream and applies each event to
// a Manager's world, serialized through the Manager's own lock. It owns
// no state of its own beyond the manager reference and an optional
// display proxy it drives in lockstep with window lifecycle events.
type Reactor struct {
	manager *Manager
	proxy   displayproxy.Proxy
}

// NewReactor builds a Reactor bound to manager with no display proxy
// (every proxy call is a no-op). Use NewReactorWithProxy to install one.
func NewReactor(manager *Manager) *Reactor {
	return NewReactorWithProxy(manager, displayproxy.NoOp{})
}

// NewReactorWithProxy builds a Reactor bound to manager, driving proxy
// for thumbnail install/teardown/crop/visibility/stacking as windows
// come and go.
func NewReactorWithProxy(manager *Manager, proxy displayproxy.Proxy) *Reactor {
	if proxy == nil {
		proxy = displayproxy.NoOp{}
	}
	return &Reactor{manager: manager, proxy: proxy}
}

// Run ranges over events until the channel closes (the adapter having
// stopped). Intended to be run in its own goroutine by the main loop.
func (r *Reactor) Run(events <-chan platform.Event) {
	for ev := range events {
		r.handle(ev)
	}
}

func (r *Reactor) handle(ev platform.Event) {
	switch ev.Kind {
	case platform.EventWindowCreated:
		r.manager.AdoptWindowAt(ev.WindowID, ev.Rect)
		if err := r.proxy.Create(uint32(ev.WindowID), ev.Rect, ev.Rect.Left, ev.Rect.Top); err != nil {
			log.Printf("wm: reactor: display proxy create for window %d: %v", ev.WindowID, err)
		}

	case platform.EventWindowDestroyed:
		r.manager.ForgetWindow(ev.WindowID)
		if err := r.proxy.Close(uint32(ev.WindowID)); err != nil {
			log.Printf("wm: reactor: display proxy close for window %d: %v", ev.WindowID, err)
		}

	case platform.EventWindowMinimized:
		// Spec: hide the display proxy, model unchanged. The window
		// stays exactly where it is in its workspace; only its visual
		// stand-in (if any) is hidden.
		if err := r.proxy.Hide(uint32(ev.WindowID)); err != nil {
			log.Printf("wm: reactor: display proxy hide for window %d: %v", ev.WindowID, err)
		}

	case platform.EventWindowRestored:
		// Spec: show the display proxy, model unchanged.
		if err := r.proxy.Show(uint32(ev.WindowID)); err != nil {
			log.Printf("wm: reactor: display proxy show for window %d: %v", ev.WindowID, err)
		}

	case platform.EventWindowMoved:
		r.handleWindowMoved(ev.WindowID, ev.Rect)

	case platform.EventForegroundChanged:
		r.handleForegroundChanged(ev.WindowID)
		if err := r.proxy.Reorder(uint32(ev.WindowID)); err != nil {
			log.Printf("wm: reactor: display proxy reorder for window %d: %v", ev.WindowID, err)
		}

	case platform.EventTitleChanged:
		r.handleTitleChanged(ev.WindowID, ev.Title)

	default:
		log.Printf("wm: reactor: unhandled event kind %v for window %d", ev.Kind, ev.WindowID)
	}
}

// handleWindowMoved updates the stored OS rectangle for an externally
// triggered move (the user dragging a window, or the OS itself
// repositioning it) and repositions its display-proxy stand-in to
// match. The scrolling model owns placement exclusively, so this never
// feeds back into layout: the adapter is the source of truth for
// windows it moved on the core's behalf, and the next relayout will
// move the window back if the model disagrees.
func (r *Reactor) handleWindowMoved(id platform.WindowID, rect geom.Rect) {
	r.manager.Lock()
	defer r.manager.Unlock()

	w, _ := r.manager.world.FindWindow(id)
	if w == nil {
		return
	}
	w.OSRect = rect

	if err := r.proxy.Update(uint32(id), rect, rect.Left, rect.Top); err != nil {
		log.Printf("wm: reactor: display proxy update for window %d: %v", id, err)
	}
}

// handleForegroundChanged keeps the model's focus pointers in sync when
// something other than a command (e.g. alt-tab, a click) changed which
// window the OS considers foreground.
func (r *Reactor) handleForegroundChanged(id platform.WindowID) {
	r.manager.Lock()
	defer r.manager.Unlock()

	w, ws := r.manager.world.FindWindow(id)
	if w == nil {
		return
	}
	ws.FocusedWindowID = w.ID
	ws.Monitor.FocusedWorkspaceID = ws.ID
	for i, mon := range r.manager.world.Monitors {
		if mon == ws.Monitor {
			r.manager.world.FocusedMonitorIndex = i
			break
		}
	}
}

// handleTitleChanged stashes the new title for introspection tools to
// display.
func (r *Reactor) handleTitleChanged(id platform.WindowID, title string) {
	r.manager.Lock()
	defer r.manager.Unlock()

	w, _ := r.manager.world.FindWindow(id)
	if w == nil {
		return
	}
	w.Title = title
}
