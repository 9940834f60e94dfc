// Package x11 implements the platform.Adapter contract on top of the
// BurntSushi/xgb and xgbutil X11 protocol bindings: RandR monitor
// enumeration, move/resize via EWMH with a direct-window fallback,
// minimize via a synthesized WM_CHANGE_STATE ClientMessage, and close
// via WM_DELETE_WINDOW. Windows are discovered from the root window's
// CreateNotify events; every created window is reported, with no EWMH
// client-list enumeration and no manageability filtering.
//go:build linux

package x11

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/platform"
	"github.com/Glitch752/winscrollwm/internal/x11"
)

// Adapter is the real Linux/X11 implementation of platform.Adapter.
type Adapter struct {
	conn *x11.Connection

	mu     sync.Mutex
	events chan platform.Event
	known  map[xproto.Window]bool
}

var _ platform.Adapter = (*Adapter)(nil)

// New opens a fresh X11 connection and returns an unstarted Adapter.
// Call Initialize before using it.
func New() (*Adapter, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("connect to X11: %w", err)
	}
	return &Adapter{
		conn:   conn,
		events: make(chan platform.Event, 256),
		known:  make(map[xproto.Window]bool),
	}, nil
}

// Initialize attaches structure-event listeners to the root window and
// starts the xgbutil event loop in a background goroutine.
func (a *Adapter) Initialize(ctx context.Context) error {
	root := a.conn.Root
	xwindow.New(a.conn.XUtil, root).Listen(
		xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange,
	)

	xevent.CreateNotifyFun(func(X *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
		a.handleCreate(ev.Window)
	}).Connect(a.conn.XUtil, root)

	xevent.DestroyNotifyFun(func(X *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		a.handleDestroy(ev.Window)
	}).Connect(a.conn.XUtil, root)

	xevent.UnmapNotifyFun(func(X *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		a.emit(platform.Event{Kind: platform.EventWindowMinimized, WindowID: platform.WindowID(ev.Window)})
	}).Connect(a.conn.XUtil, root)

	xevent.MapNotifyFun(func(X *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		a.emit(platform.Event{Kind: platform.EventWindowRestored, WindowID: platform.WindowID(ev.Window)})
	}).Connect(a.conn.XUtil, root)

	xevent.ConfigureNotifyFun(func(X *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		a.handleConfigure(ev.Window)
	}).Connect(a.conn.XUtil, root)

	xevent.PropertyNotifyFun(func(X *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		a.handlePropertyChange(ev.Window, ev.Atom)
	}).Connect(a.conn.XUtil, root)

	go a.conn.EventLoop()
	return nil
}

func (a *Adapter) handleCreate(w xproto.Window) {
	a.mu.Lock()
	a.known[w] = true
	a.mu.Unlock()

	rect, _ := a.windowRect(w)
	a.emit(platform.Event{Kind: platform.EventWindowCreated, WindowID: platform.WindowID(w), Rect: rect})
}

func (a *Adapter) handleDestroy(w xproto.Window) {
	a.mu.Lock()
	delete(a.known, w)
	a.mu.Unlock()
	a.emit(platform.Event{Kind: platform.EventWindowDestroyed, WindowID: platform.WindowID(w)})
}

func (a *Adapter) handleConfigure(w xproto.Window) {
	rect, err := a.windowRect(w)
	if err != nil {
		return
	}
	a.emit(platform.Event{Kind: platform.EventWindowMoved, WindowID: platform.WindowID(w), Rect: rect})
}

// windowRect queries w's current screen-coordinate rectangle via
// GetGeometry plus a root-relative TranslateCoordinates, the same
// pattern internal/x11 uses to place a window against its monitor.
func (a *Adapter) windowRect(w xproto.Window) (geom.Rect, error) {
	g, err := xproto.GetGeometry(a.conn.XUtil.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("geometry of window %d: %w", w, err)
	}
	translate, err := xproto.TranslateCoordinates(a.conn.XUtil.Conn(), w, a.conn.Root, 0, 0).Reply()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("translate coordinates for window %d: %w", w, err)
	}
	x, y := int(translate.DstX), int(translate.DstY)
	return geom.FromSize(x, y, int(g.Width), int(g.Height)), nil
}

func (a *Adapter) handlePropertyChange(w xproto.Window, atom xproto.Atom) {
	name, err := xprop.AtomName(a.conn.XUtil, atom)
	if err != nil {
		return
	}
	switch name {
	case "_NET_ACTIVE_WINDOW":
		active, err := ewmh.ActiveWindowGet(a.conn.XUtil)
		if err == nil {
			a.emit(platform.Event{Kind: platform.EventForegroundChanged, WindowID: platform.WindowID(active)})
		}
	case "_NET_WM_NAME", "WM_NAME":
		a.emit(platform.Event{
			Kind:     platform.EventTitleChanged,
			WindowID: platform.WindowID(w),
			Title:    a.windowTitle(w),
		})
	}
}

func (a *Adapter) emit(ev platform.Event) {
	select {
	case a.events <- ev:
	default:
	}
}

// Monitors enumerates physical displays via RandR. Each Display's
// WorkRect is the full RandR rectangle: space reserved by docks and
// panels is not subtracted.
func (a *Adapter) Monitors() ([]platform.Display, error) {
	monitors, err := a.conn.GetMonitors()
	if err != nil {
		return nil, fmt.Errorf("enumerate monitors: %w", err)
	}
	out := make([]platform.Display, 0, len(monitors))
	for _, m := range monitors {
		rect := geom.FromSize(m.X, m.Y, m.Width, m.Height)
		out = append(out, platform.Display{Index: m.ID, Rect: rect, WorkRect: rect})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// FocusWindow raises and activates a window via EWMH.
func (a *Adapter) FocusWindow(id platform.WindowID) error {
	w := xproto.Window(id)
	if err := ewmh.ActiveWindowReq(a.conn.XUtil, w); err != nil {
		return fmt.Errorf("activate window %d: %w", id, err)
	}
	return nil
}

// MoveResize applies rect to a window, unmaximizing it first since a
// maximized window ignores geometry requests.
func (a *Adapter) MoveResize(id platform.WindowID, rect geom.Rect) error {
	w := xproto.Window(id)
	a.unmaximize(w)

	err := ewmh.MoveresizeWindow(a.conn.XUtil, w, rect.Left, rect.Top, rect.Width(), rect.Height())
	if err != nil {
		xwindow.New(a.conn.XUtil, w).MoveResize(rect.Left, rect.Top, rect.Width(), rect.Height())
	}
	return nil
}

func (a *Adapter) unmaximize(w xproto.Window) {
	states, err := ewmh.WmStateGet(a.conn.XUtil, w)
	if err != nil {
		return
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			ewmh.WmStateReq(a.conn.XUtil, w, 0, "_NET_WM_STATE_MAXIMIZED_HORZ")
		}
		if s == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(a.conn.XUtil, w, 0, "_NET_WM_STATE_MAXIMIZED_VERT")
		}
	}
}

// Hide minimizes a window by synthesizing a WM_CHANGE_STATE
// ClientMessage with the iconic state, the canonical X11 way to hide a
// window without destroying it.
func (a *Adapter) Hide(id platform.WindowID) error {
	w := xproto.Window(id)
	atom, err := xprop.Atm(a.conn.XUtil, "WM_CHANGE_STATE")
	if err != nil {
		return fmt.Errorf("intern WM_CHANGE_STATE: %w", err)
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}
	return xproto.SendEvent(
		a.conn.XUtil.Conn(), false, a.conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// CloseWindow requests a graceful close via WM_DELETE_WINDOW.
func (a *Adapter) CloseWindow(id platform.WindowID) error {
	w := xproto.Window(id)

	deleteAtom, err := xprop.Atm(a.conn.XUtil, "WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("intern WM_DELETE_WINDOW: %w", err)
	}
	protocolsAtom, err := xprop.Atm(a.conn.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return fmt.Errorf("intern WM_PROTOCOLS: %w", err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(a.conn.XUtil.Conn(), false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Refresh is a no-op for X11: every adapter call above already talks
// straight to the X server, so there is no batched state to flush.
func (a *Adapter) Refresh() error { return nil }

// Open launches a new program via the first argument as the command and
// the rest as its arguments, detached from the daemon's process group.
func (a *Adapter) Open(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("open: no command given")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %v: %w", args, err)
	}
	go cmd.Wait()
	return nil
}

// CursorPos queries the root window's pointer position.
func (a *Adapter) CursorPos() (int, int, error) {
	reply, err := xproto.QueryPointer(a.conn.XUtil.Conn(), a.conn.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

// Events exposes the adapter's event stream.
func (a *Adapter) Events() <-chan platform.Event { return a.events }

// Stop tears down the X11 connection, which also unblocks the event loop.
func (a *Adapter) Stop() error {
	a.conn.Close()
	close(a.events)
	return nil
}

// RegisterHotkey binds a global X11 hotkey (e.g. "Mod4-Mod1-Left") to a
// callback. An adapter-level convenience the command protocol does not
// require; off unless the daemon's config lists hotkeys.
func (a *Adapter) RegisterHotkey(spec string, fn func()) error {
	keys := strings.Split(spec, "-")
	if len(keys) == 0 {
		return fmt.Errorf("empty hotkey spec")
	}
	key := keys[len(keys)-1]
	mods := keys[:len(keys)-1]

	modMask, err := keybind.ParseModifierString(a.conn.XUtil, strings.Join(mods, "-"))
	if err != nil {
		return fmt.Errorf("parse modifiers %q: %w", spec, err)
	}
	return keybind.KeyPressFun(func(X *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fn()
	}).Connect(a.conn.XUtil, a.conn.Root, fmt.Sprintf("%s-%s", modifierName(modMask), key), true)
}

func modifierName(mask uint16) string {
	return keybind.ModifierString(mask)
}

func (a *Adapter) windowTitle(w xproto.Window) string {
	if title, err := ewmh.WmNameGet(a.conn.XUtil, w); err == nil {
		if t := strings.TrimSpace(title); t != "" {
			return t
		}
	}
	if title, err := icccm.WmNameGet(a.conn.XUtil, w); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}
