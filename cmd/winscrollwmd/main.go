// Command winscrollwmd is the scrolling window manager's daemon: it
// connects to the display server, runs the layout and coordination
// engine, and answers winscrollwmctl/MCP queries over a Unix socket.
// Grounded on the reference daemon's runDaemon wiring (config load,
// backend connect, hotkey registration, IPC server, signal handling).
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Glitch752/winscrollwm/internal/config"
	"github.com/Glitch752/winscrollwm/internal/displayproxy"
	"github.com/Glitch752/winscrollwm/internal/geom"
	"github.com/Glitch752/winscrollwm/internal/ipc"
	"github.com/Glitch752/winscrollwm/internal/platform"
	"github.com/Glitch752/winscrollwm/internal/platform/x11"
	"github.com/Glitch752/winscrollwm/internal/protocol"
	"github.com/Glitch752/winscrollwm/internal/wm"
)

// hotkeyAdapter is implemented by adapters that support binding global
// hotkeys to callbacks. Not part of platform.Adapter since not every
// platform can offer it.
type hotkeyAdapter interface {
	RegisterHotkey(spec string, fn func()) error
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("winscrollwmd: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	wm.Gap = cfg.GapSize
	wm.CursorPollInterval = cfg.CursorPollInterval(wm.CursorPollInterval)
	log.Printf("configuration loaded (gap: %dpx, socket: %s)", cfg.GapSize, cfg.SocketPath)

	adapter, err := x11.New()
	if err != nil {
		return fmt.Errorf("connect to display: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := adapter.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize display adapter: %w", err)
	}
	defer adapter.Stop()

	world, err := buildWorld(adapter, cfg)
	if err != nil {
		return fmt.Errorf("enumerate monitors: %w", err)
	}

	manager := wm.NewManager(world, adapter)
	// X11 has no compositor thumbnail API equivalent to what a real
	// displayproxy.Proxy would drive, so the loop's reactor runs with
	// the no-op default; a future adapter with thumbnail support plugs
	// in here without any reactor changes.
	loop := wm.NewLoopWithProxy(manager, displayproxy.NoOp{})

	registerHotkeys(adapter, manager, cfg)

	reloadChan := make(chan struct{}, 1)
	ipcServer := ipc.NewServer(cfg.SocketPath, manager, reloadChan)
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go handleSignals(sigCh, reloadChan, manager, cancel)

	// Loop.Run owns the cursor-poll ticker and the adapter event
	// reactor, and additionally treats the daemon's own stdin as the
	// command stream named in the spec's external interfaces (a parent
	// process, e.g. a hotkey relay, writes command-protocol lines to
	// it). It runs detached: its stdin read only returns on EOF or a
	// closed stream, so it outlives ctx, but the daemon process exits
	// as soon as run() returns below, tearing it down with it.
	go loop.Run(ctx, os.Stdin, adapter.Events())

	log.Println("winscrollwmd started")
	// Hotkeys, the IPC server, and the stdin command stream all
	// dispatch directly against the manager; the daemon itself just
	// waits for shutdown.
	<-ctx.Done()

	if manager.RestartRequested() {
		return restartSelf()
	}
	return nil
}

func buildWorld(adapter platform.Adapter, cfg *config.Config) (*wm.World, error) {
	displays, err := adapter.Monitors()
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no monitors reported")
	}

	monitors := make([]*wm.Monitor, 0, len(displays))
	for _, d := range displays {
		workRect := applyPadding(d.WorkRect, cfg.ScreenPadding)
		monitors = append(monitors, wm.NewMonitor(d.Rect, workRect))
	}
	return wm.NewWorld(monitors), nil
}

func applyPadding(rect geom.Rect, m config.Margins) geom.Rect {
	return geom.New(rect.Left+m.Left, rect.Top+m.Top, rect.Right-m.Right, rect.Bottom-m.Bottom)
}

func registerHotkeys(adapter platform.Adapter, manager *wm.Manager, cfg *config.Config) {
	hk, ok := adapter.(hotkeyAdapter)
	if !ok || len(cfg.Hotkeys) == 0 {
		return
	}
	for spec, line := range cfg.Hotkeys {
		cmd, okParse := protocol.Parse(line)
		if !okParse {
			log.Printf("hotkey %q: empty command line, skipping", spec)
			continue
		}
		if err := hk.RegisterHotkey(spec, func() {
			if err := manager.Dispatch(cmd); err != nil {
				log.Printf("hotkey %q dispatch: %v", spec, err)
			}
		}); err != nil {
			log.Printf("register hotkey %q: %v", spec, err)
			continue
		}
		log.Printf("hotkey registered: %s -> %s", spec, line)
	}
}

func handleSignals(sigCh <-chan os.Signal, reloadChan chan struct{}, manager *wm.Manager, cancel context.CancelFunc) {
	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("received SIGHUP, reloading config")
				newCfg, err := config.Load()
				if err != nil {
					log.Printf("config reload failed: %v", err)
					continue
				}
				wm.Gap = newCfg.GapSize
			default:
				log.Println("shutting down")
				manager.Exit()
				cancel()
				return
			}
		case <-reloadChan:
			log.Println("received RELOAD request, reloading config")
			if newCfg, err := config.Load(); err != nil {
				log.Printf("config reload failed: %v", err)
			} else {
				wm.Gap = newCfg.GapSize
			}
		}
	}
}

func restartSelf() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable for restart: %w", err)
	}
	time.Sleep(200 * time.Millisecond)
	return syscall.Exec(exe, os.Args, os.Environ())
}
