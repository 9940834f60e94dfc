package wm

import (
	"bufio"
	"context"
	"io"
	"log"
	"time"

	"github.com/Glitch752/winscrollwm/internal/displayproxy"
	"github.com/Glitch752/winscrollwm/internal/platform"
	"github.com/Glitch752/winscrollwm/internal/protocol"
)

// CursorPollInterval is how often the main loop polls the adapter's
// cursor position for focus-follows-mouse. 50ms, matching the
// reference implementation's asyncio.sleep(0.05) cursor-poll loop.
var CursorPollInterval = 50 * time.Millisecond

// Loop wires together the three concurrent execution contexts the
// daemon runs: a command-stream reader, a cursor-poll ticker, and the
// adapter's own event stream, all serialized through the Manager's
// lock via Reactor and the Manager's public methods.
type Loop struct {
	Manager *Manager
	Reactor *Reactor
}

// NewLoop builds a Loop over manager, constructing its own Reactor with
// no display proxy.
func NewLoop(manager *Manager) *Loop {
	return &Loop{Manager: manager, Reactor: NewReactor(manager)}
}

// NewLoopWithProxy builds a Loop over manager whose Reactor drives proxy.
func NewLoopWithProxy(manager *Manager, proxy displayproxy.Proxy) *Loop {
	return &Loop{Manager: manager, Reactor: NewReactorWithProxy(manager, proxy)}
}

// Run starts the cursor-poll ticker and the adapter event consumer as
// background goroutines, then reads commands from commands on the
// calling goroutine. It returns when the command stream ends (EOF or a
// read error), right after a command that stops the Manager
// (exit/restart_wm), or, once ctx is done, when the next line arrives,
// without dispatching it. A read blocked waiting for input is not
// interrupted by ctx.
func (l *Loop) Run(ctx context.Context, commands io.Reader, events <-chan platform.Event) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go l.runCursorPoll(ctx)
	go l.Reactor.Run(events)

	l.readCommands(ctx, commands)
}

func (l *Loop) runCursorPoll(ctx context.Context) {
	ticker := time.NewTicker(CursorPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Manager.MouseMove()
		}
	}
}

func (l *Loop) readCommands(ctx context.Context, commands io.Reader) {
	scanner := bufio.NewScanner(commands)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := scanner.Text()
		cmd, ok := protocol.Parse(line)
		if !ok {
			continue
		}
		if err := l.Manager.Dispatch(cmd); err != nil {
			log.Printf("wm: dispatch %q: %v", cmd, err)
			continue
		}
		if !l.Manager.Running() {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("wm: command stream read error: %v", err)
	}
}
