package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/Glitch752/winscrollwm/internal/protocol"
	"github.com/Glitch752/winscrollwm/internal/wm"
)

func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Server answers winscrollwmctl over a Unix socket, reading the live
// window-manager state through a Manager.
type Server struct {
	socketPath string
	listener   net.Listener
	manager    *wm.Manager
	reloadChan chan<- struct{}
	startTime  time.Time

	shutdownMu   sync.Mutex
	shuttingDown bool
}

// NewServer builds a Server bound to manager. reloadChan, if non-nil,
// receives a value whenever a RELOAD request arrives, for the daemon's
// main goroutine to pick up (mirroring what SIGHUP triggers).
func NewServer(socketPath string, manager *wm.Manager, reloadChan chan<- struct{}) *Server {
	return &Server{
		socketPath: socketPath,
		manager:    manager,
		reloadChan: reloadChan,
		startTime:  time.Now(),
	}
}

// Start removes any stale socket, binds, and begins accepting
// connections in a background goroutine.
func (s *Server) Start() error {
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("create IPC socket %s: %w", s.socketPath, err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		return fmt.Errorf("set IPC socket permissions: %w", err)
	}

	log.Printf("ipc: listening on %s", s.socketPath)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket file.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	os.Remove(s.socketPath)
	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			log.Printf("ipc: accept error: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("ipc: read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.respond(conn, NewErrorResponse(err.Error()))
		return
	}

	s.respond(conn, s.handleCommand(req))
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandSendCommand:
		return s.handleSendCommand(req)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command %q", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	s.manager.Lock()
	defer s.manager.Unlock()

	world := s.manager.World()
	windowCount := 0
	for _, mon := range world.Monitors {
		for _, ws := range mon.Workspaces {
			windowCount += len(ws.Windows)
		}
	}

	resp, err := NewOKResponse(StatusData{
		Running:       true,
		MonitorCount:  len(world.Monitors),
		WindowCount:   windowCount,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	s.manager.Lock()
	defer s.manager.Unlock()

	world := s.manager.World()
	data := MonitorsData{Monitors: make([]MonitorInfo, 0, len(world.Monitors))}
	for i, mon := range world.Monitors {
		mi := MonitorInfo{
			Index:   i,
			Left:    mon.Rect.Left,
			Top:     mon.Rect.Top,
			Width:   mon.Rect.Width(),
			Height:  mon.Rect.Height(),
			Focused: i == world.FocusedMonitorIndex,
		}
		for _, ws := range mon.Workspaces {
			mi.Workspaces = append(mi.Workspaces, WorkspaceInfo{
				ID:              ws.ID,
				WindowCount:     len(ws.Windows),
				Focused:         ws.ID == mon.FocusedWorkspaceID,
				ScrollOffset:    ws.ScrollOffset,
				FocusedWindowID: uint32(ws.FocusedWindowID),
			})
		}
		data.Monitors = append(data.Monitors, mi)
	}

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleSendCommand(req *Request) *Response {
	var payload SendCommandPayload
	if err := decodePayload(req.Payload, &payload); err != nil {
		return NewErrorResponse(err.Error())
	}

	cmd, ok := protocol.Parse(payload.Line)
	if !ok {
		return NewErrorResponse("empty command line")
	}
	if err := s.manager.Dispatch(cmd); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	if s.reloadChan != nil {
		select {
		case s.reloadChan <- struct{}{}:
		default:
		}
	}
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) respond(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		log.Printf("ipc: marshal response: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Printf("ipc: write response: %v", err)
	}
}
