// Package mcpserve exposes a read-only Model Context Protocol server
// over the window-manager state, so an external agent can inspect
// monitors, workspaces, and windows without driving the command
// protocol. It runs as its own stdio process (the MCP transport
// requires exclusive use of stdio), so unlike the IPC server it never
// shares the daemon's *wm.Manager directly — it queries the daemon
// over the same Unix socket winscrollwmctl uses. Grounded on the
// reference MCP server's NewServer/AddTool wiring, trimmed to
// introspection-only tools with no mutating calls.
package mcpserve

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Glitch752/winscrollwm/internal/ipc"
)

const (
	serverName    = "winscrollwm"
	serverVersion = "0.1.0"
)

// Server answers MCP tool calls by querying a running daemon's IPC
// socket.
type Server struct {
	client    *ipc.Client
	mcpServer *mcpsdk.Server
}

// New builds an unstarted Server that will query the daemon listening
// on socketPath.
func New(socketPath string) *Server {
	s := &Server{client: ipc.NewClient(socketPath)}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until ctx is
// done or the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List every monitor known to the window manager, with its screen rectangle and which one currently has focus.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_world_state",
		Description: "Dump the model tree as the daemon reports it: every monitor and its workspaces (including empty buffer workspaces), with each workspace's scroll offset, window count, and focused window id. Individual windows' positions and widths are not included.",
	}, s.handleGetWorldState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether the daemon is running and summary counts of monitors and windows.",
	}, s.handleGetStatus)
}

// --- list_monitors ---

type listMonitorsInput struct{}

type monitorSummary struct {
	Index      int  `json:"index"`
	Left       int  `json:"left"`
	Top        int  `json:"top"`
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Focused    bool `json:"focused"`
	Workspaces int  `json:"workspaces"`
}

type listMonitorsOutput struct {
	Monitors []monitorSummary `json:"monitors"`
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ listMonitorsInput) (*mcpsdk.CallToolResult, listMonitorsOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, listMonitorsOutput{}, fmt.Errorf("query daemon: %w", err)
	}

	out := listMonitorsOutput{Monitors: make([]monitorSummary, 0, len(data.Monitors))}
	focusedIdx := 0
	for _, mon := range data.Monitors {
		if mon.Focused {
			focusedIdx = mon.Index
		}
		out.Monitors = append(out.Monitors, monitorSummary{
			Index:      mon.Index,
			Left:       mon.Left,
			Top:        mon.Top,
			Width:      mon.Width,
			Height:     mon.Height,
			Focused:    mon.Focused,
			Workspaces: len(mon.Workspaces),
		})
	}

	text := fmt.Sprintf("%d monitor(s), focused index %d", len(out.Monitors), focusedIdx)
	return textResult(text), out, nil
}

// --- get_world_state ---

type getWorldStateInput struct{}

type windowSummary struct {
	ID      uint32  `json:"id"`
	Focused bool    `json:"focused"`
}

type workspaceSummary struct {
	ID           int64   `json:"id"`
	Focused      bool    `json:"focused"`
	ScrollOffset float64 `json:"scroll_offset"`
	WindowCount  int     `json:"window_count"`
	FocusedWindow windowSummary `json:"focused_window"`
}

type worldMonitorSummary struct {
	Index      int                `json:"index"`
	Focused    bool               `json:"focused"`
	Workspaces []workspaceSummary `json:"workspaces"`
}

type getWorldStateOutput struct {
	Monitors []worldMonitorSummary `json:"monitors"`
}

func (s *Server) handleGetWorldState(_ context.Context, _ *mcpsdk.CallToolRequest, _ getWorldStateInput) (*mcpsdk.CallToolResult, getWorldStateOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, getWorldStateOutput{}, fmt.Errorf("query daemon: %w", err)
	}

	out := getWorldStateOutput{Monitors: make([]worldMonitorSummary, 0, len(data.Monitors))}
	for _, mon := range data.Monitors {
		wms := worldMonitorSummary{Index: mon.Index, Focused: mon.Focused}
		for _, ws := range mon.Workspaces {
			wms.Workspaces = append(wms.Workspaces, workspaceSummary{
				ID:            ws.ID,
				Focused:       ws.Focused,
				ScrollOffset:  ws.ScrollOffset,
				WindowCount:   ws.WindowCount,
				FocusedWindow: windowSummary{ID: ws.FocusedWindowID, Focused: ws.WindowCount > 0},
			})
		}
		out.Monitors = append(out.Monitors, wms)
	}

	text := fmt.Sprintf("world state: %d monitor(s)", len(out.Monitors))
	return textResult(text), out, nil
}

// --- get_status ---

type getStatusInput struct{}

type getStatusOutput struct {
	Running       bool  `json:"running"`
	MonitorCount  int   `json:"monitor_count"`
	WindowCount   int   `json:"window_count"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ getStatusInput) (*mcpsdk.CallToolResult, getStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, getStatusOutput{}, fmt.Errorf("query daemon: %w", err)
	}

	out := getStatusOutput{
		Running:       status.Running,
		MonitorCount:  status.MonitorCount,
		WindowCount:   status.WindowCount,
		UptimeSeconds: status.UptimeSeconds,
	}
	text := fmt.Sprintf("running=%v monitors=%d windows=%d", out.Running, out.MonitorCount, out.WindowCount)
	return textResult(text), out, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}}}
}
