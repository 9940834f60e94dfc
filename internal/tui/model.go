// Package tui implements a read-only Bubble Tea inspector over the
// live window-manager state, polling the daemon's IPC server on a
// timer and rendering monitors and their workspaces (window count and
// scroll offset each) with lipgloss.
// Grounded on the reference TUI's bubbletea model/update/view split.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Glitch752/winscrollwm/internal/ipc"
)

const pollInterval = 500 * time.Millisecond

// model is the root bubbletea model for the inspector.
type model struct {
	client *ipc.Client

	status   *ipc.StatusData
	monitors *ipc.MonitorsData
	lastErr  string

	selectedMonitor int

	width  int
	height int
}

// New builds an inspector model bound to a daemon socket.
func New(socketPath string) tea.Model {
	return model{client: ipc.NewClient(socketPath)}
}

type pollMsg struct {
	status   *ipc.StatusData
	monitors *ipc.MonitorsData
	err      error
}

func (m model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.client.GetStatus()
		if err != nil {
			return pollMsg{err: err}
		}
		monitors, err := m.client.GetMonitors()
		if err != nil {
			return pollMsg{err: err}
		}
		return pollMsg{status: status, monitors: monitors}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

type tickMsg struct{}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), tickCmd())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.selectedMonitor = clamp(m.selectedMonitor-1, m.monitors)
		case "right", "l":
			m.selectedMonitor = clamp(m.selectedMonitor+1, m.monitors)
		case "r":
			return m, m.pollCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.pollCmd(), tickCmd())

	case pollMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.status = msg.status
		m.monitors = msg.monitors
		m.selectedMonitor = clamp(m.selectedMonitor, m.monitors)
	}

	return m, nil
}

func clamp(i int, data *ipc.MonitorsData) int {
	if data == nil || len(data.Monitors) == 0 {
		return 0
	}
	if i < 0 {
		return len(data.Monitors) - 1
	}
	if i >= len(data.Monitors) {
		return 0
	}
	return i
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := renderHeader(m.status, m.lastErr, m.width)
	help := renderHelp(m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(help)
	if contentHeight < 1 {
		contentHeight = 1
	}
	content := renderMonitors(m.monitors, m.selectedMonitor, m.width, contentHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, help)
}
