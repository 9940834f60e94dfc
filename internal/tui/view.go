package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Glitch752/winscrollwm/internal/ipc"
)

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleFocused   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	styleMonBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	styleMonActive = styleMonBorder.BorderForeground(lipgloss.Color("10"))
)

func renderHeader(status *ipc.StatusData, lastErr string, width int) string {
	if lastErr != "" {
		return styleError.Width(width).Render(fmt.Sprintf("error: %s", lastErr))
	}
	if status == nil {
		return styleDim.Width(width).Render("connecting...")
	}
	return styleHeader.Width(width).Render(fmt.Sprintf(
		"winscrollwm  monitors=%d windows=%d uptime=%ds",
		status.MonitorCount, status.WindowCount, status.UptimeSeconds,
	))
}

func renderHelp(width int) string {
	keys := []string{"left/right: select monitor", "r: refresh", "q/esc/^C: quit"}
	return styleDim.Width(width).Render(strings.Join(keys, "   "))
}

func renderMonitors(data *ipc.MonitorsData, selected int, width, height int) string {
	if data == nil || len(data.Monitors) == 0 {
		return styleDim.Width(width).Height(height).Render("no monitors reported")
	}

	cols := make([]string, 0, len(data.Monitors))
	colWidth := width/len(data.Monitors) - 4
	if colWidth < 12 {
		colWidth = 12
	}
	for i, mon := range data.Monitors {
		style := styleMonBorder
		if i == selected {
			style = styleMonActive
		}
		cols = append(cols, style.Width(colWidth).Render(renderMonitor(mon)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderMonitor(mon ipc.MonitorInfo) string {
	var b strings.Builder
	title := fmt.Sprintf("monitor %d", mon.Index)
	if mon.Focused {
		title = styleFocused.Render(title + " *")
	}
	fmt.Fprintf(&b, "%s\n%dx%d @ (%d,%d)\n\n", title, mon.Width, mon.Height, mon.Left, mon.Top)

	for _, ws := range mon.Workspaces {
		marker := "  "
		if ws.Focused {
			marker = styleFocused.Render("> ")
		}
		fmt.Fprintf(&b, "%sworkspace %d  windows=%d  offset=%.2f\n", marker, ws.ID, ws.WindowCount, ws.ScrollOffset)
	}
	return b.String()
}
