package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the inspector's bubbletea program against the daemon
// listening on socketPath, blocking until the user quits.
func Run(socketPath string) error {
	p := tea.NewProgram(New(socketPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
