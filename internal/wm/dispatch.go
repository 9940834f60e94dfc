package wm

import (
	"fmt"

	"github.com/Glitch752/winscrollwm/internal/protocol"
)

// resizeStep is the screen-width fraction resize_inc/resize_dec adjusts
// the focused window's width by.
const resizeStep = 0.1

// Dispatch routes one parsed command to the matching Manager method. It
// returns an error for a verb outside the known vocabulary, and for
// exit/restart_wm it returns whatever Manager.Exit returns; other
// individual commands that are no-ops under current model state (no
// focused window, no adjacent monitor) do not error, matching every
// Manager method's own no-op-on-precondition-unmet contract.
func (m *Manager) Dispatch(cmd protocol.Command) error {
	switch cmd.Verb {
	case protocol.VerbFocusLeft:
		m.FocusHorizontal(-1)
	case protocol.VerbFocusRight:
		m.FocusHorizontal(1)
	case protocol.VerbFocusFirst:
		m.FocusPosition(0)
	case protocol.VerbFocusLast:
		m.FocusPosition(-1)

	case protocol.VerbWorkspaceUp:
		m.WorkspaceFocus(-1)
	case protocol.VerbWorkspaceDown:
		m.WorkspaceFocus(1)

	case protocol.VerbMonitorLeft:
		m.MonitorFocus(-1)
	case protocol.VerbMonitorRight:
		m.MonitorFocus(1)

	case protocol.VerbMoveLeft:
		m.MoveWindowHorizontal(-1)
	case protocol.VerbMoveRight:
		m.MoveWindowHorizontal(1)
	case protocol.VerbMoveUp:
		m.MoveWindowVertical(-1)
	case protocol.VerbMoveDown:
		m.MoveWindowVertical(1)
	case protocol.VerbMoveFirst:
		m.MoveWindowToPosition(0)
	case protocol.VerbMoveLast:
		m.MoveWindowToPosition(-1)
	case protocol.VerbMoveToPosition:
		m.MoveWindowToPosition(cmd.IntArg(0, 0))

	case protocol.VerbMoveMonitorLeft:
		m.MoveWindowToMonitor(-1)
	case protocol.VerbMoveMonitorRight:
		m.MoveWindowToMonitor(1)

	case protocol.VerbResizeInc:
		m.Resize(resizeStep)
	case protocol.VerbResizeDec:
		m.Resize(-resizeStep)
	case protocol.VerbMaximizeToggle:
		m.ToggleMaximize()
	case protocol.VerbPresetWidthToggle:
		m.TogglePresetWidth()

	case protocol.VerbCloseWindow:
		m.CloseWindow()
	case protocol.VerbOpen:
		m.Open(cmd.Args)

	case protocol.VerbExit:
		return m.Exit()
	case protocol.VerbRestartWM:
		m.restartRequested = true
		return m.Exit()

	default:
		return fmt.Errorf("unknown command %q", cmd.Verb)
	}
	return nil
}
