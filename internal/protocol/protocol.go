// Package protocol parses the line-oriented command verbs the daemon
// accepts from its command stream (an AHK-style hotkey relay process,
// the control CLI, or a test harness), one per line, UTF-8, newline
// terminated.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one parsed command line: a verb and its raw string
// arguments, not yet type-converted.
type Command struct {
	Verb string
	Args []string
}

// Parse splits a single command line into a Command. Leading/trailing
// whitespace is trimmed; fields are whitespace-separated. An empty or
// whitespace-only line parses to a zero Command with ok=false so the
// caller can silently skip it instead of erroring.
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Verb: fields[0], Args: fields[1:]}, true
}

// IntArg parses the argument at index i as a base-10 int, defaulting to
// def if the argument is absent or malformed.
func (c Command) IntArg(i int, def int) int {
	if i >= len(c.Args) {
		return def
	}
	v, err := strconv.Atoi(c.Args[i])
	if err != nil {
		return def
	}
	return v
}

// FloatArg parses the argument at index i as a float64, defaulting to
// def if the argument is absent or malformed.
func (c Command) FloatArg(i int, def float64) float64 {
	if i >= len(c.Args) {
		return def
	}
	v, err := strconv.ParseFloat(c.Args[i], 64)
	if err != nil {
		return def
	}
	return v
}

// String renders the command back to its wire form, for logging.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	return fmt.Sprintf("%s %s", c.Verb, strings.Join(c.Args, " "))
}

// Known verbs, per the command protocol's verb table. Verbs not in this
// set are rejected by the dispatcher with an unknown-command error.
const (
	VerbFocusLeft           = "focus_left"
	VerbFocusRight          = "focus_right"
	VerbFocusFirst          = "focus_first"
	VerbFocusLast           = "focus_last"
	VerbWorkspaceUp         = "workspace_up"
	VerbWorkspaceDown       = "workspace_down"
	VerbMonitorLeft         = "monitor_left"
	VerbMonitorRight        = "monitor_right"
	VerbMoveLeft            = "move_left"
	VerbMoveRight           = "move_right"
	VerbMoveUp              = "move_up"
	VerbMoveDown            = "move_down"
	VerbMoveFirst           = "move_first"
	VerbMoveLast            = "move_last"
	VerbMoveToPosition      = "move_to_position"
	VerbMoveMonitorLeft     = "move_monitor_left"
	VerbMoveMonitorRight    = "move_monitor_right"
	VerbResizeInc           = "resize_inc"
	VerbResizeDec           = "resize_dec"
	VerbMaximizeToggle      = "maximize_toggle"
	VerbPresetWidthToggle   = "preset_width_toggle"
	VerbCloseWindow         = "close_window"
	VerbOpen                = "open"
	VerbExit                = "exit"
	VerbRestartWM           = "restart_wm"
)
