// Command winscrollwmctl talks to a running winscrollwmd daemon over
// its Unix socket: status/monitor queries, raw command-protocol verbs,
// and config reloads. Grounded on the reference CLI's per-subcommand
// flag.FlagSet dispatch style.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Glitch752/winscrollwm/internal/config"
	"github.com/Glitch752/winscrollwm/internal/ipc"
	"github.com/Glitch752/winscrollwm/internal/mcpserve"
	"github.com/Glitch752/winscrollwm/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "status":
		return runStatus(args[1:])
	case "monitors":
		return runMonitors(args[1:])
	case "send":
		return runSend(args[1:])
	case "reload":
		return runReload(args[1:])
	case "tui":
		return runTUI(args[1:])
	case "mcp":
		return runMCP(args[1:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(os.Stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winscrollwmctl <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            Show monitor/workspace snapshot")
	fmt.Fprintln(w, "  send <verb> [args]  Send a command-protocol line to the daemon")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its config file")
	fmt.Fprintln(w, "  tui                 Open the interactive world-state inspector")
	fmt.Fprintln(w, "  mcp                 Start the read-only MCP introspection server (stdio)")
}

func newClient() (*ipc.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return ipc.NewClient(cfg.SocketPath), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("running:        %v\n", status.Running)
	fmt.Printf("monitor_count:  %d\n", status.MonitorCount)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, mon := range data.Monitors {
		marker := " "
		if mon.Focused {
			marker = "*"
		}
		fmt.Printf("%s monitor %d  %dx%d @ (%d,%d)\n", marker, mon.Index, mon.Width, mon.Height, mon.Left, mon.Top)
		for _, ws := range mon.Workspaces {
			wsMarker := "   "
			if ws.Focused {
				wsMarker = " > "
			}
			fmt.Printf("%sworkspace %d  windows=%d  offset=%.2f\n", wsMarker, ws.ID, ws.WindowCount, ws.ScrollOffset)
		}
	}
	return 0
}

func runSend(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: winscrollwmctl send <verb> [args...]")
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.SendCommand(strings.Join(args, " ")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(cfg.SocketPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	server := mcpserve.New(cfg.SocketPath)
	if err := server.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
