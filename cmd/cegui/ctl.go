package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/1broseidon/cegui/internal/ipc"
	"github.com/1broseidon/cegui/internal/runtimepath"
)

func printCtlUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cegui ctl [--instance NAME] [--json] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Drive a preview started with --control.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status                    Show display, root and focus")
	fmt.Fprintln(w, "  windows                   List the window tree")
	fmt.Fprintln(w, "  click PATH                Click a window")
	fmt.Fprintln(w, "  navigate DIRECTION        GoUp, GoDown, GoLeft, GoRight, GoToNext, GoToPrevious, Confirm")
	fmt.Fprintln(w, "  set PATH NAME VALUE       Set a window property")
	fmt.Fprintln(w, "  layout [FILE]             Load a layout (default: the scheme's first)")
	fmt.Fprintln(w, "  screenshot FILE           Write the last frame as PNG")
}

func runCtl(args []string) int {
	fs := flag.NewFlagSet("ctl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	instance := fs.String("instance", "", "Control socket instance name (default: preview)")
	jsonOut := fs.Bool("json", false, "Print responses as JSON")
	fs.Usage = func() { printCtlUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		printCtlUsage(os.Stderr)
		return 2
	}

	sock, err := runtimepath.SocketPath(*instance)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return ctlCommand(ipc.NewClient(sock), fs.Args(), *jsonOut)
}

func ctlCommand(c *ipc.Client, args []string, jsonOut bool) int {
	want := func(n int) bool {
		if len(args)-1 != n {
			fmt.Fprintf(os.Stderr, "%s takes %d argument(s)\n\n", args[0], n)
			printCtlUsage(os.Stderr)
			return false
		}
		return true
	}

	var result any
	var err error
	switch args[0] {
	case "status":
		if !want(0) {
			return 2
		}
		result, err = c.GetStatus()
	case "windows":
		if !want(0) {
			return 2
		}
		result, err = c.ListWindows()
	case "click":
		if !want(1) {
			return 2
		}
		result, err = c.Click(args[1])
	case "navigate":
		if !want(1) {
			return 2
		}
		result, err = c.Navigate(args[1])
	case "set":
		if !want(3) {
			return 2
		}
		result, err = c.SetProperty(args[1], args[2], args[3])
	case "layout":
		file := ""
		if len(args) > 2 {
			return ctlArgError(args[0])
		}
		if len(args) == 2 {
			file = args[1]
		}
		result, err = c.LoadLayout(file)
	case "screenshot":
		if !want(1) {
			return 2
		}
		file, absErr := filepath.Abs(args[1])
		if absErr != nil {
			fmt.Fprintln(os.Stderr, absErr)
			return 1
		}
		err = c.Screenshot(file)
		result = ipc.FilePayload{File: file}
	default:
		fmt.Fprintf(os.Stderr, "Unknown ctl command: %s\n\n", args[0])
		printCtlUsage(os.Stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printCtlResult(stdout, result)
	return 0
}

func ctlArgError(cmd string) int {
	fmt.Fprintf(os.Stderr, "too many arguments for %s\n\n", cmd)
	printCtlUsage(os.Stderr)
	return 2
}

func printCtlResult(w io.Writer, result any) {
	switch r := result.(type) {
	case *ipc.StatusData:
		fmt.Fprintf(w, "display:    %s\n", r.Display)
		fmt.Fprintf(w, "root:       %s\n", r.Root)
		if r.Focused != "" {
			fmt.Fprintf(w, "focused:    %s\n", r.Focused)
		}
		fmt.Fprintf(w, "windows:    %d\n", r.WindowCount)
		fmt.Fprintf(w, "animations: %d\n", r.Animations)
		fmt.Fprintf(w, "uptime:     %ds\n", r.UptimeSeconds)
	case *ipc.WindowsData:
		for _, win := range r.Windows {
			marker := " "
			if win.Focused {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %-40s %-24s %s\n", marker, win.Path, win.Type, win.Rect)
		}
	case *ipc.ResultData:
		switch {
		case r.Value != "":
			fmt.Fprintf(w, "value: %s\n", r.Value)
		case r.Focused != "":
			fmt.Fprintf(w, "handled: %v (focused %s)\n", r.Handled, r.Focused)
		default:
			fmt.Fprintf(w, "handled: %v\n", r.Handled)
		}
	case ipc.FilePayload:
		fmt.Fprintf(w, "wrote %s\n", r.File)
	}
}
