package main

import (
	"fmt"
	"io"
	"os"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "render":
		os.Exit(runRender(os.Args[2:]))
	case "inspect":
		os.Exit(runInspect(os.Args[2:]))
	case "eval":
		os.Exit(runEval(os.Args[2:]))
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "ctl":
		os.Exit(runCtl(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "version":
		fmt.Fprintf(stdout, "cegui %s\n", Version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cegui <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render              Render a layout to a PNG file")
	fmt.Fprintln(w, "  inspect             Print the window tree of a layout")
	fmt.Fprintln(w, "  eval                Evaluate a dimension expression against a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  preview             Open an X11 preview window")
	fmt.Fprintln(w, "  tui                 Preview a layout in the terminal")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  ctl                 Control a preview started with --control")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config path         Print the default config file path")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print the version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'cegui <command> --help' for command-specific options.")
}
