package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/1broseidon/cegui/internal/mcp"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cegui mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'cegui mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if isHelpArg(args) {
		fmt.Fprintln(os.Stdout, "Usage: cegui mcp serve [--layout FILE] [--size WxH]")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Designed to be invoked by MCP clients,")
		fmt.Fprintln(os.Stdout, "which can then inspect the window tree, edit properties, inject input")
		fmt.Fprintln(os.Stdout, "and render frames.")
		return 0
	}

	fs := newFlagSet("serve")
	var sf sessionFlags
	sf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s, logger, err := sf.open()
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	defer s.Close()

	server := mcp.NewServer(s, logger.With("component", "mcp"))

	ctx, cancel := signalContext()
	defer cancel()
	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
