package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/crosshair-mcp/internal/config"
	"github.com/ironsheep/crosshair-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("crosshair-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("crosshair-mcp - MCP server for measuring same-color runs in images")
			fmt.Println()
			fmt.Println("Usage: crosshair-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CROSSHAIR_MCP_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println("  CROSSHAIR_MCP_COLOR_FORMAT=hex|rgba  Color readout format (default hex)")
			fmt.Println("  CROSSHAIR_MCP_FRAME_RATE=30          Frames per second, 0 = on request only")
			fmt.Println("  CROSSHAIR_MCP_NOTIFY_MS=1000         Notification lifetime in milliseconds")
			fmt.Println("  CROSSHAIR_MCP_CLIPBOARD=system       Clipboard: system, memory or off")
			fmt.Println("  CROSSHAIR_MCP_FONT_SIZE=16           Label font size in pixels")
			fmt.Println("  CROSSHAIR_MCP_LINE_COLOR=#000000     Crosshair line color")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("Crosshair MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
