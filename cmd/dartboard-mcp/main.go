package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/dartboard-mcp/internal/board"
	"github.com/ironsheep/dartboard-mcp/internal/ocr"
	"github.com/ironsheep/dartboard-mcp/internal/server"
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
			fmt.Printf("dartboard-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  OCR:        %v\n", ocr.Available())
			return
		case "--help", "-h", "help":
			fmt.Println("dartboard-mcp - MCP server for dartboard calibration and scoring")
			fmt.Println()
			fmt.Println("Usage: dartboard-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  DARTBOARD_MCP_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println("  DARTBOARD_MCP_WIDTH=1280           Rectified image width")
			fmt.Println("  DARTBOARD_MCP_HEIGHT=720           Rectified image height")
			fmt.Println("  DARTBOARD_MCP_SECTOR_OFFSET=0      Rotate the sector layout (degrees, 9 = 20 at the top)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	geom, err := board.NewGeometry(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debug := os.Getenv("DARTBOARD_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Dartboard MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Render %dx%d, %.4f px/mm, sector offset %v°",
			geom.Width(), geom.Height(), geom.PixelsPerMM(), cfg.SectorOffsetDegrees)
	}

	srv := server.New(geom)
	srv.SetDebug(debug)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
