package main

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/dartboard-mcp/internal/board"
)

// configFromEnv applies DARTBOARD_MCP_* overrides to the default board
// configuration. getenv is os.Getenv outside tests.
func configFromEnv(getenv func(string) string) (board.Config, error) {
	cfg := board.DefaultConfig()

	if v := getenv("DARTBOARD_MCP_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("DARTBOARD_MCP_WIDTH: %w", err)
		}
		cfg.Render.Width = n
	}
	if v := getenv("DARTBOARD_MCP_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("DARTBOARD_MCP_HEIGHT: %w", err)
		}
		cfg.Render.Height = n
	}
	if v := getenv("DARTBOARD_MCP_SECTOR_OFFSET"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("DARTBOARD_MCP_SECTOR_OFFSET: %w", err)
		}
		cfg.SectorOffsetDegrees = f
	}

	return cfg, nil
}
