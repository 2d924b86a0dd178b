// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable of the server.
type Config struct {
	LogLevel    string
	ColorFormat string
	FrameRate   float64 // Hz, 0 = draw on request only
	NotifyDelay time.Duration
	Clipboard   string // system, memory or off
	FontSize    float64
	LineColor   string
}

// Load reads the CROSSHAIR_MCP_* environment variables, falling back to
// defaults for unset or unparsable values.
func Load() *Config {
	return &Config{
		LogLevel:    strings.ToLower(getEnv("CROSSHAIR_MCP_LOG_LEVEL", "info")),
		ColorFormat: getEnv("CROSSHAIR_MCP_COLOR_FORMAT", "hex"),
		FrameRate:   getEnvFloat("CROSSHAIR_MCP_FRAME_RATE", 30),
		NotifyDelay: time.Duration(getEnvInt("CROSSHAIR_MCP_NOTIFY_MS", 1000)) * time.Millisecond,
		Clipboard:   strings.ToLower(getEnv("CROSSHAIR_MCP_CLIPBOARD", "system")),
		FontSize:    getEnvFloat("CROSSHAIR_MCP_FONT_SIZE", 16),
		LineColor:   getEnv("CROSSHAIR_MCP_LINE_COLOR", "#000000"),
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// FrameInterval converts FrameRate to a ticker interval. Zero means no
// ticker.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.FrameRate)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
