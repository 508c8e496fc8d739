package config

import (
	"os"
	"strconv"
	"time"

	"forest/meta"
)

// Config holds runtime settings loaded from environment variables.
type Config struct {
	FirstBudget time.Duration
	TurnBudget  time.Duration
	Width       int
	Selection   string
	Seed        uint64
	Agent       string
	LogLevel    string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		FirstBudget: durationOrDefault("FOREST_FIRST_BUDGET", meta.FIRST_TURN_BUDGET),
		TurnBudget:  durationOrDefault("FOREST_TURN_BUDGET", meta.TURN_BUDGET),
		Width:       intOrDefault("FOREST_WIDTH", meta.WIDTH),
		Selection:   envOrDefault("FOREST_SELECTION", "mean"),
		Seed:        uint64(intOrDefault("FOREST_SEED", 1)),
		Agent:       envOrDefault("FOREST_AGENT", "mcts"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intOrDefault ignores values that are not positive integers.
func intOrDefault(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// durationOrDefault accepts Go durations ("80ms") or plain milliseconds.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
