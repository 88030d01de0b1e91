// Package config loads the persisted show settings from a JSON file and the
// environment.
package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultFile is looked up in the working directory.
	DefaultFile = "config.json"

	// DefaultPort is the Launchkey 25 MK2 pad output name. Used as the last
	// resort when nothing is configured and detection finds no device.
	DefaultPort = "Launchkey 25 MK2 MIDI 2"
)

// Config holds the operator-tunable settings. Zero values mean "not set":
// an empty PortName asks the caller to fall back to detection, zero timings
// fall back to the show defaults.
type Config struct {
	PortName        string `json:"MIDI_PORT_NAME"`
	TickIntervalMS  int    `json:"TICK_INTERVAL_MS"`
	LightDurationMS int    `json:"LIGHT_DURATION_MS"`
}

// Load reads the file at path and applies environment overrides on top. It
// never fails: a missing, unreadable or malformed file is logged and leaves
// the zero Config standing.
func Load(path string, logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Info("config: file not found, using defaults", "path", path)
	case err != nil:
		logger.Warn("config: file unreadable, using defaults", "path", path, "err", err)
	default:
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			logger.Warn("config: invalid JSON, using defaults", "path", path, "err", jsonErr)
			*cfg = Config{}
		} else {
			logger.Info("config: loaded", "path", path, "port", cfg.PortName)
		}
	}

	// Load .env file if it exists (optional)
	_ = godotenv.Load()
	cfg.PortName = getEnv("MIDI_PORT_NAME", cfg.PortName)
	cfg.TickIntervalMS = getEnvAsInt("TICK_INTERVAL_MS", cfg.TickIntervalMS)
	cfg.LightDurationMS = getEnvAsInt("LIGHT_DURATION_MS", cfg.LightDurationMS)
	return cfg
}

// TickInterval returns the configured tick as a duration, 0 if unset.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// LightDuration returns the configured lit time as a duration, 0 if unset.
func (c *Config) LightDuration() time.Duration {
	return time.Duration(c.LightDurationMS) * time.Millisecond
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
