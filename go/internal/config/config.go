package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default origin the auction server listens on during local development.
const defaultOrigin = "localhost:5000"

// Config holds everything the admin panel needs to reach the auction server.
// Values come from an optional YAML file, overridden by environment variables.
type Config struct {
	// APIBaseURL is the base of the REST surface, e.g. http://localhost:5000/api.
	APIBaseURL string `yaml:"api_base_url" env:"ADMIN_API_URL"`
	// SocketURL is the websocket event channel, e.g. ws://localhost:5000/ws.
	// Independently overridable from APIBaseURL.
	SocketURL string `yaml:"socket_url" env:"ADMIN_SOCKET_URL"`

	// AdminPassword, when set, is used for a non-interactive login on startup.
	AdminPassword string `yaml:"-" env:"ADMIN_PASSWORD"`

	// SessionFile overrides where the replayable admin session is persisted.
	// Empty means the per-user default location.
	SessionFile string `yaml:"session_file" env:"ADMIN_SESSION_FILE"`

	ReconnectDelay    time.Duration `yaml:"reconnect_delay" env:"ADMIN_RECONNECT_DELAY"`
	ReconnectAttempts int           `yaml:"reconnect_attempts" env:"ADMIN_RECONNECT_ATTEMPTS"`
	ResyncInterval    time.Duration `yaml:"resync_interval" env:"ADMIN_RESYNC_INTERVAL"`
	UndoRefetchDelay  time.Duration `yaml:"undo_refetch_delay" env:"ADMIN_UNDO_REFETCH_DELAY"`
}

// Default returns the canonical local-development configuration.
func Default() Config {
	return Config{
		APIBaseURL:        "http://" + defaultOrigin + "/api",
		SocketURL:         "ws://" + defaultOrigin + "/ws",
		ReconnectDelay:    time.Second,
		ReconnectAttempts: 10,
		ResyncInterval:    10 * time.Second,
		UndoRefetchDelay:  500 * time.Millisecond,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if path is non-empty), then environment variable overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.SocketURL == "" {
		return fmt.Errorf("socket_url must not be empty")
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect_delay must be positive")
	}
	if c.ReconnectAttempts <= 0 {
		return fmt.Errorf("reconnect_attempts must be positive")
	}
	if c.ResyncInterval <= 0 {
		return fmt.Errorf("resync_interval must be positive")
	}
	return nil
}
