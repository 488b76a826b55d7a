// Package config loads the TOML configuration file and applies defaults.
// A missing file is created with defaults so a fresh checkout works without
// setup. Secrets are never stored in the file; they come from environment
// variables (LOCAL_API_KEY, INTERNET_API_KEY, BOARD_IP, WEATHER_API_KEY).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultPath = "data/config.toml"

type Config struct {
	LogPath         string `toml:"log_path"`
	LogLevel        string `toml:"log_level"`
	ConsoleLogLevel string `toml:"console_log_level"`

	PlaylistPath string `toml:"playlist_path"`
	SchedulePath string `toml:"schedule_path"`
	StatePath    string `toml:"state_path"`
	LockPath     string `toml:"lock_path"`
	WordsPath    string `toml:"words_path"`

	Transport       string `toml:"transport"`
	BoardIP         string `toml:"board_ip"`
	WeatherLocation string `toml:"weather_location"`

	// CheckIntervalMs is the control loop's poll quantum, not the display
	// interval; that lives in the playlist.
	CheckIntervalMs int `toml:"check_interval_ms"`
}

func Default() Config {
	return Config{
		LogPath:         "data/splitflap.log",
		LogLevel:        "info",
		ConsoleLogLevel: "warn",
		PlaylistPath:    "data/playlist.json",
		SchedulePath:    "data/schedule.json",
		StatePath:       "data/runtime_state.json",
		LockPath:        "data/splitflap.lock",
		WordsPath:       "data/words.txt",
		Transport:       "local",
		WeatherLocation: "austin",
		CheckIntervalMs: 100,
	}
}

// Load reads the config at path, creating it with defaults when missing.
// A malformed file is an error; missing fields fall back to defaults.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if werr := writeDefault(path, cfg); werr != nil {
				return Config{}, fmt.Errorf("create default config: %w", werr)
			}
			return cfg, nil
		}
		return Config{}, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.LogPath) == "" {
		cfg.LogPath = def.LogPath
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(cfg.ConsoleLogLevel) == "" {
		cfg.ConsoleLogLevel = def.ConsoleLogLevel
	}
	if strings.TrimSpace(cfg.PlaylistPath) == "" {
		cfg.PlaylistPath = def.PlaylistPath
	}
	if strings.TrimSpace(cfg.SchedulePath) == "" {
		cfg.SchedulePath = def.SchedulePath
	}
	if strings.TrimSpace(cfg.StatePath) == "" {
		cfg.StatePath = def.StatePath
	}
	if strings.TrimSpace(cfg.LockPath) == "" {
		cfg.LockPath = def.LockPath
	}
	if strings.TrimSpace(cfg.WordsPath) == "" {
		cfg.WordsPath = def.WordsPath
	}
	if strings.TrimSpace(cfg.Transport) == "" {
		cfg.Transport = def.Transport
	}
	if strings.TrimSpace(cfg.WeatherLocation) == "" {
		cfg.WeatherLocation = def.WeatherLocation
	}
	if cfg.CheckIntervalMs <= 0 {
		cfg.CheckIntervalMs = def.CheckIntervalMs
	}
}

// CheckInterval returns the loop quantum as a duration.
func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMs) * time.Millisecond
}

func writeDefault(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MissingError reports a required setting that is absent from both the
// environment and the config file.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required setting: %s", e.Key)
}

// BoardHeader implements the on-board error contract.
func (e *MissingError) BoardHeader() string { return "config error" }

// BoardText implements the on-board error contract.
func (e *MissingError) BoardText() string {
	return "config: " + strings.ToLower(e.Key) + " missing"
}
