package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTick          = "@every 60s"
	DefaultUpcomingLimit = 5
	DefaultListen        = "127.0.0.1:8080"
	DefaultLogLevel      = "info"
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the XDG data default.
	DBPath string `yaml:"db_path" json:"db_path"`

	// Tick is the cron spec driving the status engine and reminders,
	// e.g. "@every 60s" or "* * * * *".
	Tick string `yaml:"tick" json:"tick"`

	// UpcomingLimit caps the upcoming reminder list.
	UpcomingLimit int `yaml:"upcoming_limit" json:"upcoming_limit"`

	// Listen is the HTTP listen address for serve.
	Listen string `yaml:"listen" json:"listen"`

	// ExportDir is where export writes report files.
	ExportDir string `yaml:"export_dir" json:"export_dir"`

	// PrintCommand is the argv the print command pipes the report into.
	PrintCommand []string `yaml:"print_command" json:"print_command"`

	// LogLevel is one of debug, info, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBPath:        "~/.local/share/grafik/schedule.db",
		Tick:          DefaultTick,
		UpcomingLimit: DefaultUpcomingLimit,
		Listen:        DefaultListen,
		ExportDir:     ".",
		PrintCommand:  []string{"lp"},
		LogLevel:      DefaultLogLevel,
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Tick == "" {
		c.Tick = DefaultTick
	}
	if c.UpcomingLimit <= 0 {
		c.UpcomingLimit = DefaultUpcomingLimit
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if len(c.PrintCommand) == 0 {
		c.PrintCommand = []string{"lp"}
	}
	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		c.LogLevel = DefaultLogLevel
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/grafik/config.yaml, falling back to
// ~/.config/grafik/config.yaml
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "grafik", "config.yaml"), nil
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults (0600) and the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename, leaving the
// final file with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".grafik-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save
func (c *Config) Save(path string) error {
	return Save(path, c)
}
