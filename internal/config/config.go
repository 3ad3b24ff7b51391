// Package config handles the XDG configuration directory and the layered
// settings of the task client.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the optional JSONC settings file inside the config directory.
	ConfigFile = "config.json"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// HistoryFile is the default shell history filename.
	HistoryFile = "history"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TASKBOARD"

	// DefaultBaseURL is the task service root used when nothing else is configured.
	DefaultBaseURL = "http://localhost:9000"

	// DefaultTimeout bounds every call to the task service.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is the diagnostic log level.
	DefaultLogLevel = "info"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// BaseURL is the root of the task service; tasks live under BaseURL/todos.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Timeout bounds each request to the task service.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// LogLevel is one of debug, info, warn (or warning), error. Unknown names
	// are reported by the logger, which falls back to info.
	LogLevel string `mapstructure:"log_level"`

	// History enables persistent shell history.
	History bool `mapstructure:"history"`

	// HistoryFile is where shell history is kept.
	HistoryFile string `mapstructure:"history_file"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	// Sources lists the files that contributed settings, for diagnostics.
	Sources []string `mapstructure:"-"`
}

// New creates a Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:         dir,
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		LogLevel:    DefaultLogLevel,
		History:     true,
		HistoryFile: filepath.Join(dir, HistoryFile),
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnvPath returns the path to the dotenv file in the config directory.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HistoryInDir reports whether the history file lives inside the config directory.
func (c *Config) HistoryInDir() bool {
	rel, err := filepath.Rel(c.Dir, c.HistoryFile)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// HasConfigFile checks if the settings file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}
