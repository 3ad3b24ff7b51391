package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"
)

// ErrConfigInvalid marks configuration that could not be read or failed validation.
var ErrConfigInvalid = errors.New("invalid config")

// LoadInput holds the inputs for Load.
type LoadInput struct {
	Dir     string // --config flag value; empty means the default directory
	BaseURL string // --base-url flag value; empty means no override
	Debug   bool   // --debug
	Quiet   bool   // --quiet
}

// Load builds the configuration with the following precedence (highest wins):
//  1. Defaults
//  2. {dir}/config.json (JSONC)
//  3. Environment variables with the TASKBOARD_ prefix, including those
//     provided by ./.env and {dir}/.env
//  4. Flag overrides.
//
// timeout must be a duration string such as "5s"; bare numbers are rejected.
func Load(input LoadInput) (*Config, error) {
	cfg := New(input.Dir)

	if err := loadDotenv(cfg); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("history", cfg.History)
	v.SetDefault("history_file", cfg.HistoryFile)

	if cfg.HasConfigFile() {
		if err := readConfigFile(v, cfg.ConfigPath()); err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, cfg.ConfigPath())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch v.Get("timeout").(type) {
	case string, time.Duration:
	default:
		return nil, fmt.Errorf("%w: timeout must be a duration string such as \"5s\"", ErrConfigInvalid)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if input.BaseURL != "" {
		cfg.BaseURL = input.BaseURL
	}
	cfg.Debug = input.Debug
	cfg.Quiet = input.Quiet
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if cfg.HistoryFile != "" && !filepath.IsAbs(cfg.HistoryFile) {
		cfg.HistoryFile = filepath.Join(cfg.Dir, cfg.HistoryFile)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// readConfigFile feeds the JSONC settings file at path into v.
func readConfigFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(standardized)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return nil
}

// loadDotenv exports variables from ./.env and {dir}/.env.
// Variables already present in the environment are never overridden.
func loadDotenv(cfg *Config) error {
	for _, path := range []string{EnvFile, cfg.EnvPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}
		cfg.Sources = append(cfg.Sources, path)
	}
	return nil
}
