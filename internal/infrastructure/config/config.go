// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for rolodex configuration.
	DefaultConfigDir = ".rolodex"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite file name inside DefaultConfigDir.
	DefaultDatabaseFile = "rolodex.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM    LLMConfig    `yaml:"llm,omitempty"`
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Query  QueryConfig  `yaml:"query,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// LLMConfig holds configuration for the answering provider.
type LLMConfig struct {
	Provider string        `yaml:"provider,omitempty"`
	Model    string        `yaml:"model,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`

	// RatePerSecond and Burst pace outgoing calls; zero disables pacing.
	RatePerSecond float64 `yaml:"rate_per_second,omitempty"`
	Burst         int     `yaml:"burst,omitempty"`

	// MaxFailures consecutive failures open the circuit for Cooldown.
	MaxFailures uint32        `yaml:"max_failures,omitempty"`
	Cooldown    time.Duration `yaml:"cooldown,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite graph store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database, or ":memory:".
	// Relative paths are resolved against the project directory by Load.
	Path string `yaml:"path,omitempty"`
}

// QueryConfig holds configuration for the question-answering pipeline.
type QueryConfig struct {
	// Timeout bounds the answering call only.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Env is "development" or "production".
	Env   string `yaml:"env,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			Timeout:       30 * time.Second,
			RatePerSecond: 1,
			Burst:         3,
			MaxFailures:   5,
			Cooldown:      30 * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
		},
		Query: QueryConfig{
			Timeout: 45 * time.Second,
		},
		Log: LogConfig{
			Env:   "production",
			Level: "info",
		},
	}
}

// Load loads configuration from the .rolodex directory in the given path.
// A .env file in the working directory is loaded first when present.
func Load(basePath string) (*Config, error) {
	_ = godotenv.Load()

	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'rolodex init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.resolvePaths(basePath)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = url
	}
	if level := os.Getenv("ROLODEX_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if env := os.Getenv("ROLODEX_ENV"); env != "" {
		c.Log.Env = env
	}
}

func (c *Config) resolvePaths(basePath string) {
	if c.SQLite.Path == "" {
		c.SQLite.Path = DatabasePath(basePath)
		return
	}
	if c.SQLite.Path != ":memory:" && !filepath.IsAbs(c.SQLite.Path) {
		c.SQLite.Path = filepath.Join(basePath, c.SQLite.Path)
	}
}

// ConfigDir returns the path to the .rolodex config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// DatabasePath returns the default SQLite database path.
func DatabasePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
}
