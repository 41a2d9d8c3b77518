package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything shelf resolves once at startup.
type Config struct {
	Production     bool
	LocalURL       string
	ProductionURL  string
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/shelf/config.toml"
	defaultEnvFile        = ".env"
	defaultLocalURL       = "http://localhost:5000/api"
	defaultProductionURL  = "https://your-api-url.herokuapp.com/api"
	defaultRequestTimeout = 10 * time.Second
	defaultLogFile        = "~/.local/state/shelf/shelf.log"
	defaultLogLevel       = "info"
)

// Environment variables consulted by Load.
const (
	EnvProduction    = "SHELF_PRODUCTION"
	EnvLocalURL      = "SHELF_LOCAL_URL"
	EnvProductionURL = "SHELF_PRODUCTION_URL"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LocalURL:       defaultLocalURL,
		ProductionURL:  defaultProductionURL,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// LoadEnv loads a .env file into the process environment without
// overriding variables that are already set. An empty path means .env in
// the working directory, which may be absent.
func LoadEnv(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load parses the config file, falling back to defaults when it is
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := cfg.decode(file); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Production     bool   `toml:"production"`
		LocalURL       string `toml:"local_url"`
		ProductionURL  string `toml:"production_url"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.Production = raw.Production
	if v := strings.TrimSpace(raw.LocalURL); v != "" {
		c.LocalURL = v
	}
	if v := strings.TrimSpace(raw.ProductionURL); v != "" {
		c.ProductionURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("parse config: request_timeout must be positive")
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("parse config: log_file: %w", err)
		}
		c.LogFile = expanded
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		if !logLevels[v] {
			return fmt.Errorf("parse config: unknown log_level %q", raw.LogLevel)
		}
		c.LogLevel = v
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvProduction); ok && truthy(v) {
		c.Production = true
	}
	if v, ok := lookup(EnvLocalURL); ok && strings.TrimSpace(v) != "" {
		c.LocalURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvProductionURL); ok && strings.TrimSpace(v) != "" {
		c.ProductionURL = strings.TrimSpace(v)
	}
}

// BaseURL returns the API root selected by the production toggle.
func (c Config) BaseURL() string {
	if c.Production {
		return c.ProductionURL
	}
	return c.LocalURL
}

// Environment names the selected backend for display.
func (c Config) Environment() string {
	if c.Production {
		return "production"
	}
	return "local"
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false":
		return false
	}
	return true
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
