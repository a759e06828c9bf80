// Package config loads the engine configuration from an optional file, a
// .env file and CLASSPATCH_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"classpatch/internal/gate"
	"classpatch/internal/mapping"
)

// Environment variables read by Load.
const (
	EnvServices   = "CLASSPATCH_SERVICES"
	EnvMappings   = "CLASSPATCH_MAPPINGS"
	EnvObfuscated = "CLASSPATCH_OBFUSCATED"
	EnvLogLevel   = "CLASSPATCH_LOG_LEVEL"
	EnvWorkers    = "CLASSPATCH_WORKERS"
)

// ErrInvalid is returned when a loaded configuration is unusable.
var ErrInvalid = errors.New("invalid config")

// Config is the engine configuration.
type Config struct {
	// Services lists the capability names present in the host.
	Services []string `yaml:"services" toml:"services"`

	// Mappings is the path of the remapping table.
	Mappings string `yaml:"mappings" toml:"mappings"`

	// Obfuscated selects the runtime names of the mapping table. When false
	// every name maps to itself.
	Obfuscated bool `yaml:"obfuscated" toml:"obfuscated"`

	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Workers   int    `yaml:"workers" toml:"workers"`
	Rollback  bool   `yaml:"rollback" toml:"rollback"`
	CacheSize int    `yaml:"cache_size" toml:"cache_size"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LogLevel:  "info",
		Workers:   4,
		Rollback:  true,
		CacheSize: 256,
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded first without overriding the environment; then the file at path,
// when path is not empty, is decoded over the defaults; then environment
// variables are applied.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}

		if cfg.Mappings != "" && !filepath.IsAbs(cfg.Mappings) {
			cfg.Mappings = filepath.Join(filepath.Dir(path), cfg.Mappings)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if mapping.FormatForPath(path) == mapping.FormatTOML {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config TOML %s: %w", path, err)
		}

		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup(EnvServices); ok {
		cfg.Services = splitList(v)
	}

	if v, ok := lookup(EnvMappings); ok {
		cfg.Mappings = v
	}

	if v, ok := lookup(EnvObfuscated); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvObfuscated, v, err)
		}

		cfg.Obfuscated = b
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvWorkers, v, err)
		}

		cfg.Workers = n
	}

	return nil
}

// lookup returns a trimmed, non-empty environment value.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// Validate checks the value ranges of the configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size must not be negative, got %d", ErrInvalid, c.CacheSize)
	}

	if c.Obfuscated && c.Mappings == "" {
		return fmt.Errorf("%w: obfuscated requires a mappings file", ErrInvalid)
	}

	return nil
}

// ServiceSet returns the configured services as a gate set.
func (c *Config) ServiceSet() gate.Services {
	return gate.NewServices(c.Services...)
}

// Table returns the remapping table to resolve descriptors through: the
// mappings file when running obfuscated, the identity table otherwise.
func (c *Config) Table() (*mapping.Table, error) {
	if !c.Obfuscated {
		return mapping.Identity(), nil
	}

	f, err := mapping.LoadFile(c.Mappings)
	if err != nil {
		return nil, err
	}

	if diags := mapping.Validate(f); diags.HasErrors() {
		return nil, fmt.Errorf("mapping file %s: %w", c.Mappings, diags.Error())
	}

	return f.Table(), nil
}

// Resolver returns a descriptor resolver over Table.
func (c *Config) Resolver() (*mapping.Resolver, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}

	return mapping.NewResolver(table, c.CacheSize)
}
