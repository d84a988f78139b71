package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lkraemer/flowgraph/pkg/transform"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the flowgraph configuration file, in TOML. All fields are
// optional; zero values fall back to built-in defaults. Flags override file
// values.
//
// Example:
//
//	[tools]
//	graph2json = "/opt/flowgraph/bin/graph2json"
//	graph2dot = "/opt/flowgraph/bin/graph2dot"
//	timeout_seconds = 120
//
//	[cache]
//	backend = "file"     # file, redis or none
//	ttl_hours = 168
//
//	[convert]
//	jobs = 8
//	chunk = 64
type Config struct {
	Tools   ToolsConfig   `toml:"tools"`
	Cache   CacheConfig   `toml:"cache"`
	Convert ConvertConfig `toml:"convert"`
}

// ToolsConfig locates the external transform tools.
type ToolsConfig struct {
	Graph2JSON     string `toml:"graph2json"`
	Graph2DOT      string `toml:"graph2dot"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ConvertConfig holds defaults for the convert command.
type ConvertConfig struct {
	Jobs  int `toml:"jobs"`
	Chunk int `toml:"chunk"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit path is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %q requires redis_addr", CacheBackendRedis)
	}
	if c.Tools.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}

// transformConfig builds the transform.Config from file values, resolving
// tool paths relative to the config once at startup.
func (c *CLI) transformConfig(cfg Config) transform.Config {
	tc := transform.Config{
		Graph2JSON: cfg.Tools.Graph2JSON,
		Graph2DOT:  cfg.Tools.Graph2DOT,
		Logger:     c.Logger,
	}
	if cfg.Tools.TimeoutSeconds > 0 {
		tc.Timeout = time.Duration(cfg.Tools.TimeoutSeconds) * time.Second
	}
	return tc
}

// cacheTTL returns the configured artifact TTL.
func cacheTTL(cfg Config) time.Duration {
	if cfg.Cache.TTLHours > 0 {
		return time.Duration(cfg.Cache.TTLHours) * time.Hour
	}
	return 0
}

// defaultConfigPath returns the config location using XDG standard
// (~/.config/flowgraph/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
