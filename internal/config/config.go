package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Configuration holds the ambient tunables the mount's own infrastructure
// needs: cache capacities, the metrics/health endpoint, and log verbosity.
// Content roots and the work directory are never part of it — those are
// positional CLI arguments, validated and passed straight to
// contentfs.NewOperationsWithCacheSizes, and are never persisted to a file.
type Configuration struct {
	Global GlobalConfig `yaml:"global"`
	Cache  CacheConfig  `yaml:"cache"`
}

// GlobalConfig represents process-wide settings.
type GlobalConfig struct {
	LogLevel    string `yaml:"log_level"`
	MetricsPort int    `yaml:"metrics_port"`
	MetricsPath string `yaml:"metrics_path"`
}

// CacheConfig sizes the bounded in-memory caches internal/contentfs keeps:
// the archive cache (parsed SARC archives) and the content device's
// path-resolution memoization tables.
type CacheConfig struct {
	ArchiveCacheSize int `yaml:"archive_cache_size"`
	PathCacheSize    int `yaml:"path_cache_size"`
}

// NewDefault returns a configuration with sensible defaults, matching what
// the engine already falls back to when run without a config file at all.
func NewDefault() *Configuration {
	return &Configuration{
		Global: GlobalConfig{
			LogLevel:    "INFO",
			MetricsPort: 9293,
			MetricsPath: "/metrics",
		},
		Cache: CacheConfig{
			ArchiveCacheSize: 64,
			PathCacheSize:    1 << 15,
		},
	}
}

// LoadFromFile loads configuration from a YAML file, applied over
// NewDefault's values.
func (c *Configuration) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", filename, err)
	}
	return nil
}

// LoadFromEnv overlays BOTWFS_-prefixed environment variables.
func (c *Configuration) LoadFromEnv() {
	if val := os.Getenv("BOTWFS_LOG_LEVEL"); val != "" {
		c.Global.LogLevel = val
	}
	if val := os.Getenv("BOTWFS_METRICS_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Global.MetricsPort = port
		}
	}
	if val := os.Getenv("BOTWFS_ARCHIVE_CACHE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Cache.ArchiveCacheSize = n
		}
	}
	if val := os.Getenv("BOTWFS_PATH_CACHE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Cache.PathCacheSize = n
		}
	}
}

// Validate rejects a configuration the engine could not run with.
func (c *Configuration) Validate() error {
	if c.Cache.ArchiveCacheSize <= 0 {
		return fmt.Errorf("config: archive_cache_size must be greater than 0")
	}
	if c.Cache.PathCacheSize <= 0 {
		return fmt.Errorf("config: path_cache_size must be greater than 0")
	}
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for _, level := range validLogLevels {
		if c.Global.LogLevel == level {
			return nil
		}
	}
	return fmt.Errorf("config: invalid log_level %q (must be one of: %s)",
		c.Global.LogLevel, strings.Join(validLogLevels, ", "))
}
