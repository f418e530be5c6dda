package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full process configuration. Defaults are overridden by
// the config file, then DUCKLING_* environment variables, then flags.
type Config struct {
	Engine      EngineConfig      `yaml:"engine" json:"engine"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Server      ServerConfig      `yaml:"server" json:"server"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// EngineConfig controls parsing itself.
type EngineConfig struct {
	Locale     string   `yaml:"locale" json:"locale"`           // "en" or "en_US"
	MaxPasses  int      `yaml:"max_passes" json:"max_passes"`   // Rule application bound per layer
	WithLatent bool     `yaml:"with_latent" json:"with_latent"` // Keep latent-only candidates
	Dims       []string `yaml:"dims" json:"dims"`               // Default target dimensions, empty = all
}

// CacheConfig controls the parse result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	RatePerSecond   float64       `yaml:"rate_per_second" json:"rate_per_second"` // Per-client request rate
	RateBurst       int           `yaml:"rate_burst" json:"rate_burst"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Pretty  bool `yaml:"pretty" json:"pretty"`
	Verbose bool `yaml:"verbose" json:"verbose"`
	Trace   bool `yaml:"trace" json:"trace"` // Print derivation trees to stderr
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Engine: EngineConfig{
			Locale:    "en",
			MaxPasses: DefaultMaxPasses,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       filepath.Join(home, ".duckling", "cache"),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Server: ServerConfig{
			Addr:            ":8000",
			RatePerSecond:   20,
			RateBurst:       40,
			MaxBodyBytes:    1 << 20,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Output: OutputConfig{},
	}
}
