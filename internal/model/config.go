package model

import "time"

// Config is the full runtime configuration, assembled from defaults, the
// config file (~/.claritygate/config.yaml), CLARITYGATE_* environment
// variables, and CLI flags, in increasing priority.
type Config struct {
	Scan         ScanConfig      `yaml:"scan" mapstructure:"scan"`
	Cache        CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyCfg  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig    `yaml:"output" mapstructure:"output"`
	LLM          LLMConfig       `yaml:"llm" mapstructure:"llm"`
}

// ScanConfig controls document reading and claim extraction.
type ScanConfig struct {
	MaxBytes     int64  `yaml:"max_bytes" mapstructure:"max_bytes"`         // Max document size to read
	DocumentGlob string `yaml:"document_glob" mapstructure:"document_glob"` // Pattern for directory walks
}

// CacheConfig controls the batch verification cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir             string        `yaml:"dir" mapstructure:"dir"` // Disk tier location ("" = memory only)
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyCfg controls worker counts for batch operations.
type ConcurrencyCfg struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles batch file processing (useful on network
// filesystems).
type RateLimitConfig struct {
	FilesPerSecond float64 `yaml:"files_per_second" mapstructure:"files_per_second"` // 0 = unlimited
	BurstSize      int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" disables
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxBytes:     10_000_000,
			DocumentGlob: "*.cgd.md",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyCfg{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			FilesPerSecond: 0,
			BurstSize:      16,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
