// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
)

// Defaults
const (
	DefaultStorePath = ".resume-builder"
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// Config is loaded from a JSON or YAML file and completed from the environment.
// All fields are optional; missing values use defaults.
type Config struct {
	// Document storage
	Store       string `json:"store,omitempty" yaml:"store,omitempty"`               // file, memory, postgres or redis
	StorePath   string `json:"store_path,omitempty" yaml:"store_path,omitempty"`     // directory for the file backend
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`       // Redis connection URL
	KeyPrefix   string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`     // namespace for shared backends

	// AI assist
	APIKey string            `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key
	Models map[string]string `json:"models,omitempty" yaml:"models,omitempty"`   // tier -> model name overrides
	Tiers  map[string]string `json:"tiers,omitempty" yaml:"tiers,omitempty"`     // operation -> tier overrides

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Contact form
	ContactEndpoint string `json:"contact_endpoint,omitempty" yaml:"contact_endpoint,omitempty"`

	// Export
	ExportDir string      `json:"export_dir,omitempty" yaml:"export_dir,omitempty"`
	Minio     MinioConfig `json:"minio,omitempty" yaml:"minio,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// MinioConfig configures the optional object storage sink for exports.
type MinioConfig struct {
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	UseSSL    bool   `json:"use_ssl,omitempty" yaml:"use_ssl,omitempty"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Store:     string(kv.BackendFile),
		StorePath: DefaultStorePath,
		Port:      DefaultPort,
		ExportDir: ".",
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are parsed as YAML; everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// envVars maps environment variables to the string fields they fill.
func (c *Config) envVars() map[string]*string {
	return map[string]*string{
		"RESUME_STORE":      &c.Store,
		"RESUME_STORE_PATH": &c.StorePath,
		"DATABASE_URL":      &c.DatabaseURL,
		"REDIS_URL":         &c.RedisURL,
		"GEMINI_API_KEY":    &c.APIKey,
		"CONTACT_ENDPOINT":  &c.ContactEndpoint,
		"EXPORT_DIR":        &c.ExportDir,
		"MINIO_ENDPOINT":    &c.Minio.Endpoint,
		"MINIO_ACCESS_KEY":  &c.Minio.AccessKey,
		"MINIO_SECRET_KEY":  &c.Minio.SecretKey,
		"MINIO_BUCKET":      &c.Minio.Bucket,
		"LOG_LEVEL":         &c.LogLevel,
		"LOG_FORMAT":        &c.LogFormat,
	}
}

// ApplyEnv fills empty fields from environment variables using lookup
// (os.LookupEnv when nil). Values already set win.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for name, field := range c.envVars() {
		if *field != "" {
			continue
		}
		if v, ok := lookup(name); ok {
			*field = strings.TrimSpace(v)
		}
	}

	if c.Port == 0 {
		if v, ok := lookup("PORT"); ok && v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config error: PORT must be a number: %w", err)
			}
			c.Port = port
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	backend, err := kv.ParseBackend(c.Store)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	switch backend {
	case kv.BackendFile:
		if c.StorePath == "" {
			return fmt.Errorf("config error: 'store_path' is required for the file store")
		}
	case kv.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case kv.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis store")
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for tier := range c.Models {
		if _, ok := llm.ParseTier(tier); !ok {
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}

	known := assist.DefaultTiers()
	for op, tier := range c.Tiers {
		if _, ok := known[op]; !ok {
			return fmt.Errorf("config error: unknown assist operation %q", op)
		}
		if _, ok := llm.ParseTier(tier); !ok {
			return fmt.Errorf("config error: unknown model tier %q for %s", tier, op)
		}
	}

	if c.LogFormat != "" && c.LogFormat != "json" && c.LogFormat != "pretty" {
		return fmt.Errorf("config error: 'log_format' must be json or pretty")
	}

	if c.Minio.Endpoint != "" && c.Minio.Bucket == "" {
		return fmt.Errorf("config error: 'minio.bucket' is required when 'minio.endpoint' is set")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.Store, defaults.Store)
	fill(&result.StorePath, defaults.StorePath)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.RedisURL, defaults.RedisURL)
	fill(&result.KeyPrefix, defaults.KeyPrefix)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.ContactEndpoint, defaults.ContactEndpoint)
	fill(&result.ExportDir, defaults.ExportDir)
	fill(&result.LogLevel, defaults.LogLevel)
	fill(&result.LogFormat, defaults.LogFormat)
	fill(&result.Minio.Endpoint, defaults.Minio.Endpoint)
	fill(&result.Minio.AccessKey, defaults.Minio.AccessKey)
	fill(&result.Minio.SecretKey, defaults.Minio.SecretKey)
	fill(&result.Minio.Bucket, defaults.Minio.Bucket)

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	models := make(map[string]string, len(defaults.Models)+len(c.Models))
	for tier, model := range defaults.Models {
		models[tier] = model
	}
	for tier, model := range c.Models {
		models[tier] = model
	}
	if len(models) > 0 {
		result.Models = models
	}

	tiers := make(map[string]string, len(defaults.Tiers)+len(c.Tiers))
	for op, tier := range defaults.Tiers {
		tiers[op] = tier
	}
	for op, tier := range c.Tiers {
		tiers[op] = tier
	}
	if len(tiers) > 0 {
		result.Tiers = tiers
	}

	return result
}

// KVOptions returns the options for opening the document store backend.
func (c *Config) KVOptions() kv.Options {
	backend, _ := kv.ParseBackend(c.Store)
	return kv.Options{
		Backend:     backend,
		Path:        c.StorePath,
		DatabaseURL: c.DatabaseURL,
		RedisURL:    c.RedisURL,
		KeyPrefix:   c.KeyPrefix,
	}
}

// LLMConfig returns the Gemini configuration with any model overrides applied.
func (c *Config) LLMConfig() *llm.Config {
	overrides := make(map[llm.ModelTier]string, len(c.Models))
	for name, model := range c.Models {
		if tier, ok := llm.ParseTier(name); ok {
			overrides[tier] = model
		}
	}
	return llm.DefaultConfig().WithModels(overrides)
}

// AssistTiers returns the per-operation tier overrides. Invalid entries are skipped.
func (c *Config) AssistTiers() assist.Tiers {
	tiers := make(assist.Tiers, len(c.Tiers))
	for op, name := range c.Tiers {
		if tier, ok := llm.ParseTier(name); ok {
			tiers[op] = tier
		}
	}
	return tiers
}

// HasMinio reports whether exports should go to object storage.
func (c *Config) HasMinio() bool {
	return c.Minio.Endpoint != ""
}

// MinioSinkConfig converts the minio settings for the export package.
func (c *Config) MinioSinkConfig() export.MinioConfig {
	return export.MinioConfig{
		Endpoint:        c.Minio.Endpoint,
		AccessKeyID:     c.Minio.AccessKey,
		SecretAccessKey: c.Minio.SecretKey,
		Bucket:          c.Minio.Bucket,
		UseSSL:          c.Minio.UseSSL,
	}
}

// LoggerConfig returns the logging settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}
