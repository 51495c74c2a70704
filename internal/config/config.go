package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Models  ModelsConfig
	Upload  UploadConfig
	Archive ArchiveConfig
	Batch   BatchConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// GatewayProviderConfig holds settings for a single vision model provider.
// DefaultModel is the model a provider falls back to when a request names a
// model it cannot serve.
type GatewayProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GatewayConfig holds vision model gateway settings with multi-provider
// support.
type GatewayConfig struct {
	// Legacy flat fields (single-provider setups)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Multi-provider fields
	Primary   GatewayProviderConfig `mapstructure:"primary"`
	Secondary GatewayProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary provider config, falling back to the
// legacy flat fields.
func (g *GatewayConfig) PrimaryConfig() *GatewayProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &GatewayProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not
// configured.
func (g *GatewayConfig) SecondaryConfig() *GatewayProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
}

// ModelPricingOverride adds or replaces one model's rate card entry.
type ModelPricingOverride struct {
	Model       string  `json:"model"`
	InputPer1M  float64 `json:"input_per_1m"`
	OutputPer1M float64 `json:"output_per_1m"`
}

// ModelsConfig holds per-stage model defaults and rate card overrides.
type ModelsConfig struct {
	ClassificationModel string `mapstructure:"classification"`
	ExtractionModel     string `mapstructure:"extraction"`

	// Pricing overrides, decoded from the VERIDOC_MODELS_PRICING JSON list.
	Pricing []ModelPricingOverride
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// ArchiveConfig holds the optional S3 image archive settings. Archival is
// disabled unless a bucket is configured.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Enabled reports whether image archival is configured.
func (a *ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// BatchConfig holds batch CLI processing settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the VERIDOC_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VERIDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Gateway defaults (legacy flat)
	v.SetDefault("gateway.provider", "fireworks")
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.default_model", "")
	v.SetDefault("gateway.timeout_secs", 120)

	// Gateway primary/secondary defaults
	v.SetDefault("gateway.primary.provider", "")
	v.SetDefault("gateway.primary.api_key", "")
	v.SetDefault("gateway.primary.default_model", "")
	v.SetDefault("gateway.primary.timeout_secs", 120)
	v.SetDefault("gateway.secondary.provider", "")
	v.SetDefault("gateway.secondary.api_key", "")
	v.SetDefault("gateway.secondary.default_model", "")
	v.SetDefault("gateway.secondary.timeout_secs", 120)

	// Model defaults: fast model for classification, accurate for extraction
	v.SetDefault("models.classification", "accounts/fireworks/models/llama-v3p2-90b-vision-instruct")
	v.SetDefault("models.extraction", "accounts/fireworks/models/qwen2p5-vl-32b-instruct")
	v.SetDefault("models.pricing", "")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Archive defaults (disabled unless a bucket is set)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "archive")

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.timeout_secs", 300)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "VERIDOC_SERVER_PORT",
		"server.read_timeout":             "VERIDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "VERIDOC_SERVER_WRITE_TIMEOUT",
		"server.environment":              "VERIDOC_SERVER_ENVIRONMENT",
		"gateway.provider":                "VERIDOC_GATEWAY_PROVIDER",
		"gateway.api_key":                 "VERIDOC_GATEWAY_API_KEY",
		"gateway.default_model":           "VERIDOC_GATEWAY_DEFAULT_MODEL",
		"gateway.timeout_secs":            "VERIDOC_GATEWAY_TIMEOUT_SECS",
		"gateway.primary.provider":        "VERIDOC_GATEWAY_PRIMARY_PROVIDER",
		"gateway.primary.api_key":         "VERIDOC_GATEWAY_PRIMARY_API_KEY",
		"gateway.primary.default_model":   "VERIDOC_GATEWAY_PRIMARY_DEFAULT_MODEL",
		"gateway.primary.timeout_secs":    "VERIDOC_GATEWAY_PRIMARY_TIMEOUT_SECS",
		"gateway.secondary.provider":      "VERIDOC_GATEWAY_SECONDARY_PROVIDER",
		"gateway.secondary.api_key":       "VERIDOC_GATEWAY_SECONDARY_API_KEY",
		"gateway.secondary.default_model": "VERIDOC_GATEWAY_SECONDARY_DEFAULT_MODEL",
		"gateway.secondary.timeout_secs":  "VERIDOC_GATEWAY_SECONDARY_TIMEOUT_SECS",
		"models.classification":           "VERIDOC_MODELS_CLASSIFICATION",
		"models.extraction":               "VERIDOC_MODELS_EXTRACTION",
		"models.pricing":                  "VERIDOC_MODELS_PRICING",
		"upload.max_file_size_mb":         "VERIDOC_UPLOAD_MAX_FILE_SIZE_MB",
		"archive.region":                  "VERIDOC_ARCHIVE_REGION",
		"archive.bucket":                  "VERIDOC_ARCHIVE_BUCKET",
		"archive.endpoint":                "VERIDOC_ARCHIVE_ENDPOINT",
		"archive.access_key":              "VERIDOC_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":              "VERIDOC_ARCHIVE_SECRET_KEY",
		"archive.prefix":                  "VERIDOC_ARCHIVE_PREFIX",
		"batch.concurrency":               "VERIDOC_BATCH_CONCURRENCY",
		"batch.timeout_secs":              "VERIDOC_BATCH_TIMEOUT_SECS",
		"cors.allowed_origins":            "VERIDOC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VERIDOC_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VERIDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	cfg.Gateway = GatewayConfig{
		Provider:     v.GetString("gateway.provider"),
		APIKey:       v.GetString("gateway.api_key"),
		DefaultModel: v.GetString("gateway.default_model"),
		TimeoutSecs:  v.GetInt("gateway.timeout_secs"),
		Primary: GatewayProviderConfig{
			Provider:     v.GetString("gateway.primary.provider"),
			APIKey:       v.GetString("gateway.primary.api_key"),
			DefaultModel: v.GetString("gateway.primary.default_model"),
			TimeoutSecs:  v.GetInt("gateway.primary.timeout_secs"),
		},
		Secondary: GatewayProviderConfig{
			Provider:     v.GetString("gateway.secondary.provider"),
			APIKey:       v.GetString("gateway.secondary.api_key"),
			DefaultModel: v.GetString("gateway.secondary.default_model"),
			TimeoutSecs:  v.GetInt("gateway.secondary.timeout_secs"),
		},
	}

	cfg.Models = ModelsConfig{
		ClassificationModel: v.GetString("models.classification"),
		ExtractionModel:     v.GetString("models.extraction"),
	}
	if raw := v.GetString("models.pricing"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Models.Pricing); err != nil {
			return nil, fmt.Errorf("parsing VERIDOC_MODELS_PRICING: %w", err)
		}
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}

	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
		TimeoutSecs: v.GetInt("batch.timeout_secs"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
