package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates every setting the API reads from the environment.
type Config struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Daily    DailyConfig    `mapstructure:"daily"`
	STT      STTConfig      `mapstructure:"stt"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Limits   LimitsConfig   `mapstructure:"limits"`
}

type PostgresConfig struct {
	URI string `mapstructure:"uri"`
}

// RedisConfig is optional; without an address rate limiting is disabled.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// MongoConfig is optional; without a URI interview transitions are not logged.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

type DailyConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	RoomTTL time.Duration `mapstructure:"room_ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type STTConfig struct {
	Provider     string        `mapstructure:"provider"` // whisper|google
	Model        string        `mapstructure:"model"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Language     string        `mapstructure:"language"`
	Encoding     string        `mapstructure:"encoding"`
	SampleRateHz int32         `mapstructure:"sample_rate_hz"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // vertex|anthropic
	Model           string        `mapstructure:"model"`
	GCPProject      string        `mapstructure:"gcp_project"`
	GCPLocation     string        `mapstructure:"gcp_location"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // gcs|minio
	Bucket string `mapstructure:"bucket"`

	MinIOEndpoint  string `mapstructure:"minio_endpoint"`
	MinIOAccessKey string `mapstructure:"minio_access_key"`
	MinIOSecretKey string `mapstructure:"minio_secret_key"`
	MinIOUseSSL    bool   `mapstructure:"minio_use_ssl"`
	PublicBaseURL  string `mapstructure:"public_base_url"`

	Timeout time.Duration `mapstructure:"timeout"`
}

type LimitsConfig struct {
	UploadPerMinute  int `mapstructure:"upload_per_minute"`
	AnalyzePerMinute int `mapstructure:"analyze_per_minute"`
	RoomPerMinute    int `mapstructure:"room_per_minute"`
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.STT.Provider = strings.ToLower(strings.TrimSpace(cfg.STT.Provider))
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("mongo.database", "launchpad")
	v.SetDefault("daily.base_url", "https://api.daily.co/v1")
	v.SetDefault("daily.room_ttl", 2*time.Hour)
	v.SetDefault("daily.timeout", 15*time.Second)
	v.SetDefault("stt.provider", "whisper")
	v.SetDefault("stt.model", "whisper-1")
	v.SetDefault("stt.language", "en-US")
	v.SetDefault("stt.encoding", "WEBM_OPUS")
	v.SetDefault("stt.sample_rate_hz", 48000)
	v.SetDefault("stt.timeout", 10*time.Minute)
	v.SetDefault("llm.provider", "vertex")
	v.SetDefault("llm.gcp_location", "us-central1")
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("storage.driver", "gcs")
	v.SetDefault("storage.bucket", "documents")
	v.SetDefault("storage.timeout", 30*time.Second)
	v.SetDefault("limits.upload_per_minute", 20)
	v.SetDefault("limits.analyze_per_minute", 3)
	v.SetDefault("limits.room_per_minute", 30)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"port":                      "PORT",
		"log_level":                 "LOG_LEVEL",
		"postgres.uri":              "POSTGRES_URI",
		"redis.addr":                "REDIS_ADDR",
		"mongo.uri":                 "MONGO_URI",
		"mongo.database":            "MONGO_DB",
		"auth.jwt_secret":           "SUPABASE_JWT_SECRET",
		"auth.issuer":               "SUPABASE_JWT_ISSUER",
		"auth.audience":             "SUPABASE_JWT_AUDIENCE",
		"daily.api_key":             "DAILY_API_KEY",
		"daily.base_url":            "DAILY_API_URL",
		"daily.room_ttl":            "DAILY_ROOM_TTL",
		"daily.timeout":             "DAILY_TIMEOUT",
		"stt.provider":              "STT_PROVIDER",
		"stt.model":                 "STT_MODEL",
		"stt.openai_api_key":        "OPENAI_API_KEY",
		"stt.language":              "STT_LANGUAGE",
		"stt.encoding":              "STT_ENCODING",
		"stt.sample_rate_hz":        "STT_SAMPLE_RATE_HZ",
		"stt.timeout":               "STT_TIMEOUT",
		"llm.provider":              "LLM_PROVIDER",
		"llm.model":                 "LLM_MODEL",
		"llm.gcp_project":           "GCP_PROJECT_ID",
		"llm.gcp_location":          "GCP_LOCATION",
		"llm.anthropic_api_key":     "ANTHROPIC_API_KEY",
		"llm.timeout":               "LLM_TIMEOUT",
		"storage.driver":            "STORAGE_DRIVER",
		"storage.bucket":            "STORAGE_BUCKET",
		"storage.minio_endpoint":    "MINIO_ENDPOINT",
		"storage.minio_access_key":  "MINIO_ACCESS_KEY_ID",
		"storage.minio_secret_key":  "MINIO_SECRET_ACCESS_KEY",
		"storage.minio_use_ssl":     "MINIO_USE_SSL",
		"storage.public_base_url":   "STORAGE_PUBLIC_BASE_URL",
		"storage.timeout":           "STORAGE_TIMEOUT",
		"limits.upload_per_minute":  "RATE_LIMIT_UPLOAD_PER_MINUTE",
		"limits.analyze_per_minute": "RATE_LIMIT_ANALYZE_PER_MINUTE",
		"limits.room_per_minute":    "RATE_LIMIT_ROOM_PER_MINUTE",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.Port <= 0 {
		return errors.New("port must be positive")
	}
	if cfg.Postgres.URI == "" {
		return errors.New("POSTGRES_URI environment variable is not set")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("SUPABASE_JWT_SECRET environment variable is not set")
	}
	switch cfg.STT.Provider {
	case "whisper":
		if cfg.STT.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the whisper stt provider")
		}
	case "google":
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", cfg.STT.Provider)
	}
	switch cfg.LLM.Provider {
	case "vertex":
		if cfg.LLM.GCPProject == "" {
			return errors.New("GCP_PROJECT_ID is required for the vertex llm provider")
		}
	case "anthropic":
		if cfg.LLM.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic llm provider")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	switch cfg.Storage.Driver {
	case "gcs":
	case "minio":
		if cfg.Storage.MinIOEndpoint == "" || cfg.Storage.MinIOAccessKey == "" || cfg.Storage.MinIOSecretKey == "" {
			return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID and MINIO_SECRET_ACCESS_KEY are required for the minio storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Bucket == "" {
		return errors.New("STORAGE_BUCKET is required")
	}
	return nil
}
