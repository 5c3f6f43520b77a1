package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env       Environment     `mapstructure:"-"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	LLM       LLMConfig       `mapstructure:"llm"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	// URL is a postgres:// DSN or a sqlite file path.
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	// URL is optional. Rate limiting and generation counters are disabled without it.
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret                   string `mapstructure:"secret"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"`
}

// AccessTokenTTL is the lifetime of issued access tokens.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.AccessTokenExpireMinutes) * time.Minute
}

const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	GeminiModel    string        `mapstructure:"gemini_model"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	DeepSeekAPIKey string        `mapstructure:"deepseek_api_key"`
	DeepSeekAPIURL string        `mapstructure:"deepseek_api_url"`
	DeepSeekModel  string        `mapstructure:"deepseek_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Generations int           `mapstructure:"generations"`
	Window      time.Duration `mapstructure:"window"`
}

type StorageConfig struct {
	S3BucketName string `mapstructure:"s3_bucket_name"`
	AWSRegion    string `mapstructure:"aws_region"`
}

// Enabled reports whether recipe export to object storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.S3BucketName != ""
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Mode  string `mapstructure:"mode"`
}

// envKeys maps config keys to the environment variables that set them.
var envKeys = map[string]string{
	"server.host":                     "SERVER_HOST",
	"server.port":                     "SERVER_PORT",
	"server.cors_origins":             "CORS_ORIGINS",
	"database.url":                    "DATABASE_URL",
	"redis.url":                       "REDIS_URL",
	"jwt.secret":                      "JWT_SECRET",
	"jwt.access_token_expire_minutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
	"llm.provider":                    "LLM_PROVIDER",
	"llm.gemini_api_key":              "GEMINI_API_KEY",
	"llm.gemini_model":                "GEMINI_MODEL",
	"llm.embedding_model":             "EMBEDDING_MODEL",
	"llm.deepseek_api_key":            "DEEPSEEK_API_KEY",
	"llm.deepseek_api_url":            "DEEPSEEK_API_URL",
	"llm.deepseek_model":              "DEEPSEEK_MODEL",
	"llm.timeout":                     "LLM_TIMEOUT",
	"rate_limit.generations":          "RATE_LIMIT_GENERATIONS",
	"rate_limit.window":               "RATE_LIMIT_WINDOW",
	"storage.s3_bucket_name":          "S3_BUCKET_NAME",
	"storage.aws_region":              "AWS_REGION",
	"log.level":                       "LOG_LEVEL",
	"log.mode":                        "LOG_MODE",
}

// secretKeys maps Docker secret file names to config keys. Used in production only.
var secretKeys = map[string]string{
	"jwt_secret":       "jwt.secret",
	"gemini_api_key":   "llm.gemini_api_key",
	"deepseek_api_key": "llm.deepseek_api_key",
	"database_url":     "database.url",
	"redis_url":        "redis.url",
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_origins", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_token_expire_minutes", 30)
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.gemini_model", "gemini-2.5-flash")
	v.SetDefault("llm.embedding_model", "gemini-embedding-001")
	v.SetDefault("llm.deepseek_api_key", "")
	v.SetDefault("llm.deepseek_api_url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.deepseek_model", "deepseek-chat")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("rate_limit.generations", 20)
	v.SetDefault("rate_limit.window", "1h")
	v.SetDefault("storage.s3_bucket_name", "")
	v.SetDefault("storage.aws_region", "us-east-1")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.mode", "console")

	if env == Development || env == Test {
		v.SetDefault("database.url", "pantrychef.db")
		v.SetDefault("jwt.secret", "dev-secret-change-me")
	}
	if env == Production {
		v.SetDefault("log.mode", "json")
	}
}

// LoadConfig reads an optional .env file, then environment variables, then
// (in production) Docker secrets, and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	env := GetEnvironment()
	v := viper.New()
	setDefaults(v, env)
	for key, name := range envKeys {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	if env == Production {
		for name, key := range secretKeys {
			if value := readSecret(name); value != "" {
				v.Set(key, value)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = env
	cfg.Server.CORSOrigins = splitOrigins(cfg.Server.CORSOrigins)
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
