package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML []byte

type ServerConfig struct {
	Port                   int `yaml:"port"`
	ReadTimeoutSeconds     int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds     int `yaml:"idle_timeout_seconds"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RateLimitConfig selects where the fixed-window request counters live:
// in process ("memory") or shared between instances ("redis").
type RateLimitConfig struct {
	Backend       string `yaml:"backend"`
	Capacity      int    `yaml:"capacity"`
	WindowSeconds int    `yaml:"window_seconds"`
	KeyPrefix     string `yaml:"key_prefix"`
}

type RedisConfig struct {
	Addr                  string `yaml:"addr"`
	Password              string `yaml:"password"`
	DB                    int    `yaml:"db"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
}

// ExplanationConfig points at an OpenAI compatible chat completions API.
// With no API key the service falls back to the built-in narrative.
type ExplanationConfig struct {
	APIURL         string `yaml:"api_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LogConfig         `yaml:"logging"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Redis       RedisConfig       `yaml:"redis"`
	Explanation ExplanationConfig `yaml:"explanation"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Load reads .env if present, then the embedded defaults overlaid by the
// file at CONFIG_PATH (if set), then environment overrides.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFromConfigFilePath(GetEnvOrDefaultAsString("CONFIG_PATH", ""))
}

// LoadFromConfigFilePath overlays the YAML at configPath on the embedded
// defaults. An empty path uses the defaults alone.
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
		}
	}

	assignEnvOverrides(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func assignEnvOverrides(cfg *AppConfig) {
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)

	cfg.Logging.Level = GetEnvOrDefaultAsString("LOG_LEVEL", cfg.Logging.Level)

	cfg.RateLimit.Backend = GetEnvOrDefaultAsString("RATE_LIMIT_BACKEND", cfg.RateLimit.Backend)
	cfg.RateLimit.Capacity = GetEnvOrDefaultAsInt("RATE_LIMIT_CAPACITY", cfg.RateLimit.Capacity)
	cfg.RateLimit.WindowSeconds = GetEnvOrDefaultAsInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimit.WindowSeconds)
	cfg.RateLimit.KeyPrefix = GetEnvOrDefaultAsString("RATE_LIMIT_KEY_PREFIX", cfg.RateLimit.KeyPrefix)

	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ConnectTimeoutSeconds = GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", cfg.Redis.ConnectTimeoutSeconds)

	cfg.Explanation.APIURL = GetEnvOrDefaultAsString("EXPLANATION_API_URL", cfg.Explanation.APIURL)
	cfg.Explanation.APIKey = GetEnvOrDefaultAsString("OPENAI_API_KEY", cfg.Explanation.APIKey)
	cfg.Explanation.Model = GetEnvOrDefaultAsString("EXPLANATION_MODEL", cfg.Explanation.Model)
	cfg.Explanation.MaxTokens = GetEnvOrDefaultAsInt("EXPLANATION_MAX_TOKENS", cfg.Explanation.MaxTokens)
	cfg.Explanation.TimeoutSeconds = GetEnvOrDefaultAsInt("EXPLANATION_TIMEOUT_SECONDS", cfg.Explanation.TimeoutSeconds)
}

func validateConfig(cfg *AppConfig) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeoutSeconds < 1 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be positive, got %d", cfg.Server.ShutdownTimeoutSeconds)
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	rl := cfg.RateLimit
	if rl.Backend != BackendMemory && rl.Backend != BackendRedis {
		return fmt.Errorf("rate_limit.backend must be %q or %q, got %q", BackendMemory, BackendRedis, rl.Backend)
	}
	if rl.Capacity < 1 {
		return fmt.Errorf("rate_limit.capacity must be at least 1, got %d", rl.Capacity)
	}
	if rl.WindowSeconds < 1 {
		return fmt.Errorf("rate_limit.window_seconds must be at least 1, got %d", rl.WindowSeconds)
	}
	if rl.Backend == BackendRedis && cfg.Redis.Addr == "" {
		return errors.New("redis.addr is required when rate_limit.backend is redis")
	}
	if rl.Backend == BackendRedis && cfg.Redis.ConnectTimeoutSeconds < 1 {
		return fmt.Errorf("redis.connect_timeout_seconds must be at least 1, got %d", cfg.Redis.ConnectTimeoutSeconds)
	}

	if cfg.Explanation.MaxTokens < 1 || cfg.Explanation.MaxTokens > 4096 {
		return fmt.Errorf("explanation.max_tokens must be between 1 and 4096, got %d", cfg.Explanation.MaxTokens)
	}
	if cfg.Explanation.TimeoutSeconds < 1 {
		return fmt.Errorf("explanation.timeout_seconds must be at least 1, got %d", cfg.Explanation.TimeoutSeconds)
	}
	if cfg.Explanation.APIKey != "" && cfg.Explanation.APIURL == "" {
		return errors.New("explanation.api_url is required when an API key is set")
	}

	return nil
}

// GetEnvOrDefaultAsInt returns the env variable as an int, or defaultValue
// when it is unset or not a number.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}
