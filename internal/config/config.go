package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL        string        `mapstructure:"api_base_url"`
	APITimeoutSeconds int64         `mapstructure:"api_timeout_seconds"`
	APITimeout        time.Duration `mapstructure:"-"`

	NotifiersFile string `mapstructure:"notifiers_file"`

	TokenStoreType  string        `mapstructure:"token_store_type"`
	TokenStorePath  string        `mapstructure:"token_store_path"`
	TokenTTLSeconds int64         `mapstructure:"token_ttl_seconds"`
	TokenTTL        time.Duration `mapstructure:"-"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	DemoUsername string `mapstructure:"demo_username"`
	DemoPassword string `mapstructure:"demo_password"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "lumeo-api-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "")
	v.SetDefault("api_timeout_seconds", 10)
	v.SetDefault("notifiers_file", "")
	v.SetDefault("token_store_type", "bbolt")
	v.SetDefault("token_store_path", "./data/tokens.db")
	v.SetDefault("token_ttl_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("demo_username", "demo")
	v.SetDefault("demo_password", "demo")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid api_timeout_seconds (must be positive seconds)")
	}
	cfg.APITimeout = time.Duration(cfg.APITimeoutSeconds) * time.Second

	if cfg.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid token_ttl_seconds (must be positive seconds)")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLSeconds) * time.Second

	return &cfg, nil
}
