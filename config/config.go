package config

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	StoreDriver  string `mapstructure:"STORE_DRIVER"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	CacheEnabled  bool          `mapstructure:"CACHE_ENABLED"`
	StatsCacheTTL time.Duration `mapstructure:"STATS_CACHE_TTL"`

	// Auth.
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	PartnerTokenTTL time.Duration `mapstructure:"PARTNER_TOKEN_TTL"`
	AdminToken      string        `mapstructure:"ADMIN_TOKEN"`

	// Monthly gift batch.
	MonthlyGiftCron  string `mapstructure:"MONTHLY_GIFT_CRON"`
	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "partnerhub")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("STATS_CACHE_TTL", "5m")
	v.SetDefault("JWT_SECRET", "partnerhub-dev-secret")
	v.SetDefault("PARTNER_TOKEN_TTL", "24h")
	v.SetDefault("ADMIN_TOKEN", "partnerhub-admin")
	v.SetDefault("MONTHLY_GIFT_CRON", "0 0 1 * *")
	v.SetDefault("SCHEDULER_ENABLED", false)
}

// Load reads configuration from an optional config.yaml (in . or ./config) and the
// environment, and validates it.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check on its own.
func (c Config) Validate() error {
	if _, err := cron.ParseStandard(c.MonthlyGiftCron); err != nil {
		return fmt.Errorf("invalid MONTHLY_GIFT_CRON %q: %w", c.MonthlyGiftCron, err)
	}
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected mongo or memory", c.StoreDriver)
	}
	if c.AdminToken == "" {
		return fmt.Errorf("ADMIN_TOKEN must not be empty")
	}
	return nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
