// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Dietary  DietaryConfig  `mapstructure:"dietary"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	// Driver selects the repository adapter: "sqlite" or "memory"
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Seed     bool   `mapstructure:"seed"`
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig contains Redis cache configuration. When disabled, the
// in-memory cache adapter is used instead.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PlannerConfig carries the meal-planner tuning data. The slot keyword
// mapping is locale-specific configuration, not logic.
type PlannerConfig struct {
	Temperature  float64             `mapstructure:"temperature"`
	Weights      WeightsConfig       `mapstructure:"weights"`
	SlotKeywords map[string][]string `mapstructure:"slot_keywords"`
}

// DietaryConfig carries the dietary classification rule table, keyed by
// restriction name. An empty table selects the built-in rules.
type DietaryConfig struct {
	Rules map[string][]CategoryRuleConfig `mapstructure:"rules"`
}

// CategoryRuleConfig excludes an ingredient category for a restriction;
// an empty subcategory list excludes the whole category
type CategoryRuleConfig struct {
	Category      string   `mapstructure:"category"`
	Subcategories []string `mapstructure:"subcategories"`
}

// WeightsConfig carries the five scoring-factor weights
type WeightsConfig struct {
	Inventory   float64 `mapstructure:"inventory"`
	History     float64 `mapstructure:"history"`
	Variety     float64 `mapstructure:"variety"`
	Freshness   float64 `mapstructure:"freshness"`
	Preferences float64 `mapstructure:"preferences"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("COCINERO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cocinero")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "cocinero.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.log_level", "silent")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetDefault("planner.temperature", 0.7)
	v.SetDefault("planner.weights.inventory", 0.30)
	v.SetDefault("planner.weights.history", 0.25)
	v.SetDefault("planner.weights.variety", 0.25)
	v.SetDefault("planner.weights.freshness", 0.10)
	v.SetDefault("planner.weights.preferences", 0.10)
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Planner.Temperature <= 0 {
		return fmt.Errorf("planner temperature must be greater than 0")
	}
	w := cfg.Planner.Weights
	total := w.Inventory + w.History + w.Variety + w.Freshness + w.Preferences
	if total <= 0 {
		return fmt.Errorf("planner weights must sum to a positive value")
	}
	return nil
}

// RedisAddr returns the host:port address for the Redis client
func (c RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
