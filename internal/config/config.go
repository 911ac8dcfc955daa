package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	MongoDB    MongoDBConfig
	JWT        JWTConfig
	Admin      AdminConfig
	Sources    SourcesConfig
	Sync       SyncConfig
	Prediction PredictionConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel   string          `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string `mapstructure:"allowed_hosts"`
	Mode         string   // gin mode: debug, release, test
}

// StorageConfig selects the draw store backend
type StorageConfig struct {
	Driver     string // sqlite, mongodb or memory
	SQLitePath string `mapstructure:"sqlite_path"`
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int `mapstructure:"expires_in"` // seconds
}

// AdminConfig holds the credentials of the administrator allowed to trigger syncs
type AdminConfig struct {
	Email        string
	PasswordHash string `mapstructure:"password_hash"` // bcrypt
}

// SourcesConfig holds the FDJ download locations
type SourcesConfig struct {
	LotoURL         string        `mapstructure:"loto_url"`
	EuroMillionsURL string        `mapstructure:"euromillions_url"`
	Timeout         time.Duration
}

// SyncConfig controls automatic refreshes of the draw history
type SyncConfig struct {
	Schedule  string // cron spec with seconds, empty disables the scheduler
	OnStartup bool   `mapstructure:"on_startup"`
}

// PredictionConfig holds the parameters of the suggestion methods
type PredictionConfig struct {
	RecentWindow int   `mapstructure:"recent_window"`
	Seed         int64 // 0 seeds from the clock
}

// RateLimitConfig throttles sync triggers per client
type RateLimitConfig struct {
	SyncPerMinute int `mapstructure:"sync_per_minute"`
	Burst         int
}

// LoadConfig loads configuration from a config.yaml found in path (or ./config)
// and from environment variables such as SERVER_PORT or STORAGE_DRIVER.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_hosts", []string{"localhost:3000"})
	v.SetDefault("server.mode", "release")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "data/lottery.db")
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "lottery")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expires_in", 24*60*60) // 24 hours
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("sources.loto_url", "https://media.fdj.fr/static/csv/loto.csv")
	v.SetDefault("sources.euromillions_url", "https://media.fdj.fr/static/csv/euromillions.csv")
	v.SetDefault("sources.timeout", 30*time.Second)
	v.SetDefault("sync.schedule", "")
	v.SetDefault("sync.on_startup", false)
	v.SetDefault("prediction.recent_window", 30)
	v.SetDefault("prediction.seed", 0)
	v.SetDefault("rate_limit.sync_per_minute", 2)
	v.SetDefault("rate_limit.burst", 1)
	v.SetDefault("log_level", "info")
}
