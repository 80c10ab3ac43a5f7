package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MarketConfig holds market data adapter settings
type MarketConfig struct {
	StatsURL        string        `yaml:"stats_url"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	RefreshSchedule string        `yaml:"refresh_schedule"`
}

// MemoryConfig holds the content memory caps
type MemoryConfig struct {
	Templates int `yaml:"templates"`
	Hooks     int `yaml:"hooks"`
	Hashtags  int `yaml:"hashtags"`
	History   int `yaml:"history"`
}

// fileConfig is the shape of settings/app.yaml
type fileConfig struct {
	Memory MemoryConfig `yaml:"memory"`
	Market MarketConfig `yaml:"market"`
}

// Config holds all application configuration
type Config struct {
	Port        string
	DatabaseURL string
	StaticDir   string
	SettingsDir string
	LogLevel    string
	Market      MarketConfig
	Memory      MemoryConfig
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Port:        "8080",
		DatabaseURL: "data/app.db",
		StaticDir:   "static",
		SettingsDir: "settings",
		LogLevel:    "info",
		Market: MarketConfig{
			StatsURL:        "https://windsorrealestate.com/monthly-stats",
			CacheTTL:        time.Hour,
			FetchTimeout:    10 * time.Second,
			RefreshSchedule: "@every 1h",
		},
		Memory: MemoryConfig{
			Templates: 20,
			Hooks:     15,
			Hashtags:  30,
			History:   50,
		},
	}
}

// LoadEnv loads .env files into the process environment without overriding set variables
func LoadEnv(logger *logrus.Logger) {
	for _, file := range []string{".env", ".env.dev"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		if logger != nil {
			logger.Debugf("Loaded env file %s", file)
		}
	}
}

// Load loads configuration from settings/app.yaml and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	cfg := Defaults()
	cfg.SettingsDir = getEnv("SETTINGS_DIR", cfg.SettingsDir)

	fileCfg, err := loadFileConfig(filepath.Join(cfg.SettingsDir, "app.yaml"))
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		mergeFileConfig(cfg, fileCfg)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", getEnv("DB_PATH", cfg.DatabaseURL))
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Market.StatsURL = getEnv("MARKET_STATS_URL", cfg.Market.StatsURL)
	cfg.Market.CacheTTL = getEnvDuration("MARKET_CACHE_TTL", cfg.Market.CacheTTL)
	cfg.Market.FetchTimeout = getEnvDuration("MARKET_FETCH_TIMEOUT", cfg.Market.FetchTimeout)
	if v, ok := os.LookupEnv("MARKET_REFRESH_SCHEDULE"); ok {
		cfg.Market.RefreshSchedule = strings.TrimSpace(v)
	}
	cfg.Memory.History = getEnvInt("CONTENT_HISTORY_LIMIT", cfg.Memory.History)

	return cfg, nil
}

// IsPostgres reports whether the database URL selects PostgreSQL
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// loadFileConfig reads the optional YAML settings file; a missing file yields nil
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func mergeFileConfig(cfg *Config, f *fileConfig) {
	if f.Memory.Templates > 0 {
		cfg.Memory.Templates = f.Memory.Templates
	}
	if f.Memory.Hooks > 0 {
		cfg.Memory.Hooks = f.Memory.Hooks
	}
	if f.Memory.Hashtags > 0 {
		cfg.Memory.Hashtags = f.Memory.Hashtags
	}
	if f.Memory.History > 0 {
		cfg.Memory.History = f.Memory.History
	}
	if f.Market.StatsURL != "" {
		cfg.Market.StatsURL = f.Market.StatsURL
	}
	if f.Market.CacheTTL > 0 {
		cfg.Market.CacheTTL = f.Market.CacheTTL
	}
	if f.Market.FetchTimeout > 0 {
		cfg.Market.FetchTimeout = f.Market.FetchTimeout
	}
	if f.Market.RefreshSchedule != "" {
		cfg.Market.RefreshSchedule = f.Market.RefreshSchedule
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
