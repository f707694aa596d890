package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
	// RefreshRateLimit caps manual refreshes per client, e.g. "10-M".
	RefreshRateLimit string `mapstructure:"refresh_rate_limit"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

const (
	ProviderFrankfurter  = "frankfurter"
	ProviderExchangeRate = "exchangerate"
)

// RatesAPI selects the upstream provider. APIKey is only used by exchangerate.
type RatesAPI struct {
	Provider string `mapstructure:"provider"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
}

// URL returns BaseURL or the provider's public endpoint when unset.
func (r RatesAPI) URL() string {
	if r.BaseURL != "" {
		return strings.TrimSuffix(r.BaseURL, "/")
	}
	if r.Provider == ProviderExchangeRate {
		return "https://v6.exchangerate-api.com/v6"
	}
	return "https://api.frankfurter.app"
}

type Quota struct {
	DailyLimit   int `mapstructure:"daily_limit"`
	MonthlyLimit int `mapstructure:"monthly_limit"`
	ResetDay     int `mapstructure:"reset_day"`
}

type Cache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Scheduler struct {
	CheckIntervalSec int `mapstructure:"check_interval_sec"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type CatalogEntry struct {
	Code   string `mapstructure:"code"`
	Name   string `mapstructure:"name"`
	Symbol string `mapstructure:"symbol"`
}

// Catalog overrides the built-in currency list when non-empty.
type Catalog struct {
	Currencies []CatalogEntry `mapstructure:"currencies"`
}

type Selection struct {
	Base     string   `mapstructure:"base"`
	Defaults []string `mapstructure:"defaults"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RatesAPI   RatesAPI   `mapstructure:"rates_api"`
	Quota      Quota      `mapstructure:"quota"`
	Cache      Cache      `mapstructure:"cache"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Logging    Logging    `mapstructure:"logging"`
	Catalog    Catalog    `mapstructure:"catalog"`
	Selection  Selection  `mapstructure:"selection"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the yaml file at path and applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.refresh_rate_limit", "10-M")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rates_api.provider", ProviderFrankfurter)
	v.SetDefault("quota.daily_limit", 48)
	v.SetDefault("quota.monthly_limit", 1500)
	v.SetDefault("quota.reset_day", 1)
	v.SetDefault("cache.max_items", 64)
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("scheduler.check_interval_sec", 900)
	v.SetDefault("logging.level", "info")
	v.SetDefault("selection.base", "USD")
	v.SetDefault("selection.defaults", []string{"USD", "EUR", "GBP"})

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rates api env vars
	_ = v.BindEnv("rates_api.provider", "RATES_API_PROVIDER")
	_ = v.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = v.BindEnv("rates_api.api_key", "RATES_API_KEY")

	_ = v.BindEnv("quota.daily_limit", "QUOTA_DAILY_LIMIT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.RatesAPI.Provider {
	case ProviderFrankfurter:
	case ProviderExchangeRate:
		if c.RatesAPI.APIKey == "" {
			return errors.New("rates_api.api_key is required for the exchangerate provider")
		}
	default:
		return fmt.Errorf("unknown rates_api.provider %q", c.RatesAPI.Provider)
	}
	if c.Quota.DailyLimit <= 0 {
		return fmt.Errorf("quota.daily_limit must be positive, got %d", c.Quota.DailyLimit)
	}
	if c.Quota.ResetDay < 1 || c.Quota.ResetDay > 31 {
		return fmt.Errorf("quota.reset_day must be within 1..31, got %d", c.Quota.ResetDay)
	}
	return nil
}
