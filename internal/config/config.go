package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Env holds deployment settings bound from environment variables only.
// Credentials never live in the YAML file.
type Env struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
	Port     string `envconfig:"PORT" default:"8080"`
}

// Config holds all application configuration.
type Config struct {
	Env Env `yaml:"-"`

	Watchlist struct {
		File string `yaml:"file"`
	} `yaml:"watchlist"`
	DataSource struct {
		BaseURL        string `yaml:"base_url"` // empty selects Yahoo
		APIKey         string `yaml:"api_key"`
		Range          string `yaml:"range"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"data_source"`
	Alert struct {
		ThresholdPercent float64 `yaml:"threshold_percent"`
	} `yaml:"alert"`
	Market struct {
		Timezone   string `yaml:"timezone"`
		Open       string `yaml:"open"`
		Close      string `yaml:"close"`
		WeekWindow int    `yaml:"week_window"`
	} `yaml:"market"`
	Schedule struct {
		CheckCron           string `yaml:"check_cron"`
		InitialDelaySeconds int    `yaml:"initial_delay_seconds"`
		SymbolDelayMillis   int    `yaml:"symbol_delay_millis"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then binds environment settings.
// A .env file is loaded first when present; its absence is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg.Env); err != nil {
		return nil, fmt.Errorf("bind environment: %w", err)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "symbols.txt"
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "3mo"
	}
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 12
	}
	if cfg.Alert.ThresholdPercent == 0 {
		cfg.Alert.ThresholdPercent = 2.5
	}
	if cfg.Market.Timezone == "" {
		cfg.Market.Timezone = "Asia/Kolkata"
	}
	if cfg.Market.Open == "" {
		cfg.Market.Open = "09:15"
	}
	if cfg.Market.Close == "" {
		cfg.Market.Close = "15:30"
	}
	if cfg.Market.WeekWindow == 0 {
		cfg.Market.WeekWindow = 5
	}
	if cfg.Schedule.CheckCron == "" {
		cfg.Schedule.CheckCron = "0 */15 * * * *"
	}
	if cfg.Schedule.InitialDelaySeconds == 0 {
		cfg.Schedule.InitialDelaySeconds = 10
	}
	if cfg.Schedule.SymbolDelayMillis == 0 {
		cfg.Schedule.SymbolDelayMillis = 1000
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Env.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Env.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if c.Alert.ThresholdPercent <= 0 {
		return fmt.Errorf("alert.threshold_percent must be positive")
	}
	if c.Market.WeekWindow < 2 {
		return fmt.Errorf("market.week_window must be at least 2")
	}
	return nil
}
