package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// DefaultOwnerID is the distinguished user allowed to request links.
// Overridable through OWNER_ID.
const DefaultOwnerID int64 = 672104927

// LinkPathSegment is the fixed path segment public links are served under.
const LinkPathSegment = "link"

// TelegramConfig defines the structure for Telegram-related configuration.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	OwnerID  int64  `mapstructure:"owner_id"`
}

// Config is the immutable global configuration, loaded once at startup
// and injected into every component.
type Config struct {
	App struct {
		Port        string `mapstructure:"port"`
		Environment string `mapstructure:"environment"`
		BaseURL     string `mapstructure:"base_url"`
	} `mapstructure:"app"`

	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`

	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`

	Telegram TelegramConfig `mapstructure:"telegram"`

	Sponsors struct {
		Links string `mapstructure:"links"`
	} `mapstructure:"sponsors"`
}

// Load reads configuration from an optional config file merged with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()

	v.BindEnv("app.port", "PORT")
	v.BindEnv("app.environment", "ENVIRONMENT")
	v.BindEnv("app.base_url", "BASE_URL")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.owner_id", "OWNER_ID")
	v.BindEnv("sponsors.links", "SPONSOR_LINKS")

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("telegram.owner_id", DefaultOwnerID)

	if path != "" {
		// The config file is optional, env vars alone are enough.
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	cfg.App.BaseURL = strings.TrimRight(cfg.App.BaseURL, "/")
	return &cfg, nil
}

// SponsorLinks parses the raw sponsor list into a deduplicated,
// order-preserving slice. Entries may be separated by commas, spaces or
// newlines.
func (c *Config) SponsorLinks() []string {
	return ParseSponsorLinks(c.Sponsors.Links)
}

func ParseSponsorLinks(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	seen := make(map[string]struct{}, len(fields))
	links := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		links = append(links, f)
	}
	return links
}
