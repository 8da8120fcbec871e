// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type RuntimeConfig struct {
	Dev bool
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"` // 0 disables the limiter
}

type BotConfig struct {
	Token        string          `yaml:"token"`
	Username     string          `yaml:"username"`
	Language     string          `yaml:"language"`      // locale file under i18n/locales
	Workers      int             `yaml:"workers"`       // polling workers
	HistoryDepth int             `yaml:"history_depth"` // messages deleted before answering a button
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port    int           `yaml:"port"`    // 0 disables the HTTP server
	APIKey  string        `yaml:"api_key"` // signs /api/v1/stats tokens; empty forbids the endpoint
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite|postgres
	Path     string `yaml:"path"`   // sqlite file
	URL      string `yaml:"url"`    // postgres DSN
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty disables caching and rate limiting
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type NewsConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type PaginationConfig struct {
	Labels pagination.Labels `yaml:"labels"`
}

type SchedulerConfig struct {
	WarmCron    string `yaml:"warm_cron"` // empty disables cache warming
	WarmWorkers int    `yaml:"warm_workers"`
}

type Config struct {
	Bot        BotConfig        `yaml:"bot"`
	Log        LogConfig        `yaml:"log"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	News       NewsConfig       `yaml:"news"`
	Pagination PaginationConfig `yaml:"pagination"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides. A missing file is fine as long as the environment supplies the token.
func LoadConfig(path string, dev bool) (*Config, error) {
	cfg, err := LoadUnvalidated(path, dev)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnvalidated is LoadConfig without Validate, for tools that do not talk
// to Telegram and so need no token.
func LoadUnvalidated(path string, dev bool) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var b []byte
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	cfg.Runtime.Dev = dev
	return cfg, nil
}

// Parse decodes YAML and fills defaults. It does not validate.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bot.Language == "" {
		c.Bot.Language = "en"
	}
	if c.Bot.Workers <= 0 {
		c.Bot.Workers = 8
	}
	if c.Bot.HistoryDepth < 0 {
		c.Bot.HistoryDepth = 0
	} else if c.Bot.HistoryDepth == 0 {
		c.Bot.HistoryDepth = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = 15 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/settings.db"
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 4
	}
	c.Redis.TTL = normalizeTTL(c.Redis.TTL)
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://e0x.dev/sixtieslife"
	}
	c.News.BaseURL = strings.TrimRight(c.News.BaseURL, "/")
	if c.News.Timeout <= 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.CacheTTL <= 0 {
		c.News.CacheTTL = 10 * time.Minute
	}
	if c.Scheduler.WarmWorkers <= 0 {
		c.Scheduler.WarmWorkers = 2
	}
}

func applyEnv(c *Config) {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.Bot.Token = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
		c.Database.Driver = DriverPostgres
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("HTTP_API_KEY"); v != "" {
		c.HTTP.APIKey = v
	}
	if v := os.Getenv("NEWS_BASE_URL"); v != "" {
		c.News.BaseURL = strings.TrimRight(v, "/")
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot.token is required (or BOT_TOKEN)")
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Scheduler.WarmCron != "" && !gronx.New().IsValid(c.Scheduler.WarmCron) {
		return fmt.Errorf("scheduler.warm_cron %q is not a valid cron expression", c.Scheduler.WarmCron)
	}
	return nil
}

// Validate checks the driver and its connection settings.
func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if d.URL == "" {
			return errors.New("database.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver %q is not supported", d.Driver)
	}
	return nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
