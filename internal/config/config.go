package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"LOG_FORMAT" envDefault:"console"`
	AllowedOrigin      string        `env:"ALLOWED_ORIGIN" envDefault:"*"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	Airtable Airtable
	Redis    Redis
	Submit   Submit
	Database Database
	Telegram Telegram
}

// Airtable credentials stay optional here: a missing key is reported by the
// submit endpoint on every request instead of preventing startup.
type Airtable struct {
	APIKey        string        `env:"AIRTABLE_API_KEY"`
	BaseID        string        `env:"AIRTABLE_BASE_ID"`
	TableName     string        `env:"AIRTABLE_TABLE_NAME" envDefault:"캠지기 모집 폼"`
	BaseURL       string        `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
	MaxRetryDelay time.Duration `env:"AIRTABLE_MAX_RETRY" envDefault:"10s"`
}

func (a Airtable) Configured() bool {
	return a.APIKey != "" && a.BaseID != ""
}

type Redis struct {
	Addr          string        `env:"REDIS_ADDR,required,notEmpty"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SubmitLockTTL time.Duration `env:"SUBMIT_LOCK_TTL" envDefault:"2m"`
}

const (
	SubmitModeHTTP = "http"
	SubmitModeStub = "stub"
)

type Submit struct {
	Mode      string        `env:"SUBMIT_MODE" envDefault:"http"`
	URL       string        `env:"SUBMIT_URL" envDefault:"http://localhost:8080/api/submit"`
	StubDelay time.Duration `env:"STUB_DELAY" envDefault:"1200ms"`
}

type Database struct {
	Host            string        `env:"DB_HOST"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

// Enabled reports whether the lead journal should be opened.
func (d Database) Enabled() bool {
	return d.Host != ""
}

type Telegram struct {
	Token     string  `env:"TELEGRAM_TOKEN"`
	ChannelID int64   `env:"TELEGRAM_CHANNEL_ID"`
	AdminIDs  []int64 `env:"ADMIN_IDS" envSeparator:","`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Submit.Mode {
	case SubmitModeHTTP, SubmitModeStub:
	default:
		return nil, fmt.Errorf("unknown SUBMIT_MODE %q", cfg.Submit.Mode)
	}

	if cfg.Database.Enabled() && (cfg.Database.User == "" || cfg.Database.Name == "") {
		return nil, fmt.Errorf("DB_USER and DB_NAME are required when DB_HOST is set")
	}

	return &cfg, nil
}
