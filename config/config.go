package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerConfig
	DBConfig
	NotifierConfig
	ReminderConfig
}

// ServerConfig holds the HTTP settings. The phone lookup cache is flushed only
// by an in-process seed, so after a separate -seed run a live server may serve
// wiped customers until PhoneCache expires them. PHONE_CACHE_TTL=0 disables it.
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	AuditLogPath string        `envconfig:"AUDIT_LOG_PATH" default:"logs/laundry.log"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS"`
	SlowRequest  time.Duration `envconfig:"SLOW_REQUEST" default:"200ms"`
	PhoneCache   time.Duration `envconfig:"PHONE_CACHE_TTL" default:"5m"`
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	URL    string `envconfig:"DB_URL" default:"laundry.db" masked:"true"`
}

type NotifierConfig struct {
	Kind           string `envconfig:"NOTIFIER" default:"log"`
	AccountSID     string `envconfig:"TWILIO_ACCOUNT_SID" masked:"true"`
	AuthToken      string `envconfig:"TWILIO_AUTH_TOKEN" masked:"true"`
	FromNumber     string `envconfig:"TWILIO_PHONE_NUMBER"`
	WhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`
	ReadyMessage   string `envconfig:"READY_MESSAGE" default:"Dear [CustomerName], your laundry is ready. Shelf code: [ShelfCode]"`
}

type ReminderConfig struct {
	Schedule string `envconfig:"REMINDER_CRON"`
	Message  string `envconfig:"REMINDER_MESSAGE" default:"Dear [CustomerName], your laundry is still waiting for you on shelf [ShelfCode]"`
}

// Load reads an optional .env file at path and then the process environment.
// A missing .env file is not an error; the returned bool reports whether one
// was loaded.
func Load(path string) (*Config, bool, error) {
	loaded := false
	if path != "" {
		if err := godotenv.Load(path); err == nil {
			loaded = true
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, loaded, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, loaded, err
	}
	return &cfg, loaded, nil
}

func (c *Config) Validate() error {
	switch c.DBConfig.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBConfig.Driver)
	}

	switch c.NotifierConfig.Kind {
	case NotifierLog:
	case NotifierTwilio:
		if c.AccountSID == "" || c.AuthToken == "" || c.FromNumber == "" {
			return fmt.Errorf("twilio notifier requires TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER")
		}
	default:
		return fmt.Errorf("unsupported NOTIFIER %q", c.NotifierConfig.Kind)
	}
	return nil
}

const (
	NotifierLog    = "log"
	NotifierTwilio = "twilio"
)
