// Package config loads server settings from the environment, an optional
// .env file and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server.
type Config struct {
	Addr            string        `env:"MEDIDESK_ADDR" envDefault:":8080"`
	DatabaseURL     string        `env:"MEDIDESK_DATABASE_URL"`
	AuthSecret      string        `env:"MEDIDESK_AUTH_SECRET"`
	SessionTTL      time.Duration `env:"MEDIDESK_SESSION_TTL" envDefault:"24h"`
	CookieSecure    bool          `env:"MEDIDESK_COOKIE_SECURE" envDefault:"false"`
	LoginWindow     time.Duration `env:"MEDIDESK_LOGIN_WINDOW" envDefault:"15m"`
	LoginMaxFails   int           `env:"MEDIDESK_LOGIN_MAX_FAILS" envDefault:"5"`
	LoginBlockFor   time.Duration `env:"MEDIDESK_LOGIN_BLOCK_FOR" envDefault:"15m"`
	ShutdownTimeout time.Duration `env:"MEDIDESK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DBMaxConns      int32         `env:"MEDIDESK_DB_MAX_CONNS" envDefault:"10"`
	Dev             bool          `env:"MEDIDESK_DEV" envDefault:"false"`

	SMTP SMTP
}

// SMTP is read for completeness; no component sends mail.
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
}

// Load reads .env (when present), the process environment and then args.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.ToMap(os.Environ()), args)
}

func parse(environ map[string]string, args []string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("medidesk", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DatabaseURL, "dsn", cfg.DatabaseURL, "PostgreSQL DSN")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development logging")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.DatabaseURL == "":
		return errors.New("config: MEDIDESK_DATABASE_URL (or -dsn) is required")
	case c.AuthSecret == "":
		return errors.New("config: MEDIDESK_AUTH_SECRET is required")
	case c.SessionTTL <= 0:
		return errors.New("config: MEDIDESK_SESSION_TTL must be positive")
	}
	return nil
}
