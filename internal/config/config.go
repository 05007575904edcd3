// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and console modes.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`

	// Word sources. Empty paths use the embedded lists.
	StartWordsFile string `env:"WORDS_START_FILE"`
	DictionaryFile string `env:"DICTIONARY_FILE"`
	DictionaryDSN  string `env:"DICTIONARY_DSN"`
	Language       string `env:"DICTIONARY_LANG" envDefault:"en"`

	// Sessions.
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"scramble_session"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Production reports whether secure cookie settings should be used.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads the given .env files (missing ones are ignored) and parses
// the environment into a Config.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Load never overrides variables that are already set.
		_ = godotenv.Load(f)
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("parse env: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return c, nil
}
