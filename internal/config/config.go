// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, validates
// that required values are present so the app fails fast on bad or
// missing config, and applies sane defaults for optional fields.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment, if one exists, before env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Env vars use the CAPTURE_ prefix with "." as the nesting delimiter,
// e.g. CAPTURE_SERVER.PORT -> server.port -> Config.Server.Port.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// Timezone is the local zone used to stamp user registration times.
	// Capture timestamps are always UTC regardless of this setting.
	Timezone string `koanf:"timezone"`

	// Metrics toggles the Prometheus /metrics endpoint.
	Metrics bool `koanf:"metrics"`
}

// DatabaseConfig contains SQLite storage parameters.
type DatabaseConfig struct {
	// Path is the database file path, or a file: DSN for special
	// cases like in-memory databases in tests.
	Path string `koanf:"path" validate:"required"`

	// BusyTimeoutMS is how long a statement waits on a locked
	// database before failing, in milliseconds.
	BusyTimeoutMS int `koanf:"busy_timeout_ms"`
}

// AuthConfig controls credential handling.
//
// HashPasswords defaults to false: the documented API contract stores
// and returns credentials verbatim, which is preserved unless
// explicitly switched on. See DESIGN.md.
type AuthConfig struct {
	HashPasswords bool `koanf:"hash_passwords"`
	BcryptCost    int  `koanf:"bcrypt_cost"`
}

// Defaults applied after unmarshal, before validation.
const (
	DefaultPort          = "5000"
	DefaultTimezone      = "Asia/Kolkata"
	DefaultDatabasePath  = "capture.db"
	DefaultBusyTimeoutMS = 5000
	DefaultReadTimeout   = 10
	DefaultWriteTimeout  = 10
	DefaultIdleTimeout   = 60
)

// Load reads, validates, and defaults the application configuration.
//
// It logs fatally on malformed or incomplete config: there is no
// sensible way to continue without a valid environment.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("CAPTURE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CAPTURE_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	applyDefaults(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Timezone == "" {
		cfg.Server.Timezone = DefaultTimezone
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Database.BusyTimeoutMS == 0 {
		cfg.Database.BusyTimeoutMS = DefaultBusyTimeoutMS
	}
}
