// Package config loads server settings from defaults, an optional TOML
// file, an optional .env file and the process environment, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DefaultJWTSecret is only acceptable outside production.
	DefaultJWTSecret = "dev-secret-change-me"
)

type Config struct {
	Port   int    `toml:"port"`
	DBPath string `toml:"db_path"`

	// session
	JWTSecret    string        `toml:"jwt_secret"`
	SessionTTL   time.Duration `toml:"session_ttl"`
	BcryptCost   int           `toml:"bcrypt_cost"`
	CookieSecure bool          `toml:"cookie_secure"`

	// logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// Env is not read from the TOML sections; it selects one.
	Env string `toml:"-"`
}

// Toml is the layout of the config file: one section per environment.
type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", EnvDevelopment:
		return t.Development, nil
	case "prod", EnvProduction:
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Defaults returns the built-in development settings.
func Defaults() *Config {
	return &Config{
		Port:       8080,
		DBPath:     "./data/health.db",
		JWTSecret:  DefaultJWTSecret,
		SessionTTL: 24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
		LogLevel:   "info",
		Env:        EnvDevelopment,
	}
}

// Load builds the configuration. Empty paths skip that layer, and a
// missing .env file is not an error.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	env := EnvDevelopment
	if v := os.Getenv("ENV"); v != "" {
		env = strings.ToLower(v)
	}

	t := &Toml{Development: Defaults(), Production: Defaults()}
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, t); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", configPath, err)
		}
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(env, "prod") {
		cfg.Env = EnvProduction
	} else {
		cfg.Env = EnvDevelopment
	}

	// A malformed variable leaves the previous value in place, so
	// Validate still checks everything else.
	if err := multierr.Append(cfg.applyEnv(), cfg.Validate()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs error
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("PORT: %w", err))
		} else {
			c.Port = port
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SESSION_TTL: %w", err))
		} else {
			c.SessionTTL = ttl
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("BCRYPT_COST: %w", err))
		} else {
			c.BcryptCost = cost
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("COOKIE_SECURE: %w", err))
		} else {
			c.CookieSecure = secure
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	return errs
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Port <= 0 || c.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DBPath == "" {
		errs = multierr.Append(errs, errors.New("db_path is required"))
	}
	if c.JWTSecret == "" {
		errs = multierr.Append(errs, errors.New("jwt_secret is required"))
	}
	if c.Env == EnvProduction && c.JWTSecret == DefaultJWTSecret {
		errs = multierr.Append(errs, errors.New("jwt_secret must be changed in production"))
	}
	if c.SessionTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("session_ttl %s must be positive", c.SessionTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = multierr.Append(errs, fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errs
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
