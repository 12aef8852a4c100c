// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Session   SessionConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       Log
	RateLimit RateLimitConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

// BackendConfig points to the REST API that owns products and users.
type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8000/api/v1"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// SessionStore selects the session backend.
type SessionStore string

const (
	SessionStoreGorm   SessionStore = "gorm"
	SessionStoreRedis  SessionStore = "redis"
	SessionStoreMemory SessionStore = "memory"
)

// SessionConfig holds cookie and storage settings.
type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET" envDefault:"devsessionsecret"`
	Store        SessionStore  `env:"SESSION_STORE" envDefault:"gorm"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	PruneEvery   time.Duration `env:"SESSION_PRUNE_INTERVAL" envDefault:"10m"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// DatabaseConfig holds the session database settings. DSN wins over the
// discrete postgres fields when set.
type DatabaseConfig struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DSNOverride string `env:"DATABASE_DSN"`
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        int    `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"shop"`
	Password    string `env:"DB_PASSWORD" envDefault:"shop"`
	Name        string `env:"DB_NAME" envDefault:"shop"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	Migrations  bool   `env:"MIGRATIONS" envDefault:"true"`
	Debug       bool   `env:"DB_DEBUG" envDefault:"false"`
}

// RedisConfig is used when SESSION_STORE=redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RateLimitConfig throttles POST /login and POST /register per client IP.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool `env:"DEV" envDefault:"false"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	if d.Driver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
		)
	}
	return "shop.db"
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// MigrationURL returns the URL golang-migrate should use: the DSN override
// when set, converted from key=value form if needed, else URL().
func (d DatabaseConfig) MigrationURL() (string, error) {
	dsn := strings.TrimSpace(d.DSNOverride)
	switch {
	case dsn == "":
		return d.URL(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return dsn, nil
	}
	kv, err := parseKeyValueDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("DATABASE_DSN: %w", err)
	}
	u := url.URL{Scheme: "postgres", Host: kv["host"]}
	if port := kv["port"]; port != "" {
		u.Host = net.JoinHostPort(kv["host"], port)
	}
	if user := kv["user"]; user != "" {
		if pw, ok := kv["password"]; ok {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}
	if name := kv["dbname"]; name != "" {
		u.Path = "/" + name
	}
	q := url.Values{}
	for k, v := range kv {
		switch k {
		case "host", "port", "user", "password", "dbname":
		default:
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseKeyValueDSN reads libpq "key=value" pairs. Values may be single
// quoted, with backslash escaping a quote or backslash.
func parseKeyValueDSN(dsn string) (map[string]string, error) {
	out := map[string]string{}
	i := 0
	for {
		for i < len(dsn) && dsn[i] == ' ' {
			i++
		}
		if i >= len(dsn) {
			return out, nil
		}
		eq := strings.IndexByte(dsn[i:], '=')
		if eq < 0 {
			return nil, fmt.Errorf("missing '=' after %q", dsn[i:])
		}
		key := strings.TrimSpace(dsn[i : i+eq])
		if key == "" || strings.ContainsRune(key, ' ') {
			return nil, fmt.Errorf("invalid key %q", key)
		}
		i += eq + 1
		for i < len(dsn) && dsn[i] == ' ' {
			i++
		}
		var val strings.Builder
		if i < len(dsn) && dsn[i] == '\'' {
			i++
			closed := false
			for i < len(dsn) {
				c := dsn[i]
				if c == '\\' && i+1 < len(dsn) {
					val.WriteByte(dsn[i+1])
					i += 2
					continue
				}
				i++
				if c == '\'' {
					closed = true
					break
				}
				val.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quote for %q", key)
			}
		} else {
			for i < len(dsn) && dsn[i] != ' ' {
				if dsn[i] == '\\' && i+1 < len(dsn) {
					i++
				}
				val.WriteByte(dsn[i])
				i++
			}
		}
		out[key] = val.String()
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case SessionStoreGorm, SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver)
	}
	if !c.App.Dev && c.Session.Secret == "devsessionsecret" {
		return fmt.Errorf("SESSION_SECRET must be set outside dev mode")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Database.Driver == "postgres" && c.Database.Migrations {
		if _, err := c.Database.MigrationURL(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads configuration from environment variables.
// Defaults target local development against the backend on :8000.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
