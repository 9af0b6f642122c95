package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

var ErrInvalidValue = errors.New("invalid config value")

type Config struct {
	HTTP    HTTP
	Log     Log
	Session Session
	Booking Booking
}

type HTTP struct {
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	AllowedOrigins    []string
}

type Log struct {
	Level       string
	Development bool
	File        string
}

type Session struct {
	Store    string
	RedisURL string
	TTL      time.Duration
}

type Booking struct {
	StrictSteps bool
}

// Load reads the optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	r := reader{}

	//nolint:gomnd
	conf := &Config{
		HTTP: HTTP{
			Host:              r.str("HTTP_HOST", "localhost"),
			Port:              r.str("HTTP_PORT", "8092"),
			ReadHeaderTimeout: r.duration("HTTP_READ_HEADER_TIMEOUT", 20*time.Second),
			AllowedOrigins:    r.list("CORS_ALLOWED_ORIGINS", []string{"http://*", "https://*"}),
		},
		Log: Log{
			Level:       r.str("LOG_LEVEL", "info"),
			Development: r.boolean("LOG_DEVELOPMENT", false),
			File:        r.str("LOG_FILE", ""),
		},
		Session: Session{
			Store:    r.str("SESSION_STORE", SessionStoreMemory),
			RedisURL: r.str("REDIS_URL", ""),
			TTL:      r.duration("SESSION_TTL", 24*time.Hour),
		},
		Booking: Booking{
			StrictSteps: r.boolean("BOOKING_STRICT_STEPS", false),
		},
	}

	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis session store: %w", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("SESSION_STORE %q: %w", c.Session.Store, ErrInvalidValue)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive: %w", ErrInvalidValue)
	}

	return nil
}

type reader struct {
	errs []error
}

func (r *reader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	return def
}

func (r *reader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, v, ErrInvalidValue))

		return def
	}

	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, v, ErrInvalidValue))

		return def
	}

	return d
}

func (r *reader) list(key string, def []string) []string {
	v := r.str(key, "")
	if v == "" {
		return def
	}

	var out []string

	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
