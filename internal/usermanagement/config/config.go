// Package config loads service settings from a YAML file, then applies
// overrides from a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the YAML file lives relative to the repository root.
var DefaultPath = filepath.Join("internal", "usermanagement", "config", "config.yaml")

type Config struct {
	AppName            string        `yaml:"APP_NAME"`
	Env                string        `yaml:"ENV"`
	HTTPPort           int           `yaml:"HTTP_PORT"`
	DBHost             string        `yaml:"DB_HOST"`
	DBPort             int           `yaml:"DB_PORT"`
	DBUser             string        `yaml:"DB_USER"`
	DBPassword         string        `yaml:"DB_PASSWORD"`
	DBName             string        `yaml:"DB_NAME"`
	DBSSLMode          string        `yaml:"DB_SSLMODE"`
	DBMaxOpenConns     int           `yaml:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns     int           `yaml:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime  time.Duration `yaml:"DB_CONN_MAX_LIFETIME"`
	DBConnectTimeout   time.Duration `yaml:"DB_CONNECT_TIMEOUT"`
	KafkaBrokers       []string      `yaml:"KAFKA_BROKERS"`
	Topic              string        `yaml:"TOPIC"`
	JWTSecret          string        `yaml:"JWT_SECRET"`
	AuthRequired       bool          `yaml:"AUTH_REQUIRED"`
	RedisAddr          string        `yaml:"REDIS_ADDR"`
	RedisPassword      string        `yaml:"REDIS_PASSWORD"`
	RedisDB            int           `yaml:"REDIS_DB"`
	RateLimitPerMinute int           `yaml:"RATE_LIMIT_PER_MINUTE"`
	CORSAllowedOrigins []string      `yaml:"CORS_ALLOWED_ORIGINS"`
	SeedOnStart        bool          `yaml:"SEED_ON_START"`
	BcryptCost         int           `yaml:"BCRYPT_COST"`
}

func defaults() Config {
	return Config{
		AppName:            "UserManagement",
		Env:                "production",
		HTTPPort:           8080,
		DBHost:             "localhost",
		DBPort:             5432,
		DBUser:             "postgres",
		DBName:             "usermanagement",
		DBSSLMode:          "disable",
		DBMaxOpenConns:     25,
		DBMaxIdleConns:     5,
		DBConnMaxLifetime:  30 * time.Minute,
		DBConnectTimeout:   time.Minute,
		Topic:              "usermanagement.events",
		RateLimitPerMinute: 60,
		BcryptCost:         10,
	}
}

// Load reads path (or CONFIG_PATH, or DefaultPath when both are empty). A
// missing file is not an error; environment variables win over the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	env := envReader{}
	env.getenv("APP_NAME", &cfg.AppName)
	env.getenv("ENV", &cfg.Env)
	env.getint("HTTP_PORT", &cfg.HTTPPort)
	env.getenv("DB_HOST", &cfg.DBHost)
	env.getint("DB_PORT", &cfg.DBPort)
	env.getenv("DB_USER", &cfg.DBUser)
	env.getenv("DB_PASSWORD", &cfg.DBPassword)
	env.getenv("DB_NAME", &cfg.DBName)
	env.getenv("DB_SSLMODE", &cfg.DBSSLMode)
	env.getint("DB_MAX_OPEN_CONNS", &cfg.DBMaxOpenConns)
	env.getint("DB_MAX_IDLE_CONNS", &cfg.DBMaxIdleConns)
	env.getdur("DB_CONN_MAX_LIFETIME", &cfg.DBConnMaxLifetime)
	env.getdur("DB_CONNECT_TIMEOUT", &cfg.DBConnectTimeout)
	env.getlist("KAFKA_BROKERS", &cfg.KafkaBrokers)
	env.getenv("TOPIC", &cfg.Topic)
	env.getenv("JWT_SECRET", &cfg.JWTSecret)
	env.getbool("AUTH_REQUIRED", &cfg.AuthRequired)
	env.getenv("REDIS_ADDR", &cfg.RedisAddr)
	env.getenv("REDIS_PASSWORD", &cfg.RedisPassword)
	env.getint("REDIS_DB", &cfg.RedisDB)
	env.getint("RATE_LIMIT_PER_MINUTE", &cfg.RateLimitPerMinute)
	env.getlist("CORS_ALLOWED_ORIGINS", &cfg.CORSAllowedOrigins)
	env.getbool("SEED_ON_START", &cfg.SeedOnStart)
	env.getint("BCRYPT_COST", &cfg.BcryptCost)
	if len(env.errs) > 0 {
		return nil, errors.Join(env.errs...)
	}

	if cfg.AuthRequired && cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_REQUIRED is set but JWT_SECRET is empty")
	}
	return &cfg, nil
}

// IsDevelopment reports whether ENV selects the development logger.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// envReader applies set variables and remembers malformed ones.
type envReader struct {
	errs []error
}

func (r *envReader) getenv(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func (r *envReader) getint(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("invalid int for %s: %w", key, err))
			return
		}
		*dst = i
	}
}

func (r *envReader) getbool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("invalid boolean for %s: %w", key, err))
			return
		}
		*dst = b
	}
}

func (r *envReader) getdur(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("invalid duration for %s: %w", key, err))
			return
		}
		*dst = d
	}
}

// getlist splits a comma-separated value, dropping empty entries.
func (r *envReader) getlist(key string, dst *[]string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}
