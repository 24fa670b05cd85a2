// Package config содержит логику чтения конфигурации сайта «Золотой Улей».
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress        = "localhost:8080"
	defaultBookingCloseDelay = 2800 * time.Millisecond
)

// EnvFile — файл с переменными окружения, который читается при наличии.
var EnvFile = ".env"

// Config содержит параметры конфигурации сайта.
type Config struct {
	RunAddress        string        `env:"RUN_ADDRESS"`
	DatabaseURI       string        `env:"DATABASE_URI"`
	RedisAddress      string        `env:"REDIS_ADDRESS"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	CookieSecret      string        `env:"COOKIE_SECRET"`
	BookingCloseDelay time.Duration `env:"BOOKING_CLOSE_DELAY"`
	MaxPages          int           `env:"MAX_PAGES" envDefault:"10000"`
	PageIdleTTL       time.Duration `env:"PAGE_IDLE_TTL" envDefault:"30m"`
}

// Parse считывает конфигурацию из файла .env, флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envRedisAddress := cfg.RedisAddress
	envCookieSecret := cfg.CookieSecret
	envCloseDelay := cfg.BookingCloseDelay

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.RedisAddress, "r", "", "redis address")
	flag.StringVar(&cfg.CookieSecret, "s", "", "visitor cookie signing secret")
	flag.DurationVar(&cfg.BookingCloseDelay, "close-delay", defaultBookingCloseDelay, "booking dialog auto-close delay")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envRedisAddress != "" {
		cfg.RedisAddress = envRedisAddress
	}
	if envCookieSecret != "" {
		cfg.CookieSecret = envCookieSecret
	}
	if envCloseDelay > 0 {
		cfg.BookingCloseDelay = envCloseDelay
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.BookingCloseDelay <= 0 {
		cfg.BookingCloseDelay = defaultBookingCloseDelay
	}

	return cfg, nil
}
