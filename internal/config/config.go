package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/reservd/internal/reservation"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	MinStayDays  int
	MaxStayDays  int
	MinPartySize int
	MaxPartySize int

	LogLevel  string
	LogFormat string
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    envDefault("HTTP_ADDR", ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:    envDefault("LOG_LEVEL", "info"),
		LogFormat:   envDefault("LOG_FORMAT", "text"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.MinStayDays, err = envInt("MIN_STAY_DAYS", reservation.DefaultMinStayDays); err != nil {
		return cfg, err
	}
	if cfg.MaxStayDays, err = envInt("MAX_STAY_DAYS", reservation.DefaultMaxStayDays); err != nil {
		return cfg, err
	}
	if cfg.MinPartySize, err = envInt("MIN_PARTY_SIZE", reservation.DefaultMinPartySize); err != nil {
		return cfg, err
	}
	if cfg.MaxPartySize, err = envInt("MAX_PARTY_SIZE", reservation.DefaultMaxPartySize); err != nil {
		return cfg, err
	}

	if cfg.MinStayDays < 1 || cfg.MaxStayDays < cfg.MinStayDays {
		return cfg, fmt.Errorf("invalid stay bounds %d..%d", cfg.MinStayDays, cfg.MaxStayDays)
	}
	if cfg.MinPartySize < 1 || cfg.MaxPartySize < cfg.MinPartySize {
		return cfg, fmt.Errorf("invalid party bounds %d..%d", cfg.MinPartySize, cfg.MaxPartySize)
	}
	return cfg, nil
}

// Rules builds the booking rules this process enforces.
func (c Config) Rules() reservation.Rules {
	r := reservation.DefaultRules()
	r.MinStayDays = c.MinStayDays
	r.MaxStayDays = c.MaxStayDays
	r.MinPartySize = c.MinPartySize
	r.MaxPartySize = c.MaxPartySize
	return r
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func envInt(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
