// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port               int
	AllowedOrigin      string
	DefaultTimeLimitMs int
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("classpulse", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.AllowedOrigin, "o", "", "Allowed CORS/WebSocket origin")
	fs.IntVar(&cfg.DefaultTimeLimitMs, "t", 0, "Default poll time limit in milliseconds")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 10000 // default
		}
	}

	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = os.Getenv("ALLOWED_ORIGIN")
		if cfg.AllowedOrigin == "" {
			cfg.AllowedOrigin = "*"
		}
	}

	if cfg.DefaultTimeLimitMs == 0 {
		if limitStr := os.Getenv("DEFAULT_TIME_LIMIT_MS"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil {
				return Config{}, errors.New("invalid DEFAULT_TIME_LIMIT_MS env variable")
			}
			cfg.DefaultTimeLimitMs = limit
		} else {
			cfg.DefaultTimeLimitMs = 60000 // one minute
		}
	}
	if cfg.Port <= 0 {
		return Config{}, errors.New("port must be positive")
	}
	if cfg.DefaultTimeLimitMs < 0 {
		return Config{}, errors.New("default time limit must be positive")
	}

	return cfg, nil
}
