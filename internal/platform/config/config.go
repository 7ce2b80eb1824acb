// Package config resolves the server's runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPort is used when PORT is unset or empty.
const DefaultPort = 3000

// Config holds the server's runtime settings.
type Config struct {
	Port int
}

// Addr returns the listen address for all interfaces on Port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load reads an optional .env file from the working directory, then resolves
// PORT. Variables already present in the environment take precedence over
// the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves the configuration from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	port, err := parsePort(getenv("PORT"))
	if err != nil {
		return Config{}, err
	}
	return Config{Port: port}, nil
}

func parsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %d: must be between 1 and 65535", port)
	}
	return port, nil
}
