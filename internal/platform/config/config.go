package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the server configuration read from the environment.
type Settings struct {
	Port          string
	LogLevel      string
	LogFormat     string
	SwitchRetries int
	CamerasFile   string
}

// Load reads env files into the process environment without overriding
// variables that are already set. With no paths, ".env" is used. A missing
// file is reported as an error; callers may ignore it and run on the system
// environment.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// FromEnv builds Settings from PORT, LOG_LEVEL, LOG_FORMAT, SWITCH_RETRIES
// and CAMERAS_FILE, applying defaults for unset values.
func FromEnv(defaultSwitchRetries int) Settings {
	return Settings{
		Port:          GetEnv("PORT", "8080"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		LogFormat:     strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		SwitchRetries: GetEnvInt("SWITCH_RETRIES", defaultSwitchRetries),
		CamerasFile:   GetEnv("CAMERAS_FILE", ""),
	}
}

// Validate checks the settings for values the server cannot start with.
func (s Settings) Validate() error {
	port, err := strconv.Atoi(s.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT %q is not a valid port", s.Port)
	}
	if s.LogFormat != "json" && s.LogFormat != "text" {
		return errors.New("LOG_FORMAT must be 'json' or 'text'")
	}
	if s.SwitchRetries <= 0 {
		return errors.New("SWITCH_RETRIES must be a positive integer")
	}
	return nil
}

// GetEnv returns the value of the environment variable named by key, or
// fallback if it is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Values that do not parse yield fallback.
func GetEnvInt(key string, fallback int) int {
	if s := strings.TrimSpace(os.Getenv(key)); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
