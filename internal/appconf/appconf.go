// Package appconf holds the service configuration, loaded from an optional
// YAML file with environment-variable and flag overrides layered on top.
package appconf

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment is the operating environment the service runs in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the -env flag value to an Environment,
// defaulting to Development for unknown values.
func EnvFlagToEnvironment(env string) Environment {
	switch env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all the configuration settings for the service.
type Config struct {
	Port         int    `yaml:"port"`
	EnvName      string `yaml:"env"`
	DBPath       string `yaml:"db_path"`
	OSMFile      string `yaml:"osm_file"`
	ScheduleFile string `yaml:"schedule_file"`
	LogLevel     string `yaml:"log_level"`

	Env Environment `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:     4000,
		EnvName:  "development",
		DBPath:   "citybus.db",
		LogLevel: "info",
	}
}

// Load reads the YAML config file at path over the defaults, then applies
// environment-variable overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CITYBUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("CITYBUS_ENV"); v != "" {
		c.EnvName = v
	}
	if v := os.Getenv("CITYBUS_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CITYBUS_OSM_FILE"); v != "" {
		c.OSMFile = v
	}
	if v := os.Getenv("CITYBUS_SCHEDULE_FILE"); v != "" {
		c.ScheduleFile = v
	}
	if v := os.Getenv("CITYBUS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// SlogLevel translates the configured log level name.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
