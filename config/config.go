package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port     string
	DBPath   string
	AuthUser string
	AuthPass string
	LogLevel string
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Unset values fall back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "./data/schoolfees.db")
	v.SetDefault("auth_user", "")
	v.SetDefault("auth_pass", "")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	return Config{
		Port:     v.GetString("port"),
		DBPath:   v.GetString("db_path"),
		AuthUser: v.GetString("auth_user"),
		AuthPass: v.GetString("auth_pass"),
		LogLevel: v.GetString("log_level"),
	}
}

// SlogLevel maps the configured level name onto slog's levels.
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
