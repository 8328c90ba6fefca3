package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis     Redis     `yaml:"redis"`
	Cache     Cache     `yaml:"cache"`
	RateLimit RateLimit `yaml:"rate-limit"`
	Engine    Engine    `yaml:"engine"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Cache struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"24h"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

type Engine struct {
	// DefaultComputer is used when a request does not name the computer player.
	// Empty means the mark with fewer cells on the board.
	DefaultComputer string `yaml:"default-computer" env:"ENGINE_DEFAULT_COMPUTER" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file at path, environment variables take precedence.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// LoadEnv - reads configuration from the environment only.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// ParseLevel - maps the log-level setting onto a slog level, info when unknown.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
