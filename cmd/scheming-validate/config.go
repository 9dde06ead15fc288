package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// config is read from the environment (and an optional .env file); flags
// override it.
type config struct {
	Schema      string `env:"SCHEMING_SCHEMA"`
	LogLevel    string `env:"SCHEMING_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"SCHEMING_LOG_FORMAT" envDefault:"text"`
	Interactive bool   `env:"SCHEMING_INTERACTIVE" envDefault:"false"`
}

func loadConfig() (config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("config: log format %q must be text or json", cfg.LogFormat)
	}
	return logger, nil
}
