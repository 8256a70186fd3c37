package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config holds CLI defaults read from the environment. Flags override it.
type config struct {
	TemplatesDir string `env:"FORMFIELDS_TEMPLATES_DIR"`
	LogLevel     string `env:"FORMFIELDS_LOG_LEVEL" envDefault:"warn"`
	Verbose      bool   `env:"FORMFIELDS_VERBOSE"`
}

// loadConfig reads an optional .env file and then the process environment.
func loadConfig(envFiles ...string) (config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load(envFiles...)

	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("formfields: parse environment: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	level := zapcore.WarnLevel
	if raw := strings.TrimSpace(cfg.LogLevel); raw != "" {
		parsed, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("formfields: log level %q: %w", raw, err)
		}
		level = parsed
	}
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
