// Package logging builds the application's zap logger. The terminal belongs
// to the UI, so output always goes to a file.
package logging

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // console, json
	OutputPath string // file path
}

// New builds a logger writing to cfg.OutputPath. An unknown level falls back
// to info.
func New(cfg Config) (*zap.Logger, error) {
	path := strings.TrimSpace(cfg.OutputPath)
	switch path {
	case "":
		return nil, errors.New("log output path is empty")
	case "-", "stdout", "stderr":
		return nil, errors.New("log output cannot share the terminal with the UI")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var config zap.Config
	if cfg.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.Development = false
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}

	return config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}
