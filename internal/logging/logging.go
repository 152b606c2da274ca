// Package logging sends logrus output to a file, since the terminal
// belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/config"
)

// Setup configures the standard logrus logger from cfg. The returned
// closer releases the log file. levelOverride, when set, wins over the
// configured level.
func Setup(cfg config.LogConfig, levelOverride string) (io.Closer, error) {
	return setup(logrus.StandardLogger(), cfg, levelOverride)
}

func setup(log *logrus.Logger, cfg config.LogConfig, levelOverride string) (io.Closer, error) {
	name := cfg.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(level)
	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return f, nil
}
