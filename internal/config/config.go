// Package config loads the player settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// DefaultSource is played when neither the command line nor a config
// file names a source.
const DefaultSource = "https://s3-us-west-2.amazonaws.com/demovideosforvideoplayertest/Stephen_Curry_Highlights.mp4"

// DefaultSeekStep is the slider nudge in seconds.
const DefaultSeekStep = 5.0

type Config struct {
	Source       string  `koanf:"source"`
	SeekStep     float64 `koanf:"seek_step"` // seconds per shift+arrow
	NotifyErrors bool    `koanf:"notify_errors"`
	MPRIS        *bool   `koanf:"mpris"` // default: true

	Log LogConfig `koanf:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `koanf:"file"`
	Level string `koanf:"level"` // logrus level name (default: info)
	JSON  bool   `koanf:"json"`
}

// Load reads the config files in priority order, later files overriding
// earlier ones, and applies defaults. An explicit path replaces the search.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, err
		}
		paths = []string{explicit}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	c.Source = strings.TrimSpace(c.Source)
	if c.Source == "" {
		c.Source = DefaultSource
	}
	c.Source = expandPath(c.Source)

	if c.SeekStep <= 0 {
		c.SeekStep = DefaultSeekStep
	}

	if c.Log.Level == "" {
		c.Log.Level = logrus.InfoLevel.String()
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.Log.File == "" {
		path, err := xdg.StateFile(filepath.Join("reel", "reel.log"))
		if err != nil {
			return fmt.Errorf("log.file: %w", err)
		}
		c.Log.File = path
	}
	c.Log.File = expandPath(c.Log.File)
	return nil
}

// MPRISEnabled reports whether the MPRIS server should run.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/reel/config.toml, usually ~/.config/reel
	paths = append(paths, filepath.Join(xdg.ConfigHome, "reel", "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// expandPath replaces a leading "~" or "~/" with the home directory.
// Other users' homes ("~name/...") are left alone.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path[1:])
	}
	return path
}
