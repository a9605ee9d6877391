// SPDX-License-Identifier: MPL-2.0

// Package config loads the devaux tool configuration: defaults, an
// optional TOML file in the user's config directory, and DEVAUX_*
// environment overrides, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "devaux"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

type (
	// Config is the full tool configuration.
	Config struct {
		// ClangFormat configures the format subcommand's formatter binary.
		ClangFormat ClangFormatConfig `mapstructure:"clang_format"`
		// Docs configures the sync-docs subcommand's endpoints.
		Docs DocsConfig `mapstructure:"docs"`
	}

	// ClangFormatConfig selects the clang-format binary and vintage.
	ClangFormatConfig struct {
		// Path is the clang-format binary (default: found on PATH).
		Path string `mapstructure:"path"`
		// ExpectedVersion is the required version prefix; empty disables
		// the check.
		ExpectedVersion string `mapstructure:"expected_version"`
	}

	// DocsConfig selects the documentation site endpoints.
	DocsConfig struct {
		// BaseURL is the published documentation root.
		BaseURL string `mapstructure:"base_url"`
		// JQueryURL is the jquery script injected into rendered pages.
		JQueryURL string `mapstructure:"jquery_url"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ClangFormat: ClangFormatConfig{
			Path:            "clang-format",
			ExpectedVersion: "",
		},
		Docs: DocsConfig{
			BaseURL:   "https://www.freedesktop.org/software/systemd/man/",
			JQueryURL: "https://code.jquery.com/jquery-3.7.1.min.js",
		},
	}
}

// ConfigDir returns the devaux configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. pathOverride, when non-empty, names an
// explicit config file that must exist; otherwise the standard location is
// tried and a missing file simply yields the defaults.
func Load(pathOverride string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("clang_format.path", defaults.ClangFormat.Path)
	v.SetDefault("clang_format.expected_version", defaults.ClangFormat.ExpectedVersion)
	v.SetDefault("docs.base_url", defaults.Docs.BaseURL)
	v.SetDefault("docs.jquery_url", defaults.Docs.JQueryURL)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if pathOverride != "" {
		v.SetConfigFile(pathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", pathOverride, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
