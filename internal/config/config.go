// Package config loads and saves cli-journal settings.
//
// Settings live in a YAML file (config.yaml) inside the directory returned by
// Dir. The file is read through viper so every key can be overridden from the
// environment with the CLI_JOURNAL_ prefix (for example CLI_JOURNAL_EXTENSION),
// and written back with yaml.v3. A missing file is not an error for callers
// that only need values: Load returns the defaults together with
// ErrNotConfigured.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/treykane/cli-journal/internal/logging"
)

const (
	appDirName     = "cli-journal"
	configFileName = "config.yaml"
	envPrefix      = "CLI_JOURNAL"

	// DefaultExtension is the markdown extension used to filter entries.
	DefaultExtension = ".md"
	// DefaultDateLayout encodes MM-DD-YYYY in Go reference-time notation.
	DefaultDateLayout = "01-02-2006"
	// DefaultGlamourStyle is the preview style when none is configured.
	DefaultGlamourStyle = "dark"
)

var ErrNotConfigured = errors.New("cli-journal is not configured")

var log = logging.New("config")

// Config stores user-defined cli-journal settings.
type Config struct {
	Extension    string `mapstructure:"extension" yaml:"extension"`
	DateLayout   string `mapstructure:"date_layout" yaml:"date_layout"`
	GlamourStyle string `mapstructure:"glamour_style" yaml:"glamour_style"`
	// DefaultDir is opened when no directory has been remembered yet.
	DefaultDir string `mapstructure:"default_dir" yaml:"default_dir,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Extension:    DefaultExtension,
		DateLayout:   DefaultDateLayout,
		GlamourStyle: DefaultGlamourStyle,
	}
}

// Dir returns the cli-journal configuration directory.
//
// Resolution:
//   - $CLI_JOURNAL_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/cli-journal if set
//   - %AppData%/cli-journal on Windows
//   - ~/.config/cli-journal on macOS and Linux
func Dir() string {
	if dir := os.Getenv("CLI_JOURNAL_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir := Dir()
	if dir == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(dir, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration. Environment overrides
// apply whether or not the file exists; when it does not, the returned
// Config is still usable and the error is ErrNotConfigured.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}

	v := newViper()
	exists, err := Exists()
	if err != nil {
		return Defaults(), err
	}
	if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Defaults(), fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config: %w", err)
	}
	cfg, err = cfg.normalize()
	if err != nil {
		return Defaults(), err
	}

	if !exists {
		return cfg, ErrNotConfigured
	}
	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	cfg, err := cfg.normalize()
	if err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// NormalizeDir expands "~" and returns a clean absolute path.
func NormalizeDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (c Config) normalize() (Config, error) {
	c.Extension = NormalizeExtension(c.Extension)
	if c.Extension == "" || c.Extension == "." {
		return c, errors.New("invalid extension: value is required")
	}
	if c.Extension == ".html" || c.Extension == ".htm" {
		return c, fmt.Errorf("invalid extension %q: reserved for HTML export", c.Extension)
	}
	c.DateLayout = strings.TrimSpace(c.DateLayout)
	if !strings.Contains(c.DateLayout, "2006") {
		return c, fmt.Errorf("invalid date_layout %q: must contain a four-digit year (2006)", c.DateLayout)
	}
	if strings.ContainsAny(c.DateLayout, `_/\`) {
		return c, fmt.Errorf("invalid date_layout %q: must not contain '_' or path separators", c.DateLayout)
	}
	c.GlamourStyle = strings.TrimSpace(c.GlamourStyle)
	if c.GlamourStyle == "" {
		c.GlamourStyle = DefaultGlamourStyle
	}
	if c.DefaultDir != "" {
		dir, err := NormalizeDir(c.DefaultDir)
		if err != nil {
			return c, fmt.Errorf("invalid default_dir: %w", err)
		}
		c.DefaultDir = dir
	}
	return c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("date_layout", defaults.DateLayout)
	v.SetDefault("glamour_style", defaults.GlamourStyle)
	v.SetDefault("default_dir", "")
	return v
}
