// Package config handles loading and saving user configuration for kword.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	DictionaryPath string       `mapstructure:"dictionary_path" yaml:"dictionary_path"` // word list (.csv or .apkg)
	Storage        Storage      `mapstructure:"storage" yaml:"storage"`
	Romanization   Romanization `mapstructure:"romanization" yaml:"romanization"`
	Log            Log          `mapstructure:"log" yaml:"log"`
}

// Storage selects where rounds, statistics and settings are kept.
type Storage struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // sqlite, yaml or memory
	Path   string `mapstructure:"path" yaml:"path"`     // empty means a file in the config dir
}

// Romanization lists the schemes accepted as answers.
type Romanization struct {
	Schemes []string `mapstructure:"schemes" yaml:"schemes"`
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // empty disables logging
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	return &Config{
		DictionaryPath: filepath.Join(dir, "words.csv"),
		Storage: Storage{
			Driver: "sqlite",
		},
		Romanization: Romanization{
			Schemes: []string{"rr", "mr"},
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads config.yaml from dir. A missing file yields the defaults;
// KWORD_* environment variables override file values.
func Load(dir string) (*Config, error) {
	def := Default(dir)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("dictionary_path", def.DictionaryPath)
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("romanization.schemes", def.Romanization.Schemes)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix("KWORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DictionaryPath = resolve(dir, cfg.DictionaryPath)
	cfg.Storage.Path = resolve(dir, cfg.Storage.Path)
	cfg.Log.File = resolve(dir, cfg.Log.File)

	return &cfg, nil
}

// resolve makes relative paths relative to the config directory.
func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(dir, path)
}

// Save writes cfg to config.yaml in dir.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kword"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
