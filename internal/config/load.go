package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// envFiles are tried in order; variables already set in the process win.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every env file that exists. It reports which files were read.
func loadEnvFiles() []string {
	var loaded []string
	for _, p := range envFiles {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load env file", logfields.File(p), logfields.Error(err))
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}

// Load reads, normalizes, defaults and validates a configuration file.
// Normalization warnings are logged.
func Load(configPath string) (*Config, error) {
	cfg, res, err := LoadWithResult(configPath)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", logfields.File(configPath), slog.String("warning", w))
	}
	return cfg, nil
}

// LoadWithResult is Load but hands normalization warnings back to the caller.
func LoadWithResult(configPath string) (*Config, *NormalizationResult, error) {
	for _, p := range loadEnvFiles() {
		slog.Debug("Loaded environment variables", logfields.File(p))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(configPath, data)
	if err != nil {
		return nil, nil, err
	}

	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	ApplyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

// Parse decodes data after ${VAR} expansion. Files ending in .toml are decoded
// as TOML, everything else as YAML. Unknown fields are rejected in both.
func Parse(name string, data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))
	var cfg Config

	if strings.EqualFold(filepath.Ext(name), ".toml") {
		md, err := toml.Decode(expanded, &cfg)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decode toml config").
				WithContext("path", name).Build()
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, ferrors.ConfigError(fmt.Sprintf("unknown config key %q", undecoded[0].String())).
				WithContext("path", name).Build()
		}
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decode yaml config").
			WithContext("path", name).Build()
	}
	return &cfg, nil
}
