// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/counter/consts"
	"github.com/ava-labs/counter/pebble"
	"github.com/ava-labs/counter/server"
	"github.com/ava-labs/counter/trace"
)

const EnvPrefix = "COUNTER_"

var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	LogLevel string `json:"logLevel" yaml:"logLevel" toml:"logLevel" env:"LOG_LEVEL"`
	// Directory for log files. Empty disables file logging.
	LogDir  string `json:"logDir" yaml:"logDir" toml:"logDir" env:"LOG_DIR"`
	DataDir string `json:"dataDir" yaml:"dataDir" toml:"dataDir" env:"DATA_DIR"`

	HTTPAddress     string            `json:"httpAddress" yaml:"httpAddress" toml:"httpAddress" env:"HTTP_ADDRESS"`
	AllowedOrigins  []string          `json:"allowedOrigins" yaml:"allowedOrigins" toml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout" yaml:"shutdownTimeout" toml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
	HTTP            server.HTTPConfig `json:"http" yaml:"http" toml:"http"`

	Pebble pebble.Config `json:"pebble" yaml:"pebble" toml:"pebble"`
	Trace  trace.Config  `json:"trace" yaml:"trace" toml:"trace" envPrefix:"TRACE_"`
}

func NewDefaultConfig() Config {
	return Config{
		LogLevel:        logging.Info.LowerString(),
		DataDir:         filepath.Join(".", "."+consts.Name),
		HTTPAddress:     "127.0.0.1:9650",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: 10 * time.Second,
		HTTP:            server.NewDefaultHTTPConfig(),
		Pebble:          pebble.NewDefaultConfig(),
		Trace: trace.Config{
			TraceSampleRate: 1,
			AppName:         consts.Name,
			Agent:           consts.Name,
		},
	}
}

// Load returns the defaults overridden by the file at [path] (if not empty)
// and then by COUNTER_* environment variables. The file format is chosen by
// extension: .json, .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	c := NewDefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := unmarshal(path, b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func unmarshal(path string, b []byte, c *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return json.Unmarshal(b, c)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, c)
	case ".toml":
		return toml.Unmarshal(b, c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}
