// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Load("")
	require.NoError(err)
	require.Equal(NewDefaultConfig(), c)

	level, err := c.GetLogLevel()
	require.NoError(err)
	require.Equal(logging.Info, level)
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "config.json",
			content: `{"logLevel":"debug","dataDir":"/tmp/counter","httpAddress":"0.0.0.0:1234","shutdownTimeout":5000000000,"pebble":{"sync":false},"trace":{"enabled":true}}`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `logLevel: debug
dataDir: /tmp/counter
httpAddress: 0.0.0.0:1234
shutdownTimeout: 5s
pebble:
  sync: false
trace:
  enabled: true
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `logLevel = "debug"
dataDir = "/tmp/counter"
httpAddress = "0.0.0.0:1234"
shutdownTimeout = "5s"

[pebble]
sync = false

[trace]
enabled = true
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			c, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(err)
			require.Equal("debug", c.LogLevel)
			require.Equal("/tmp/counter", c.DataDir)
			require.Equal("0.0.0.0:1234", c.HTTPAddress)
			require.Equal(5*time.Second, c.ShutdownTimeout)
			require.False(c.Pebble.Sync)
			require.True(c.Trace.Enabled)

			// unset fields keep their defaults
			defaults := NewDefaultConfig()
			require.Equal(defaults.Pebble.CacheSize, c.Pebble.CacheSize)
			require.Equal(defaults.HTTP, c.HTTP)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.ini", "logLevel=debug"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadEnvOverrides(t *testing.T) {
	require := require.New(t)

	t.Setenv("COUNTER_LOG_LEVEL", "warn")
	t.Setenv("COUNTER_ALLOWED_ORIGINS", "a.com,b.com")
	t.Setenv("COUNTER_TRACE_ENABLED", "true")
	t.Setenv("COUNTER_TRACE_SAMPLE_RATE", "0.5")

	c, err := Load(writeFile(t, "config.json", `{"logLevel":"debug"}`))
	require.NoError(err)
	require.Equal("warn", c.LogLevel)
	require.Equal([]string{"a.com", "b.com"}, c.AllowedOrigins)
	require.True(c.Trace.Enabled)
	require.InDelta(0.5, c.Trace.TraceSampleRate, 0)
}
