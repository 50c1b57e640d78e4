// MIT License
//
// Copyright (c) 2026 vHive team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed writing config")
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 1, cfg.Columns, "A single column is the default")
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.UploadEnabled())

	d, err := cfg.UploadTimeoutDuration()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, d)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `{"width": 800, "legend": "permissions", "columns": 3, "minio_url": "localhost:9000"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 800, cfg.Width)
	require.Equal(t, "permissions", cfg.Legend)
	require.Equal(t, 3, cfg.Columns)
	require.Equal(t, defaultHeight, cfg.Height, "Missing fields must keep their defaults")
	require.Equal(t, defaultOutputPath, cfg.OutputPath)
	require.True(t, cfg.UploadEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"width": "wide"}`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"legend too wide", func(c *Config) { c.LegendWidth = c.Width }},
		{"negative min height", func(c *Config) { c.MinBandHeight = -2 }},
		{"zero columns", func(c *Config) { c.Columns = 0 }},
		{"too many columns", func(c *Config) { c.Columns = 9 }},
		{"empty output", func(c *Config) { c.OutputPath = "" }},
		{"backend", func(c *Config) { c.Backend = "svg" }},
		{"legend", func(c *Config) { c.Legend = "dynamic" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"timeout", func(c *Config) { c.UploadTimeout = "soon" }},
	}

	for _, tCase := range cases {
		t.Run(tCase.name, func(t *testing.T) {
			cfg := Default()
			tCase.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
