// MIT License
//
// Copyright (c) 2020 Plamen Petrov
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
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/memmap/layout"
)

const (
	defaultWidth         = 300
	defaultHeight        = 2000
	defaultLegendWidth   = 150
	defaultOutputPath    = "memory_map.png"
	defaultBackend       = "chart"
	defaultLegend        = "static"
	defaultMinBandHeight = 0
	defaultColumns       = 1
	defaultLogLevel      = "Info"
	defaultBucket        = "memmaps"
	defaultUploadTimeout = "30s"
)

// Config represents runtime configuration parameters
type Config struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	LegendWidth   int    `json:"legend_width"`
	OutputPath    string `json:"output_path"`
	Backend       string `json:"backend"`
	Legend        string `json:"legend"`
	MinBandHeight int    `json:"min_band_height"`
	Columns       int    `json:"columns"`
	LogLevel      string `json:"log_level"`

	MinioURL       string `json:"minio_url"`
	MinioAccessKey string `json:"minio_access_key"`
	MinioSecretKey string `json:"minio_secret_key"`
	Bucket         string `json:"bucket"`
	UploadTimeout  string `json:"upload_timeout"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Width:         defaultWidth,
		Height:        defaultHeight,
		LegendWidth:   defaultLegendWidth,
		OutputPath:    defaultOutputPath,
		Backend:       defaultBackend,
		Legend:        defaultLegend,
		MinBandHeight: defaultMinBandHeight,
		Columns:       defaultColumns,
		LogLevel:      defaultLogLevel,
		Bucket:        defaultBucket,
		UploadTimeout: defaultUploadTimeout,
	}
}

// LoadConfig loads configuration from JSON file at 'path'. Fields missing from
// the file keep their defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config from %q", path)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %q", path)
	}
	return cfg, nil
}

// Validate checks that the image geometry and the selected modes make sense
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.LegendWidth < 0 || c.LegendWidth >= c.Width {
		return errors.Errorf("legend width %d must be within [0, %d)", c.LegendWidth, c.Width)
	}
	if c.MinBandHeight < 0 {
		return errors.Errorf("minimum band height %d is negative", c.MinBandHeight)
	}
	if c.Columns < 1 {
		return errors.Errorf("column count %d must be at least 1", c.Columns)
	}
	if c.Width-c.LegendWidth-(c.Columns-1)*layout.ColumnGap < c.Columns {
		return errors.Errorf("%d columns do not fit in %d pixels right of the legend", c.Columns, c.Width-c.LegendWidth)
	}
	if c.OutputPath == "" {
		return errors.New("output path is empty")
	}
	switch c.Backend {
	case "chart", "plot":
	default:
		return errors.Errorf("unknown backend %q, valid options: chart, plot", c.Backend)
	}
	switch c.Legend {
	case "static", "permissions":
	default:
		return errors.Errorf("unknown legend %q, valid options: static, permissions", c.Legend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if _, err := c.UploadTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// UploadEnabled reports whether the image should be sent to object storage
func (c *Config) UploadEnabled() bool {
	return c.MinioURL != ""
}

// UploadTimeoutDuration parses UploadTimeout
func (c *Config) UploadTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.UploadTimeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid upload timeout %q", c.UploadTimeout)
	}
	return d, nil
}
