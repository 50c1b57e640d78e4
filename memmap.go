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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/memmap/config"
	"github.com/vhive-serverless/memmap/layout"
	"github.com/vhive-serverless/memmap/memparser"
	"github.com/vhive-serverless/memmap/metrics"
	"github.com/vhive-serverless/memmap/regions"
	"github.com/vhive-serverless/memmap/render"
	"github.com/vhive-serverless/memmap/storage"
	"github.com/vhive-serverless/memmap/utils"
)

// noPid marks a run that reads a saved listing instead of a live process
const noPid = -1

func main() {
	defaults := config.Default()

	configPath := flag.String("config", "", "Path to a JSON config file")
	debug := flag.Bool("dbg", false, "Enable debug logging")
	mapsPath := flag.String("maps", "", "Read the listing from this file (- for stdin) instead of /proc/<pid>/maps")

	// Image
	output := flag.String("o", defaults.OutputPath, "Output PNG path")
	width := flag.Int("width", defaults.Width, "Image width in pixels")
	height := flag.Int("height", defaults.Height, "Image height in pixels")
	legendWidth := flag.Int("legendWidth", defaults.LegendWidth, "Left margin reserved for labels and the legend")
	backend := flag.String("backend", defaults.Backend, "Drawing backend, valid options: chart, plot")
	legend := flag.String("legend", defaults.Legend, "Legend, valid options: static, permissions")
	minHeight := flag.Int("minHeight", defaults.MinBandHeight, "Minimum band height in pixels (0 disables)")
	columns := flag.Int("columns", defaults.Columns, "Number of columns the bands wrap across")

	// Object storage
	minioURL := flag.String("minioURL", "", "MinIO URL, uploads the image when set")
	minioAccessKey := flag.String("minioAccessKey", "", "MinIO Access Key")
	minioSecretKey := flag.String("minioSecretKey", "", "MinIO Secret Key")
	bucketName := flag.String("bucket", defaults.Bucket, "MinIO bucket name")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <pid>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	utils.GetLogger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed loading config: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputPath = *output
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "legendWidth":
			cfg.LegendWidth = *legendWidth
		case "backend":
			cfg.Backend = *backend
		case "legend":
			cfg.Legend = *legend
		case "minHeight":
			cfg.MinBandHeight = *minHeight
		case "columns":
			cfg.Columns = *columns
		case "minioURL":
			cfg.MinioURL = *minioURL
		case "minioAccessKey":
			cfg.MinioAccessKey = *minioAccessKey
		case "minioSecretKey":
			cfg.MinioSecretKey = *minioSecretKey
		case "bucket":
			cfg.Bucket = *bucketName
		}
	})

	if *debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		log.Fatalf("Failed setting log level: %v", err)
	}
	log.Debug("Debug logging is enabled")

	pid, err := parsePid(flag.Args(), *mapsPath != "")
	if err != nil {
		flag.Usage()
		log.Fatalf("%v", err)
	}

	if err := run(cfg, pid, *mapsPath); err != nil {
		log.Fatalf("%v", err)
	}
}

// parsePid returns the process identifier given on the command line. It may
// only be omitted when the listing comes from a file.
func parsePid(args []string, optional bool) (int, error) {
	switch {
	case len(args) == 0 && optional:
		return noPid, nil
	case len(args) == 0:
		return 0, errors.New("invalid process identifier: missing")
	case len(args) > 1:
		return 0, errors.Errorf("invalid process identifier: expected one argument, got %d", len(args))
	}

	pid, err := strconv.Atoi(args[0])
	if err != nil || pid < 0 {
		return 0, errors.Errorf("invalid process identifier %q", args[0])
	}

	return pid, nil
}

// run renders the memory map of pid, or of the listing at mapsPath when set,
// to cfg.OutputPath and uploads it when object storage is configured
func run(cfg *config.Config, pid int, mapsPath string) error {
	m := metrics.NewMetric()

	tStart := time.Now()
	rs, err := readRegions(pid, mapsPath)
	if err != nil {
		return errors.Wrap(err, "failed reading memory map")
	}
	m.Observe(metrics.Load, tStart)

	if len(rs) == 0 {
		log.Warn("No memory regions parsed, the image will only contain the legend")
	}

	surface, withGaps, err := draw(cfg, rs, m)
	if err != nil {
		return errors.Wrap(err, "failed rendering memory map")
	}

	tStart = time.Now()
	if err := render.SaveFile(surface, cfg.OutputPath); err != nil {
		return errors.Wrap(err, "failed saving memory map")
	}
	m.Observe(metrics.Save, tStart)
	log.Infof("Memory map written to %s", cfg.OutputPath)

	metrics.Summarize(withGaps).Log()

	if cfg.UploadEnabled() {
		tStart = time.Now()
		if err := upload(cfg, pid); err != nil {
			return errors.Wrap(err, "failed uploading memory map")
		}
		m.Observe(metrics.Upload, tStart)
	}

	m.LogAll()
	return nil
}

func readRegions(pid int, mapsPath string) ([]regions.Region, error) {
	if mapsPath == "" {
		log.Infof("Reading memory map of %s (pid %d)", memparser.ProcessName(pid), pid)
		return memparser.ReadProcess(pid)
	}

	f, err := memparser.OpenFile(mapsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return memparser.ReadRegions(f)
}

// draw fills the gaps between rs, lays the result out and renders it on a new
// surface
func draw(cfg *config.Config, rs []regions.Region, m *metrics.Metric) (render.Surface, []regions.Region, error) {
	tStart := time.Now()
	withGaps := regions.InsertGaps(rs)
	m.Observe(metrics.Gaps, tStart)

	for _, r := range withGaps {
		log.Debug(r)
	}

	tStart = time.Now()
	bands := layout.Compute(withGaps, cfg.Width, cfg.Height, layout.Options{
		LeftMargin: cfg.LegendWidth,
		MinHeight:  cfg.MinBandHeight,
		Columns:    cfg.Columns,
	})
	m.Observe(metrics.Layout, tStart)

	if log.IsLevelEnabled(log.TraceLevel) {
		log.Trace(spew.Sdump(bands))
	}

	tStart = time.Now()
	surface, err := render.NewSurface(cfg.Backend, cfg.Width, cfg.Height)
	if err != nil {
		return nil, nil, err
	}
	render.Render(surface, bands, render.Options{Legend: render.LegendMode(cfg.Legend)})
	m.Observe(metrics.Render, tStart)

	return surface, withGaps, nil
}

func upload(cfg *config.Config, pid int) error {
	timeout, err := cfg.UploadTimeoutDuration()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := storage.NewMinioClient(cfg.MinioURL, cfg.MinioAccessKey, cfg.MinioSecretKey)
	if err != nil {
		return err
	}

	st, err := storage.NewMinioStorage(ctx, client, cfg.Bucket)
	if err != nil {
		return err
	}

	name := "memmap"
	if pid != noPid {
		name = memparser.ProcessName(pid)
	}

	return storage.UploadFile(ctx, st, storage.ObjectKey(name, pid, cfg.OutputPath), cfg.OutputPath)
}
