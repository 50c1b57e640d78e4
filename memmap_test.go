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
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/vhive-serverless/memmap/config"
	"github.com/vhive-serverless/memmap/memparser"
	"github.com/vhive-serverless/memmap/metrics"
	"github.com/vhive-serverless/memmap/regions"
	"github.com/vhive-serverless/memmap/render"
)

const exampleMaps = `00400000-00401000 r-xp 00000000 08:01 123  /bin/example
00600000-00601000 rw-p 00000000 08:01 123  /bin/example
`

func writeMaps(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "maps")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed writing maps")
	return path
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputPath = filepath.Join(t.TempDir(), "memory_map.png")
	return cfg
}

func decodePNG(t *testing.T, path string) image.Image {
	f, err := os.Open(path)
	require.NoError(t, err, "Output image missing")
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err, "Output is not a PNG")
	return img
}

func TestParsePid(t *testing.T) {
	pid, err := parsePid([]string{"1234"}, false)
	require.NoError(t, err)
	require.Equal(t, 1234, pid)

	pid, err = parsePid([]string{"0"}, false)
	require.NoError(t, err)
	require.Equal(t, 0, pid)

	pid, err = parsePid(nil, true)
	require.NoError(t, err)
	require.Equal(t, noPid, pid)

	for _, args := range [][]string{nil, {"abc"}, {"-5"}, {"12x"}, {"1", "2"}, {""}} {
		_, err := parsePid(args, false)
		require.Error(t, err, "Args %q must be rejected", args)
		require.Contains(t, err.Error(), "invalid process identifier")
	}
}

func TestDrawScenario(t *testing.T) {
	cfg := testConfig(t)

	f, err := memparser.OpenFile(writeMaps(t, exampleMaps+"garbage\n"))
	require.NoError(t, err)
	defer f.Close()

	rs, err := memparser.ReadRegions(f)
	require.NoError(t, err)
	require.Len(t, rs, 2)

	surface, withGaps, err := draw(cfg, rs, metrics.NewMetric())
	require.NoError(t, err)
	require.NotNil(t, surface)

	require.Len(t, withGaps, 4)
	expected := []struct {
		start, end uint64
		perms      string
	}{
		{0, 0x400000, "Free"},
		{0x400000, 0x401000, "r-x"},
		{0x401000, 0x600000, "Free"},
		{0x600000, 0x601000, "rw-"},
	}
	for i, e := range expected {
		require.Equal(t, e.start, withGaps[i].Start)
		require.Equal(t, e.end, withGaps[i].End)
		require.Equal(t, e.perms, withGaps[i].Attributes.String())
	}
}

func TestRunFromFile(t *testing.T) {
	for _, backend := range []string{"chart", "plot"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Backend = backend
			cfg.Legend = "permissions"

			require.NoError(t, run(cfg, noPid, writeMaps(t, exampleMaps)))

			img := decodePNG(t, cfg.OutputPath)
			require.Equal(t, image.Rect(0, 0, cfg.Width, cfg.Height), img.Bounds())
		})
	}
}

func TestRunColumns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Width = 600
	cfg.Columns = 3
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(cfg, noPid, writeMaps(t, exampleMaps)))

	img := decodePNG(t, cfg.OutputPath)
	require.Equal(t, image.Rect(0, 0, cfg.Width, cfg.Height), img.Bounds())
}

func TestRunEmptyListing(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, run(cfg, noPid, writeMaps(t, "garbage\n")), "Unparsable lines must not abort the run")
	decodePNG(t, cfg.OutputPath)
}

func TestRunOwnProcess(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, run(cfg, os.Getpid(), ""))
	decodePNG(t, cfg.OutputPath)
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig(t)

	err := run(cfg, noPid, filepath.Join(t.TempDir(), "missing"))
	require.Equal(t, memparser.ErrSourceUnavailable, errors.Cause(err))
	_, statErr := os.Stat(cfg.OutputPath)
	require.True(t, os.IsNotExist(statErr), "No image must be written when the source fails")

	cfg.OutputPath = filepath.Join(t.TempDir(), "missing", "memory_map.png")
	err = run(cfg, noPid, writeMaps(t, exampleMaps))
	require.Equal(t, render.ErrRenderFailure, errors.Cause(err))
}

func TestDrawNoRegions(t *testing.T) {
	surface, withGaps, err := draw(testConfig(t), []regions.Region{}, metrics.NewMetric())
	require.NoError(t, err)
	require.NotNil(t, surface)
	require.Empty(t, withGaps)
}
