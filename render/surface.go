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

package render

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// BackendChart draws with the go-chart raster renderer
	BackendChart = "chart"
	// BackendPlot draws on a gonum/plot image canvas
	BackendPlot = "plot"

	defaultFontSize = 10.0
)

// ErrRenderFailure a surface could not be created or persisted
var ErrRenderFailure = errors.New("render failure")

// Surface is a raster drawing target with a top-left origin
type Surface interface {
	// Size returns the width and height in pixels
	Size() (int, int)
	// Fill paints the whole surface
	Fill(c color.Color)
	// DrawRectangle fills r without a border
	DrawRectangle(r image.Rectangle, c color.Color)
	// DrawText writes text with its top-left corner at (x, y)
	DrawText(text string, x, y int, c color.Color)
	// Save encodes the finished surface as PNG
	Save(w io.Writer) error
}

// NewSurface creates a surface of the given backend
func NewSurface(backend string, width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrRenderFailure, "invalid surface size %dx%d", width, height)
	}

	switch backend {
	case BackendChart, "":
		s, err := NewChartSurface(width, height, defaultFontSize)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPlot:
		s, err := NewPlotSurface(width, height, defaultFontSize)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Wrapf(ErrRenderFailure, "unknown backend %q", backend)
	}
}

// SaveFile writes the surface to path as PNG. Nothing is left at path when
// encoding fails.
func SaveFile(s Surface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrRenderFailure, "creating %s: %v", path, err)
	}

	if err := s.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(ErrRenderFailure, "encoding %s: %v", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(ErrRenderFailure, "closing %s: %v", path, err)
	}

	return nil
}
