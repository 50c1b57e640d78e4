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

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

// ChartSurface draws through the go-chart PNG raster renderer
type ChartSurface struct {
	r        chart.Renderer
	width    int
	height   int
	fontSize float64
}

// NewChartSurface returns a transparent surface. Fill it before drawing.
func NewChartSurface(width, height int, fontSize float64) (*ChartSurface, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, errors.Wrapf(ErrRenderFailure, "creating raster renderer: %v", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, errors.Wrapf(ErrRenderFailure, "loading default font: %v", err)
	}
	r.SetFont(font)

	return &ChartSurface{
		r:        r,
		width:    width,
		height:   height,
		fontSize: fontSize,
	}, nil
}

// Size implements Surface
func (s *ChartSurface) Size() (int, int) {
	return s.width, s.height
}

// Fill implements Surface
func (s *ChartSurface) Fill(c color.Color) {
	s.DrawRectangle(image.Rect(0, 0, s.width, s.height), c)
}

// DrawRectangle implements Surface
func (s *ChartSurface) DrawRectangle(rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}

	s.r.SetFillColor(toDrawingColor(c))
	s.r.SetStrokeWidth(0)
	s.r.MoveTo(rect.Min.X, rect.Min.Y)
	s.r.LineTo(rect.Max.X, rect.Min.Y)
	s.r.LineTo(rect.Max.X, rect.Max.Y)
	s.r.LineTo(rect.Min.X, rect.Max.Y)
	s.r.Close()
	s.r.Fill()
}

// DrawText implements Surface. go-chart positions text by its baseline.
func (s *ChartSurface) DrawText(text string, x, y int, c color.Color) {
	s.r.SetFontSize(s.fontSize)
	s.r.SetFontColor(toDrawingColor(c))
	s.r.Text(text, x, y+int(s.fontSize))
}

// Save implements Surface
func (s *ChartSurface) Save(w io.Writer) error {
	return s.r.Save(w)
}

func toDrawingColor(c color.Color) drawing.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}
