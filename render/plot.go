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

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// at 72 DPI one vg point is one pixel
const plotDPI = 72

// PlotSurface draws on a gonum/plot image canvas. vg uses a bottom-left
// origin, so every y coordinate is flipped.
type PlotSurface struct {
	c      *vgimg.Canvas
	face   font.Face
	width  int
	height int
}

// NewPlotSurface returns a blank surface
func NewPlotSurface(width, height int, fontSize float64) (*PlotSurface, error) {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(plotDPI),
		vgimg.UseBackgroundColor(color.White),
	)

	cache := font.NewCache(liberation.Collection())
	face := cache.Lookup(font.Font{Typeface: "Liberation", Variant: "Sans"}, font.Length(fontSize))

	return &PlotSurface{
		c:      c,
		face:   face,
		width:  width,
		height: height,
	}, nil
}

// Size implements Surface
func (s *PlotSurface) Size() (int, int) {
	return s.width, s.height
}

// Fill implements Surface
func (s *PlotSurface) Fill(c color.Color) {
	s.DrawRectangle(image.Rect(0, 0, s.width, s.height), c)
}

// DrawRectangle implements Surface
func (s *PlotSurface) DrawRectangle(rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}

	var p vg.Path
	p.Move(s.point(rect.Min.X, rect.Min.Y))
	p.Line(s.point(rect.Max.X, rect.Min.Y))
	p.Line(s.point(rect.Max.X, rect.Max.Y))
	p.Line(s.point(rect.Min.X, rect.Max.Y))
	p.Close()

	s.c.SetColor(c)
	s.c.Fill(p)
}

// DrawText implements Surface. FillString positions text by its baseline.
func (s *PlotSurface) DrawText(text string, x, y int, c color.Color) {
	s.c.SetColor(c)
	s.c.FillString(s.face, s.point(x, y+int(s.face.Font.Size)), text)
}

// Save implements Surface
func (s *PlotSurface) Save(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: s.c}.WriteTo(w)
	return err
}

func (s *PlotSurface) point(x, y int) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(s.height - y)}
}
