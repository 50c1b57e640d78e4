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

// Package render draws laid out memory regions onto a Surface.
package render

import (
	"image"
	"image/color"

	"github.com/vhive-serverless/memmap/layout"
	"github.com/vhive-serverless/memmap/regions"
)

const (
	labelX = 25
	// labels of bands outside the first column sit inside the band
	labelInset = 2

	legendX       = 5
	legendSpacing = 20
	swatchSize    = 10
	legendTextDX  = 15
	legendTextDY  = -2
)

var (
	background = color.White
	textColor  = color.Black
)

// LegendMode selects the legend drawn in the lower-left corner
type LegendMode string

const (
	// LegendStatic draws the fixed Free/Used/Reserved/NVS legend
	LegendStatic LegendMode = "static"
	// LegendPermissions draws one entry per color the region mapper produces
	LegendPermissions LegendMode = "permissions"
)

// Options tunes Render
type Options struct {
	Legend LegendMode
}

// LegendEntry is one swatch of the legend
type LegendEntry struct {
	Name  string
	Color color.RGBA
}

// Render paints the background, one band with a start/size label per region
// and the legend
func Render(s Surface, bands []layout.Band, opts Options) {
	_, height := s.Size()

	s.Fill(background)

	for _, b := range bands {
		c := regions.Color(b.Region.Attributes)
		for _, r := range b.Rects() {
			s.DrawRectangle(r, c)
		}
		s.DrawText(b.Region.Label(), labelPosition(b), b.Y(), textColor)
	}

	drawLegend(s, Legend(opts.Legend), height)
}

func labelPosition(b layout.Band) int {
	if b.Column == 0 {
		return labelX
	}

	return b.Rect.Min.X + labelInset
}

// Legend returns the legend entries for mode
func Legend(mode LegendMode) []LegendEntry {
	if mode != LegendPermissions {
		return []LegendEntry{
			{"Free", color.RGBA{0, 255, 0, 255}},
			{"Used", color.RGBA{255, 0, 0, 255}},
			{"Reserved", color.RGBA{255, 255, 0, 255}},
			{"NVS", color.RGBA{0, 0, 255, 255}},
		}
	}

	var entries []LegendEntry
	for _, attrs := range regions.PermissionCombinations() {
		entries = append(entries, LegendEntry{Name: attrs.String(), Color: regions.Color(attrs)})
	}

	return entries
}

func drawLegend(s Surface, entries []LegendEntry, height int) {
	y := height - legendSpacing*len(entries)

	for _, e := range entries {
		s.DrawRectangle(image.Rect(legendX, y, legendX+swatchSize, y+swatchSize), e.Color)
		s.DrawText(e.Name, legendX+legendTextDX, y+legendTextDY, textColor)
		y += legendSpacing
	}
}
