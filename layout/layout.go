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

// Package layout assigns every region of an address space a horizontal band
// of an image. Band heights follow log2(size)^3 so that terabyte gaps and
// kilobyte mappings both remain visible.
package layout

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vhive-serverless/memmap/regions"
)

// ColumnGap separates adjacent columns
const ColumnGap = 20

// Band is the slice of the image assigned to one region. Rect is where the
// band starts; a band that runs off the bottom of a column continues at the
// top of the next one in Continued.
type Band struct {
	Region    regions.Region
	Weight    float64
	Column    int
	Rect      image.Rectangle
	Continued []image.Rectangle
}

// Y returns the top edge of the band
func (b Band) Y() int {
	return b.Rect.Min.Y
}

// Height returns the height of the band in pixels, over all columns
func (b Band) Height() int {
	h := b.Rect.Dy()
	for _, r := range b.Continued {
		h += r.Dy()
	}

	return h
}

// Rects returns every rectangle the band covers
func (b Band) Rects() []image.Rectangle {
	return append([]image.Rectangle{b.Rect}, b.Continued...)
}

// Options tunes Compute
type Options struct {
	// LeftMargin is the horizontal space reserved for labels and the legend
	LeftMargin int
	// MinHeight is a floor for every band's height. Zero disables it.
	// With a floor the bands may extend past the image height.
	MinHeight int
	// Columns splits the area right of LeftMargin into that many columns,
	// ColumnGap apart, filled top to bottom and left to right. The height
	// budget grows to Columns times the image height. Zero means one.
	Columns int
}

// Weight returns log2(size)^3. A one-byte region weighs nothing.
func Weight(size uint64) float64 {
	if size == 0 {
		return 0
	}

	l := math.Log2(float64(size))
	return l * l * l
}

// Compute lays regions out top to bottom in the order given. Each region gets
// floor(weight/total*height*columns) pixels where total is the weight of all
// regions, gaps included. With a single column a band spans horizontally from
// LeftMargin to width.
func Compute(rs []regions.Region, width, height int, opts Options) []Band {
	if len(rs) == 0 {
		return nil
	}

	columns := opts.Columns
	if columns < 1 {
		columns = 1
	}
	colWidth := (width - opts.LeftMargin - (columns-1)*ColumnGap) / columns

	weights := make([]float64, len(rs))
	for i, r := range rs {
		weights[i] = Weight(r.Size())
	}
	total := floats.Sum(weights)
	budget := float64(height * columns)

	bands := make([]Band, len(rs))
	col, y := 0, 0
	for i, r := range rs {
		h := 0
		if total > 0 {
			h = int(math.Floor(weights[i] / total * budget))
		}
		if h < opts.MinHeight {
			h = opts.MinHeight
		}

		b := Band{Region: r, Weight: weights[i], Column: col}
		for first := true; first || h > 0; first = false {
			seg := h
			if col < columns-1 && y+seg > height {
				seg = height - y
			}

			x0 := opts.LeftMargin + col*(colWidth+ColumnGap)
			x1 := x0 + colWidth
			if col == columns-1 {
				x1 = width
			}

			rect := image.Rect(x0, y, x1, y+seg)
			if first {
				b.Rect = rect
			} else {
				b.Continued = append(b.Continued, rect)
			}

			y += seg
			h -= seg
			if col < columns-1 && y >= height {
				col, y = col+1, 0
			}
		}
		bands[i] = b
	}

	return bands
}

// TotalHeight returns the sum of all band heights
func TotalHeight(bands []Band) int {
	var total int
	for _, b := range bands {
		total += b.Height()
	}

	return total
}
