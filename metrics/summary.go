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

package metrics

import (
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/vhive-serverless/memmap/regions"
)

// Summary describes a gap-filled region list
type Summary struct {
	Mapped      int
	Gaps        int
	MappedBytes uint64
	GapBytes    uint64
	// size statistics over mapped regions only
	MeanSize   float64
	StdDevSize float64
	MedianSize float64
	P90Size    float64
	// Permissions counts mapped regions per rwx string
	Permissions map[string]int
}

// Summarize computes the summary of rs
func Summarize(rs []regions.Region) Summary {
	s := Summary{Permissions: make(map[string]int)}

	var sizes []float64
	for _, r := range rs {
		if r.IsGap() {
			s.Gaps++
			s.GapBytes += r.Size()
			continue
		}

		s.Mapped++
		s.MappedBytes += r.Size()
		s.Permissions[r.Attributes.String()]++
		sizes = append(sizes, float64(r.Size()))
	}

	if len(sizes) == 0 {
		return s
	}

	if len(sizes) > 1 {
		s.MeanSize, s.StdDevSize = stat.MeanStdDev(sizes, nil)
	} else {
		s.MeanSize = sizes[0]
	}

	// both only fail on empty input
	s.MedianSize, _ = stats.Median(sizes)
	s.P90Size, _ = stats.Percentile(sizes, 90)

	return s
}

// Log prints the summary at info level
func (s Summary) Log() {
	log.Infof("Mapped regions: %d (%#x bytes), gaps: %d (%#x bytes)", s.Mapped, s.MappedBytes, s.Gaps, s.GapBytes)
	if s.Mapped == 0 {
		return
	}

	log.Infof("Region size mean: %.0f, stddev: %.0f, median: %.0f, p90: %.0f",
		s.MeanSize, s.StdDevSize, s.MedianSize, s.P90Size)
	log.Debugf("Regions per permission: %v", s.Permissions)
}
