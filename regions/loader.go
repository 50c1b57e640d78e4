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

package regions

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LineSource yields lines of a memory map listing. LineReader and
// *bufio.Scanner satisfy it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// LoadStats describes what happened to the lines of one listing
type LoadStats struct {
	Lines   int
	Parsed  int
	Skipped map[error]int
}

// SkippedTotal returns the number of lines that failed to parse
func (s LoadStats) SkippedTotal() int {
	var total int
	for _, n := range s.Skipped {
		total += n
	}

	return total
}

// LoadRegions parses every line of src and returns the regions sorted by start
// address. Lines that fail to parse are skipped.
func LoadRegions(src LineSource) ([]Region, error) {
	regions, _, err := LoadRegionsWithStats(src)
	return regions, err
}

// LoadRegionsFrom is LoadRegions over a reader
func LoadRegionsFrom(r io.Reader) ([]Region, error) {
	return LoadRegions(NewLineReader(r))
}

// LoadRegionsWithStats is LoadRegions that also reports per-line outcomes.
// Skipped is keyed by the parse error sentinel.
func LoadRegionsWithStats(src LineSource) ([]Region, LoadStats, error) {
	var (
		regions []Region
		stats   = LoadStats{Skipped: make(map[error]int)}
	)

	for src.Scan() {
		stats.Lines++
		line := src.Text()

		region, err := ParseRegion(line)
		if err != nil {
			log.Debugf("Skipping line %d: %v", stats.Lines, err)
			stats.Skipped[errors.Cause(err)]++
			continue
		}

		regions = append(regions, region)
	}

	if err := src.Err(); err != nil {
		return nil, stats, errors.Wrap(err, "reading memory map lines")
	}

	stats.Parsed = len(regions)

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Start < regions[j].Start
	})

	return regions, stats, nil
}
