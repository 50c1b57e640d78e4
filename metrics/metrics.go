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

package metrics

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// Load Time it takes to read and parse the listing
	Load = "Load"
	// Gaps Time it takes to insert gap regions
	Gaps = "Gaps"
	// Layout Time it takes to compute the bands
	Layout = "Layout"
	// Render Time it takes to draw the image
	Render = "Render"
	// Save Time it takes to encode and write the image
	Save = "Save"
	// Upload Time it takes to send the image to object storage
	Upload = "Upload"
)

// Metric A general metric
type Metric struct {
	MetricMap map[string]float64
}

// NewMetric Create a new metric
func NewMetric() *Metric {
	m := new(Metric)
	m.MetricMap = make(map[string]float64)

	return m
}

// Observe records the time elapsed since start under key
func (m *Metric) Observe(key string, start time.Time) {
	m.MetricMap[key] += ToUS(time.Since(start))
}

// Total Calculates the total time per stat
func (m *Metric) Total() float64 {
	var sum float64
	for _, v := range m.MetricMap {
		sum += v
	}

	return sum
}

// LogAll Logs a breakdown of the time at debug level
func (m *Metric) LogAll() {
	keys := make([]string, 0, len(m.MetricMap))
	for k := range m.MetricMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		log.Debugf("%s:\t%.1f us", k, m.MetricMap[k])
	}
	log.Debugf("Total:\t%.1f us", m.Total())
}

// ToUS Converts Duration to microseconds
func ToUS(dur time.Duration) float64 {
	return float64(dur.Microseconds())
}
