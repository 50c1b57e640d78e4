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

// Package memparser opens the memory map listing of a process and turns it
// into regions.
package memparser

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/vhive-serverless/memmap/regions"
)

// StdinPath makes OpenFile read from standard input
const StdinPath = "-"

// ErrSourceUnavailable the listing could not be opened or read
var ErrSourceUnavailable = errors.New("memory map source unavailable")

// MapsPath returns the path of the maps listing of pid
func MapsPath(pid int) string {
	return filepath.Join("/proc", fmt.Sprint(pid), "maps")
}

// OpenMaps opens /proc/<pid>/maps. A process that does not exist is reported
// before the open is attempted.
func OpenMaps(pid int) (io.ReadCloser, error) {
	if pid < 0 {
		return nil, errors.Wrapf(ErrSourceUnavailable, "invalid pid %d", pid)
	}

	if err := unix.Kill(pid, 0); err == unix.ESRCH {
		return nil, errors.Wrapf(ErrSourceUnavailable, "no process with pid %d", pid)
	}

	return OpenFile(MapsPath(pid))
}

// OpenFile opens a saved maps listing. StdinPath reads standard input.
func OpenFile(path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "opening %s: %v", path, err)
	}

	return f, nil
}

// ReadRegions loads, sorts and logs the regions of one listing
func ReadRegions(r io.Reader) ([]regions.Region, error) {
	rs, stats, err := regions.LoadRegionsWithStats(regions.NewLineReader(r))
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "%v", err)
	}

	log.Debugf("Read %d line(s), parsed %d region(s), skipped %d", stats.Lines, stats.Parsed, stats.SkippedTotal())
	for cause, n := range stats.Skipped {
		log.Debugf("Skipped %d line(s): %v", n, cause)
	}

	return rs, nil
}

// ReadProcess reads the regions of a running process
func ReadProcess(pid int) ([]regions.Region, error) {
	f, err := OpenMaps(pid)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRegions(f)
}

// ProcessName returns the command name of pid, or "pid<N>" when it cannot be
// determined
func ProcessName(pid int) string {
	fallback := fmt.Sprintf("pid%d", pid)

	if pid < 0 || pid > math.MaxInt32 {
		return fallback
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return fallback
	}

	name, err := p.Name()
	if err != nil || name == "" {
		return fallback
	}

	return name
}
