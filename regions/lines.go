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
	"bufio"
	"io"
)

// MaxLineLength bounds one listing line. Longer lines are consumed and
// returned empty, so they fail to parse and are skipped like any other
// malformed line.
const MaxLineLength = 64 * 1024

// LineReader is a LineSource over an io.Reader. Unlike bufio.Scanner it does
// not stop at the first overlong line.
type LineReader struct {
	r    *bufio.Reader
	line []byte
	done bool
	err  error
}

// NewLineReader returns a LineReader over r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Scan advances to the next line
func (l *LineReader) Scan() bool {
	if l.done {
		return false
	}

	l.line = l.line[:0]
	overlong, read := false, false

	for {
		chunk, isPrefix, err := l.r.ReadLine()
		if err != nil {
			l.done = true
			if err != io.EOF {
				l.err = err
				return false
			}
			return read
		}
		read = true

		if !overlong && len(l.line)+len(chunk) <= MaxLineLength {
			l.line = append(l.line, chunk...)
		} else {
			overlong = true
			l.line = l.line[:0]
		}

		if !isPrefix {
			return true
		}
	}
}

// Text returns the current line without its line ending
func (l *LineReader) Text() string {
	return string(l.line)
}

// Err returns the first read error other than io.EOF
func (l *LineReader) Err() error {
	return l.err
}
