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

// InsertGaps returns a copy of sorted with an unallocated region in front of
// every region that starts past the end of its predecessor. The first gap
// starts at address 0. Overlapping regions are passed through as they are and
// nothing is appended after the last region.
func InsertGaps(sorted []Region) []Region {
	if len(sorted) == 0 {
		return nil
	}

	withGaps := make([]Region, 0, 2*len(sorted))

	var prevEnd uint64
	for _, region := range sorted {
		if region.Start > prevEnd {
			withGaps = append(withGaps, Region{
				Start: prevEnd,
				End:   region.Start,
			})
		}

		withGaps = append(withGaps, region)
		prevEnd = region.End
	}

	return withGaps
}
