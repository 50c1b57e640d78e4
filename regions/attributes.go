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

import "image/color"

var (
	gapColor   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	guardColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// MemoryAttributes holds the permission flags of a mapping. Allocated is false
// only for synthetic gap regions.
type MemoryAttributes struct {
	Readable   bool
	Writable   bool
	Executable bool
	Private    bool
	Allocated  bool
}

// String returns "Free" for unallocated space and the rwx triple otherwise
func (a MemoryAttributes) String() string {
	if !a.Allocated {
		return "Free"
	}

	perms := []byte("---")
	if a.Readable {
		perms[0] = 'r'
	}
	if a.Writable {
		perms[1] = 'w'
	}
	if a.Executable {
		perms[2] = 'x'
	}

	return string(perms)
}

// Color maps attributes to the band color. Gaps are black, allocated regions
// without any of r/w/x are gray, the rest use one full channel per permission:
// red for read, green for write, blue for execute. Private is not reflected.
func Color(a MemoryAttributes) color.RGBA {
	if !a.Allocated {
		return gapColor
	}

	c := color.RGBA{A: 255}
	if a.Readable {
		c.R = 255
	}
	if a.Writable {
		c.G = 255
	}
	if a.Executable {
		c.B = 255
	}

	if c.R == 0 && c.G == 0 && c.B == 0 {
		return guardColor
	}

	return c
}

// PermissionCombinations returns every allocated private r/w/x combination in
// ascending rwx bit order followed by the unallocated attributes.
func PermissionCombinations() []MemoryAttributes {
	combos := make([]MemoryAttributes, 0, 9)
	for bits := 0; bits < 8; bits++ {
		combos = append(combos, MemoryAttributes{
			Readable:   bits&1 != 0,
			Writable:   bits&2 != 0,
			Executable: bits&4 != 0,
			Private:    true,
			Allocated:  true,
		})
	}

	return append(combos, MemoryAttributes{})
}
