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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	permsLen     = 4
	fileNameIdx  = 5
	minFieldsLen = 2
)

var (
	// ErrInvalidFormat a line has fewer than two fields
	ErrInvalidFormat = errors.New("invalid input format")
	// ErrInvalidAddress the address range is not a pair of hex numbers
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidAttributes the permission field is not four characters long
	ErrInvalidAttributes = errors.New("invalid memory attributes")
	// ErrInvalidRange the end address is not above the start address
	ErrInvalidRange = errors.New("invalid address range")
)

// Region is one contiguous virtual address range [Start, End)
type Region struct {
	Start      uint64
	End        uint64
	Attributes MemoryAttributes
	// FileName is empty for anonymous mappings and gaps
	FileName string
}

// Size returns the length of the region in bytes
func (r Region) Size() uint64 {
	return r.End - r.Start
}

// IsGap reports whether the region was synthesized for unmapped space
func (r Region) IsGap() bool {
	return !r.Attributes.Allocated
}

func (r Region) String() string {
	return fmt.Sprintf("%#x--%#x (%#x) %s %s", r.Start, r.End, r.Size(), r.Attributes, r.FileName)
}

// Label returns the text drawn next to the region's band
func (r Region) Label() string {
	return fmt.Sprintf("%#x (%#x)", r.Start, r.Size())
}

// ParseRegion parses one line of a /proc/<pid>/maps listing:
//
//	<start>-<end> <perms> <offset> <dev> <inode> [<pathname>]
//
// Offset, device and inode are not validated. Only the first token of the
// pathname is kept.
func ParseRegion(line string) (Region, error) {
	fields := strings.Fields(line)
	if len(fields) < minFieldsLen {
		return Region{}, errors.Wrapf(ErrInvalidFormat, "%d field(s) in %q", len(fields), line)
	}

	start, end, err := parseAddressRange(fields[0])
	if err != nil {
		return Region{}, err
	}

	attrs, err := parsePerms(fields[1])
	if err != nil {
		return Region{}, err
	}

	if end <= start {
		return Region{}, errors.Wrapf(ErrInvalidRange, "%#x-%#x", start, end)
	}

	r := Region{
		Start:      start,
		End:        end,
		Attributes: attrs,
	}
	if len(fields) > fileNameIdx {
		r.FileName = fields[fileNameIdx]
	}

	return r, nil
}

func parseAddressRange(field string) (uint64, uint64, error) {
	startStr, endStr, found := strings.Cut(field, "-")
	if !found {
		return 0, 0, errors.Wrapf(ErrInvalidAddress, "missing separator in %q", field)
	}

	start, err := strconv.ParseUint(startStr, 16, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidAddress, "start address %q", startStr)
	}

	end, err := strconv.ParseUint(endStr, 16, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidAddress, "end address %q", endStr)
	}

	return start, end, nil
}

func parsePerms(field string) (MemoryAttributes, error) {
	perms := []rune(field)
	if len(perms) != permsLen {
		return MemoryAttributes{}, errors.Wrapf(ErrInvalidAttributes, "%q", field)
	}

	return MemoryAttributes{
		Readable:   perms[0] == 'r',
		Writable:   perms[1] == 'w',
		Executable: perms[2] == 'x',
		Private:    perms[3] == 'p',
		Allocated:  true,
	}, nil
}
