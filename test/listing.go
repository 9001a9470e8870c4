// This file is part of armv2dbg.
//
// armv2dbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armv2dbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armv2dbg.  If not, see <https://www.gnu.org/licenses/>.

package test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ExpectListing compares two multi-line strings. On failure, the differences
// are reported line by line with a '-' prefix for lines that were expected
// but missing and a '+' prefix for lines that were not expected.
func ExpectListing(t *testing.T, listing string, expectedListing string, tags ...any) bool {
	t.Helper()
	if listing == expectedListing {
		return true
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expectedListing, listing)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	s := strings.Builder{}
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, l := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			s.WriteString(prefix)
			s.WriteString(l)
			s.WriteString("\n")
		}
	}

	t.Errorf("%slisting does not match expected listing:\n%s", id(tags...), s.String())
	return false
}

// Dump returns a deep representation of the values. Useful for failure
// messages involving structured types.
func Dump(v ...any) string {
	return spew.Sdump(v...)
}
