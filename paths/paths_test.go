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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jetsetilly/armv2dbg/paths"
	"github.com/jetsetilly/armv2dbg/test"
)

func TestResourcePath(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	// local resource directory takes precedence
	test.DemandSuccess(t, os.Mkdir(".armv2dbg", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".armv2dbg", "foo", "bar", "baz"))

	// the directory is created
	_, err = os.Stat(filepath.Join(".armv2dbg", "foo", "bar"))
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".armv2dbg", "baz"))
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("graph", "boot", "dot")
	test.ExpectEquality(t, regexp.MustCompile(`^graph_boot_\d{8}_\d{6}\.dot$`).MatchString(fn), true)

	fn = paths.UniqueFilename("graph", " ", "")
	test.ExpectEquality(t, regexp.MustCompile(`^graph_\d{8}_\d{6}$`).MatchString(fn), true)
}
