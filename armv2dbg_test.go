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

package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/armv2dbg/test"
)

// write the program to a boot image in a temporary directory
func writeImage(t *testing.T, program ...uint32) string {
	t.Helper()
	b := make([]byte, len(program)*4)
	for i, w := range program {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
	fn := filepath.Join(t.TempDir(), "boot.img")
	test.DemandSuccess(t, os.WriteFile(fn, b, 0644))
	return fn
}

var program = []uint32{
	0xe3a00001, // MOV R0, #1
	0xe2800001, // ADD R0, R0, #1
	0xe2800001, // ADD R0, R0, #1
	0xe2800001, // ADD R0, R0, #1
	0xe2800001, // ADD R0, R0, #1
	0xeafffffe, // B .
}

func TestDisasmMode(t *testing.T) {
	fn := writeImage(t, program[:2]...)

	// image is too small
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"disasm", fn}, w), 20)
	test.ExpectEquality(t, strings.Contains(w.String(), "boot image too small (8 bytes)"), true)

	fn = writeImage(t, program...)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"disasm", "--origin", "0x8000", fn}, w), 0)
	test.ExpectListing(t, w.String(), `00008000: e3a00001  MOV R0, #0x1
00008004: e2800001  ADD R0, R0, #0x1
00008008: e2800001  ADD R0, R0, #0x1
0000800c: e2800001  ADD R0, R0, #0x1
00008010: e2800001  ADD R0, R0, #0x1
00008014: eafffffe  B 0x04008014
`)
}

func TestRunMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fn := writeImage(t, program...)

	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"run", "--steps", "3", fn}, w), 0)

	lines := strings.Split(w.String(), "\n")
	test.DemandEquality(t, len(lines) > 2, true)
	test.ExpectEquality(t, lines[0], "stopped at 0x0000000c")
	test.ExpectEquality(t, strings.HasPrefix(lines[1], "R0  00000003"), true)
}

func TestArguments(t *testing.T) {
	w := &strings.Builder{}
	test.ExpectEquality(t, launch([]string{"disasm"}, w), 20)
	test.ExpectEquality(t, strings.Contains(w.String(), "boot image required"), true)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"disasm", "a", "b"}, w), 20)
	test.ExpectEquality(t, strings.Contains(w.String(), "too many arguments"), true)

	w.Reset()
	test.ExpectEquality(t, launch([]string{"disasm", "--bogus", "a"}, w), 20)
}
