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

package debugger_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/armv2dbg/debugger"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/plainterm"
	"github.com/jetsetilly/armv2dbg/test"
)

// straight line program. R0 is 4 when execution reaches 0x10
var straightLine = []uint32{
	0xe3a00001, // 0x00 MOV R0, #1
	0xe2800001, // 0x04 ADD R0, R0, #1
	0xe2800001, // 0x08 ADD R0, R0, #1
	0xe2800001, // 0x0c ADD R0, R0, #1
	0xe2800001, // 0x10 ADD R0, R0, #1
	0xeafffffe, // 0x14 B 0x14
}

func newPreferences(t *testing.T) *debugger.Preferences {
	t.Helper()
	prf, err := debugger.NewPreferencesFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prf.Color.Set(false))
	return prf
}

// run the debugger with the input and return everything written to the
// terminal
func runDebugger(t *testing.T, input string) string {
	t.Helper()

	eng := newEngine(t, straightLine...)
	out := &strings.Builder{}
	term := plainterm.NewPlainTerminal(strings.NewReader(input), out)

	dbg := debugger.NewDebugger(eng, term, newPreferences(t))
	test.DemandSuccess(t, dbg.Start(context.Background()))

	return out.String()
}

func TestCommandStep(t *testing.T) {
	out := runDebugger(t, "STEP\nstep 2\n")
	test.ExpectListing(t, out, `stopped at 0x00000004
00000004: e2800001  ADD R0, R0, #0x1
stopped at 0x0000000c
0000000c: e2800001  ADD R0, R0, #0x1
`)
}

func TestCommandBreakpoints(t *testing.T) {
	out := runDebugger(t, "BREAK 0x10\nLIST\nCONTINUE\nREGS\nCLEAR ALL\nLIST\n")

	lines := strings.Split(out, "\n")
	test.DemandEquality(t, len(lines) > 6, true)
	test.ExpectEquality(t, lines[0], "breakpoint at 0x00000010")
	test.ExpectEquality(t, lines[1], "00000010: e2800001  ADD R0, R0, #0x1")
	test.ExpectEquality(t, lines[2], "breakpoint at 0x00000010")
	test.ExpectEquality(t, lines[3], "00000010: e2800001  ADD R0, R0, #0x1")
	test.ExpectEquality(t, strings.HasPrefix(lines[4], "R0  00000004"), true)

	test.ExpectEquality(t, strings.Contains(out, "breakpoints cleared\nno breakpoints\n"), true)
}

func TestCommandToggle(t *testing.T) {
	out := runDebugger(t, "TOGGLE 0x08\nTOGGLE 0x08\n")
	test.ExpectListing(t, out, `breakpoint at 0x00000008
no breakpoint at 0x00000008
`)
}

func TestCommandErrors(t *testing.T) {
	out := runDebugger(t, "FOO\nSTEP x\nSTEP 1 2\nSET R16 1\nTYPE hello\n")
	test.ExpectListing(t, out, `* debugger: unknown command (FOO)
* debugger: invalid number (x)
* debugger: wrong number of arguments (STEP [n])
* debugger: invalid register (R16)
* debugger: no keyboard device
`)
}

func TestCommandSetAndMemory(t *testing.T) {
	out := runDebugger(t, "SET r1 0x1234\nPOKE 0x100 0xe3a00001\nMEM 0x100 1\n")
	test.ExpectListing(t, out, `R1 = 0x00001234
00000100: e3a00001  MOV R0, #0x1
00000100: 01 00 a0 e3 00 00 00 00 00 00 00 00 00 00 00 00
`)
}

func TestCommandDisasm(t *testing.T) {
	out := runDebugger(t, "DISASM 0x04 2\n")
	test.ExpectListing(t, out, `00000004: e2800001  ADD R0, R0, #0x1
00000008: e2800001  ADD R0, R0, #0x1
`)
}

func TestCommandHelp(t *testing.T) {
	out := runDebugger(t, "HELP step\n")
	test.ExpectListing(t, out, `STEP [n]
Execute n instructions (default 1). A breakpoint at the current address is stepped over
`)
}

func TestCommandQuit(t *testing.T) {
	out := runDebugger(t, "QUIT\nSTEP\n")
	test.ExpectEquality(t, out, "")
}

func TestCommandScript(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "steps")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("# two steps\nSTEP\n\nSTEP\n"), 0644))

	out := runDebugger(t, "SCRIPT "+fn+"\n")
	test.ExpectListing(t, out, `stopped at 0x00000004
00000004: e2800001  ADD R0, R0, #0x1
stopped at 0x00000008
00000008: e2800001  ADD R0, R0, #0x1
`)
}

func TestCommandLuaScript(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "steps.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("dbg.step(3)\nprint(dbg.reg(0))\n"), 0644))

	out := runDebugger(t, "SCRIPT "+fn+"\n")
	test.ExpectListing(t, out, "3\n")
}

func TestCommandRecord(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "recording")

	runDebugger(t, "SCRIPT RECORD "+fn+"\nSTEP\nFOO\nSCRIPT END\n")

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectListing(t, string(b), `STEP
# stopped at 0x00000004
# 00000004: e2800001  ADD R0, R0, #0x1
`)

	// the recording can be played back
	out := runDebugger(t, "SCRIPT "+fn+"\n")
	test.ExpectListing(t, out, `stopped at 0x00000004
00000004: e2800001  ADD R0, R0, #0x1
`)
}

func TestCommandPrefs(t *testing.T) {
	out := runDebugger(t, "PREFS SET debugger.memlines 2\nMEM 0\n")
	test.ExpectListing(t, out, `00000000: 01 00 a0 e3 01 00 80 e2 01 00 80 e2 01 00 80 e2
00000010: 01 00 80 e2 fe ff ff ea 00 00 00 00 00 00 00 00
`)
}

func TestCommandKeys(t *testing.T) {
	out := runDebugger(t, "KEYS\ns\nq\nREGS\n")
	test.ExpectEquality(t, strings.Contains(out, "[ code ]"), true)
	test.ExpectEquality(t, strings.Contains(out, "stopped at 0x00000004"), true)
	test.ExpectEquality(t, strings.Contains(out, "PC  00000004"), true)
}

func TestCommandReset(t *testing.T) {
	out := runDebugger(t, "STEP 3\nRESET\n")
	test.ExpectListing(t, out, `stopped at 0x0000000c
0000000c: e2800001  ADD R0, R0, #0x1
00000000: e3a00001  MOV R0, #0x1
`)
}

func TestCommandBackground(t *testing.T) {
	out := runDebugger(t, "BREAK 0x10\nCONTINUE BG\nSTOP\n")
	test.ExpectEquality(t, strings.HasPrefix(out, "breakpoint at 0x00000010\nrunning in background\n"), true)
	test.ExpectEquality(t, strings.Contains(out, "* "), false)
}
