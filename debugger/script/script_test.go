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

package script_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/script"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/test"
)

// minimal implementation of the script.Debugger interface
type debugger struct {
	regs        [16]uint32
	mem         map[uint32]uint32
	breakpoints map[uint32]bool
	steps       int
}

func newDebugger() *debugger {
	return &debugger{
		mem:         make(map[uint32]uint32),
		breakpoints: make(map[uint32]bool),
	}
}

func (dbg *debugger) Step(_ context.Context, n int) (string, error) {
	dbg.steps += n
	dbg.regs[15] += uint32(n * 4)
	return "normal", nil
}

func (dbg *debugger) Continue(ctx context.Context) (string, error) {
	for !dbg.breakpoints[dbg.regs[15]] {
		if ctx.Err() != nil {
			return "cancelled", nil
		}
		dbg.regs[15] += 4
	}
	return fmt.Sprintf("breakpoint at %#08x", dbg.regs[15]), nil
}

func (dbg *debugger) AddBreakpoint(address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf("alignment: address %#08x is not word aligned", address)
	}
	dbg.breakpoints[address] = true
	return nil
}

func (dbg *debugger) RemoveBreakpoint(address uint32) error {
	delete(dbg.breakpoints, address)
	return nil
}

func (dbg *debugger) Register(i int) uint32 {
	return dbg.regs[i]
}

func (dbg *debugger) SetRegister(i int, value uint32) {
	dbg.regs[i] = value
}

func (dbg *debugger) ReadWord(address uint32) (uint32, error) {
	return dbg.mem[address], nil
}

func (dbg *debugger) WriteWord(address uint32, value uint32) error {
	dbg.mem[address] = value
	return nil
}

func (dbg *debugger) DisassembleOne(address uint32) (string, error) {
	return fmt.Sprintf("word %#x", dbg.mem[address]), nil
}

func run(t *testing.T, dbg *debugger, src string) (string, error) {
	t.Helper()
	out := &test.CompareWriter{}
	err := script.RunLua(context.Background(), dbg, out, "test", strings.NewReader(src))
	return out.String(), err
}

func TestLuaRegisters(t *testing.T) {
	dbg := newDebugger()
	out, err := run(t, dbg, `
dbg.setreg(0, 10)
dbg.setreg(1, dbg.reg(0) * 2)
dbg.print(dbg.reg(1))
print(string.format("%08x", 0xffffffff))
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dbg.regs[1], uint32(20))
	test.ExpectEquality(t, out, "20\nffffffff\n")
}

func TestLuaMemory(t *testing.T) {
	dbg := newDebugger()
	out, err := run(t, dbg, `
dbg.poke(0x100, 0xe3a00001)
dbg.print(dbg.peek(0x100) == 0xe3a00001, dbg.disasm(0x100))
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dbg.mem[0x100], uint32(0xe3a00001))
	test.ExpectEquality(t, out, "true\tword 0xe3a00001\n")
}

func TestLuaExecution(t *testing.T) {
	dbg := newDebugger()
	out, err := run(t, dbg, `
dbg.step()
dbg.step(3)
dbg.brk(0x40)
dbg.print(dbg.cont())
dbg.clear(0x40)
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dbg.steps, 4)
	test.ExpectEquality(t, dbg.regs[15], uint32(0x40))
	test.ExpectEquality(t, len(dbg.breakpoints), 0)
	test.ExpectEquality(t, out, "breakpoint at 0x00000040\n")
}

func TestLuaErrors(t *testing.T) {
	dbg := newDebugger()

	// errors from the debugger are raised as Lua errors
	_, err := run(t, dbg, `dbg.brk(0x41)`)
	test.ExpectEquality(t, curated.Is(err, script.LuaError), true)
	test.ExpectEquality(t, strings.Contains(err.Error(), "not word aligned"), true)

	_, err = run(t, dbg, `dbg.reg(16)`)
	test.ExpectEquality(t, curated.Is(err, script.LuaError), true)

	// syntax error
	_, err = run(t, dbg, `dbg.step(`)
	test.ExpectEquality(t, curated.Is(err, script.LuaError), true)

	// the os library is not available
	_, err = run(t, dbg, `os.exit(1)`)
	test.ExpectFailure(t, err)
}

func TestLuaCancel(t *testing.T) {
	dbg := newDebugger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := script.RunLua(ctx, dbg, &test.CompareWriter{}, "test", strings.NewReader(`while true do end`))
	test.ExpectEquality(t, err, context.Canceled)
}

func TestScribe(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.script")

	var scr script.Scribe
	test.ExpectEquality(t, scr.IsActive(), false)
	test.DemandSuccess(t, scr.StartSession(fn))
	test.ExpectEquality(t, scr.IsActive(), true)
	test.ExpectEquality(t, curated.Is(scr.StartSession(fn), script.ScribeActive), true)

	scr.WriteInput("STEP 2")
	scr.WriteOutput("normal")

	// failed commands are not recorded
	scr.WriteInput("BREAK 5")
	scr.Rollback()

	// playback is not recorded
	scr.StartPlayback()
	scr.WriteInput("REGS")
	scr.EndPlayback()

	scr.WriteInput("CONTINUE")
	test.DemandSuccess(t, scr.EndSession())
	test.ExpectEquality(t, scr.IsActive(), false)

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "STEP 2\n# normal\nCONTINUE\n")

	// an existing file is not overwritten
	test.ExpectEquality(t, curated.Is(scr.StartSession(fn), script.ScribeExists), true)

	// play back the recording
	rsc, err := script.RescribeScript(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rsc.IsInteractive(), false)

	for _, c := range []string{"STEP 2", "CONTINUE"} {
		s, err := rsc.TermRead(terminal.Prompt{})
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, s, c)
	}
	_, err = rsc.TermRead(terminal.Prompt{})
	test.ExpectEquality(t, curated.Is(err, script.ScriptEnd), true)
}

func TestRescribeMissing(t *testing.T) {
	_, err := script.RescribeScript(filepath.Join(t.TempDir(), "missing"))
	test.ExpectEquality(t, curated.Is(err, script.ScriptFileError), true)
}
