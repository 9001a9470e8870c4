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

package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/armv2dbg/curated"
	lua "github.com/yuin/gopher-lua"
)

// Sentinel error returned by RunLua().
const LuaError = "script: lua: %v"

// Debugger defines the debugger functions available to Lua scripts.
type Debugger interface {
	Step(ctx context.Context, n int) (string, error)
	Continue(ctx context.Context) (string, error)
	AddBreakpoint(address uint32) error
	RemoveBreakpoint(address uint32) error
	Register(i int) uint32
	SetRegister(i int, value uint32)
	ReadWord(address uint32) (uint32, error)
	WriteWord(address uint32, value uint32) error
	DisassembleOne(address uint32) (string, error)
}

// the libraries opened for scripts. the io and os libraries are excluded
var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

type luaScript struct {
	ctx    context.Context
	dbg    Debugger
	output io.Writer
}

// RunLua runs the Lua source read from the reader. The name is used in error
// messages. Output from dbg.print() and the standard print() function is
// written to output. The context is checked between Lua instructions and is
// passed to the step and continue functions.
func RunLua(ctx context.Context, dbg Debugger, output io.Writer, name string, src io.Reader) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range luaLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	L.SetContext(ctx)

	scr := &luaScript{
		ctx:    ctx,
		dbg:    dbg,
		output: output,
	}

	tbl := L.NewTable()
	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"step":   scr.step,
		"cont":   scr.cont,
		"brk":    scr.brk,
		"clear":  scr.clear,
		"reg":    scr.reg,
		"setreg": scr.setreg,
		"peek":   scr.peek,
		"poke":   scr.poke,
		"disasm": scr.disasm,
		"print":  scr.print,
	})
	L.SetGlobal("dbg", tbl)
	L.SetGlobal("print", L.NewFunction(scr.print))

	fn, err := L.Load(src, name)
	if err != nil {
		return curated.Errorf(LuaError, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return curated.Errorf(LuaError, err)
	}

	return nil
}

func checkAddress(L *lua.LState, n int) uint32 {
	return uint32(L.CheckInt64(n))
}

func checkRegister(L *lua.LState, n int) int {
	i := L.CheckInt(n)
	if i < 0 || i > 15 {
		L.ArgError(n, "register must be between 0 and 15")
	}
	return i
}

func (scr *luaScript) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	res, err := scr.dbg.Step(scr.ctx, n)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LString(res))
	return 1
}

func (scr *luaScript) cont(L *lua.LState) int {
	res, err := scr.dbg.Continue(scr.ctx)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LString(res))
	return 1
}

func (scr *luaScript) brk(L *lua.LState) int {
	if err := scr.dbg.AddBreakpoint(checkAddress(L, 1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *luaScript) clear(L *lua.LState) int {
	if err := scr.dbg.RemoveBreakpoint(checkAddress(L, 1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *luaScript) reg(L *lua.LState) int {
	L.Push(lua.LNumber(scr.dbg.Register(checkRegister(L, 1))))
	return 1
}

func (scr *luaScript) setreg(L *lua.LState) int {
	i := checkRegister(L, 1)
	scr.dbg.SetRegister(i, uint32(L.CheckInt64(2)))
	return 0
}

func (scr *luaScript) peek(L *lua.LState) int {
	v, err := scr.dbg.ReadWord(checkAddress(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *luaScript) poke(L *lua.LState) int {
	if err := scr.dbg.WriteWord(checkAddress(L, 1), uint32(L.CheckInt64(2))); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *luaScript) disasm(L *lua.LState) int {
	s, err := scr.dbg.DisassembleOne(checkAddress(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LString(s))
	return 1
}

func (scr *luaScript) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(scr.output, strings.Join(s, "\t"))
	return 0
}
