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

// Package script allows the debugger to be driven by files. There are two
// types of script.
//
// Lua scripts are run with RunLua(). The script sees a table called dbg with
// functions that control the debugger:
//
//	dbg.step(n)        step n instructions (default 1). returns the result
//	dbg.cont()         continue until a breakpoint. returns the result
//	dbg.brk(addr)      add breakpoint
//	dbg.clear(addr)    remove breakpoint
//	dbg.reg(i)         value of register i
//	dbg.setreg(i, v)   set register i
//	dbg.peek(addr)     word at address
//	dbg.poke(addr, v)  write word to address
//	dbg.disasm(addr)   disassembly of the instruction at address
//	dbg.print(...)     print values to the debugger output
//
// Command scripts are lists of debugger commands, one per line. They are
// created with the Scribe type, which records commands as they are entered,
// and are played back with the Rescribe type, which implements the
// terminal.Input interface. Lines beginning with a hash character are
// comments and are ignored on playback.
package script
