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

// Package disassembly decodes 32-bit ARMv2 instruction words into structured,
// human readable instructions.
//
// Decode() is total. Every word decodes to an Instruction, with encodings that
// are not recognised (the coprocessor classes) decoding to placeholder
// instructions.
//
// Disassemble() creates a Sequence of instructions over a range of memory. The
// Sequence consults a Shadow (normally the debugger's breakpoint table) so
// that the original instruction is shown at addresses that have been patched
// by the debugger.
package disassembly
