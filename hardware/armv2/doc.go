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

// Package armv2 is a reference implementation of the core.Core interface for
// the ARMv2 instruction set. It implements the 26-bit programming model, with
// the processor status packed into the top and bottom bits of register 15,
// banked registers for the FIQ, IRQ and SVC modes and the exception vectors at
// the bottom of memory.
//
// The core executes data processing, multiply, swap, single and block data
// transfer, branch and software interrupt instructions. The coprocessor
// instruction classes cause the undefined instruction exception.
//
// The core.BreakpointTrap instruction is not executed. Instead, Step() returns
// with a core.StatusBreakpoint status and the program counter pointing at the
// trap.
//
// Cycle timing is not emulated.
package armv2
