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

// Package hardware is the base package for the emulation. The Machine type owns
// a core.Core implementation and executes it on a dedicated goroutine.
//
// Execution is requested with RequestSteps() and the result collected with
// Wait(). The request is a single counter and not a queue, a new request
// overwrites any request that has not completed.
//
// Registers and memory can be read and written from any goroutine while the
// core is executing. Access is serialised with the same critical section used
// by the execution goroutine, which releases it between instructions. Compound
// operations that must not be interleaved with execution should use the Lock()
// function.
//
// A panic in the core is recovered and recorded as a fault. A faulted machine
// will not execute any more instructions and the fault is reported by Wait()
// and Err().
package hardware
