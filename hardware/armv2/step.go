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

package armv2

import (
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/logger"
)

// exception vectors.
const (
	vectorReset         = 0x00
	vectorUndefined     = 0x04
	vectorSWI           = 0x08
	vectorPrefetchAbort = 0x0c
	vectorDataAbort     = 0x10
	vectorAddress       = 0x14
)

// exception is returned by the instruction functions.
type exception int

const (
	noException exception = iota
	undefinedInstruction
	softwareInterrupt
	prefetchAbort
	dataAbort
	addressException
	breakpoint
)

func (e exception) String() string {
	switch e {
	case undefinedInstruction:
		return "undefined instruction"
	case softwareInterrupt:
		return "software interrupt"
	case prefetchAbort:
		return "prefetch abort"
	case dataAbort:
		return "data abort"
	case addressException:
		return "address exception"
	case breakpoint:
		return "breakpoint"
	}
	return "none"
}

// Step implements the core.Core interface.
func (arm *ARMv2) Step(n int) core.Status {
	for i := 0; i < n; i++ {
		if arm.step() == breakpoint {
			return core.Status{
				Kind:    core.StatusBreakpoint,
				Address: arm.pc,
			}
		}
	}
	return core.Status{Kind: core.StatusNormal}
}

// step executes a single instruction.
func (arm *ARMv2) step() exception {
	arm.executing = arm.pc

	word, err := arm.mem.Read(arm.executing)
	if err != nil {
		arm.exception(prefetchAbort)
		return prefetchAbort
	}

	arm.pc = (arm.executing + 4) & pcMask

	if !arm.status.condition(word >> 28) {
		return noException
	}

	var f func(word uint32) exception

	switch (word >> 26) & 0x03 {
	case 0b00:
		if word&0xf0 != 0x90 {
			f = arm.dataProcessing
		} else if word&0xf00 != 0 {
			f = arm.multiply
		} else {
			f = arm.swap
		}
	case 0b01:
		f = arm.singleTransfer
	case 0b10:
		if word&0x02000000 == 0x02000000 {
			f = arm.branch
		} else {
			f = arm.multiTransfer
		}
	case 0b11:
		if word&0x0f000000 == 0x0f000000 {
			f = arm.softwareInterrupt
		} else {
			f = arm.coprocessor
		}
	}

	e := f(word)
	switch e {
	case noException:
	case breakpoint:
		// the trap is not executed
		arm.pc = arm.executing
	default:
		arm.exception(e)
	}

	return e
}

// exception enters the exception handler. the return address is saved, with
// the processor status, in the link register of the new mode.
func (arm *ARMv2) exception(e exception) {
	var vector uint32
	var ret uint32

	switch e {
	case undefinedInstruction:
		vector = vectorUndefined
		ret = arm.executing + 4
	case softwareInterrupt:
		vector = vectorSWI
		ret = arm.executing + 4
	case prefetchAbort:
		vector = vectorPrefetchAbort
		ret = arm.executing + 4
	case dataAbort:
		vector = vectorDataAbort
		ret = arm.executing + 8
	case addressException:
		vector = vectorAddress
		ret = arm.executing + 8
	default:
		return
	}

	if e != softwareInterrupt {
		logger.Logf(logger.Allow, "armv2", "%s at %#08x", e, arm.executing)
	}

	link := (ret & pcMask) | arm.PSR()

	arm.mode = core.ModeSVC
	arm.status.irqDisable = true
	*arm.reg(core.LR) = link
	arm.pc = vector
}

func (arm *ARMv2) branch(word uint32) exception {
	if word&0x01000000 == 0x01000000 {
		*arm.reg(core.LR) = ((arm.executing + 4) & pcMask) | arm.PSR()
	}

	// the offset is not sign extended but because the address space is 26
	// bits the result is the same
	offset := (word & 0xffffff) << 2
	arm.pc = (arm.executing + 8 + offset) & pcMask

	return noException
}

func (arm *ARMv2) softwareInterrupt(word uint32) exception {
	if word&0xffffff == core.BreakpointComment {
		return breakpoint
	}
	return softwareInterrupt
}

func (arm *ARMv2) coprocessor(_ uint32) exception {
	return undefinedInstruction
}
