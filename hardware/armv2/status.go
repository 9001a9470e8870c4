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
)

// the status register. the mode is held separately in the ARMv2 type
type status struct {
	negative bool
	zero     bool
	carry    bool
	overflow bool

	irqDisable bool
	fiqDisable bool
}

func (sr *status) isNegative(a uint32) {
	sr.negative = a&0x80000000 == 0x80000000
}

func (sr *status) isZero(a uint32) {
	sr.zero = a == 0x00
}

// pack returns the flags in the positions used by the PSR.
func (sr status) pack() uint32 {
	var v uint32
	if sr.negative {
		v |= core.FlagN
	}
	if sr.zero {
		v |= core.FlagZ
	}
	if sr.carry {
		v |= core.FlagC
	}
	if sr.overflow {
		v |= core.FlagV
	}
	if sr.irqDisable {
		v |= core.FlagI
	}
	if sr.fiqDisable {
		v |= core.FlagF
	}
	return v
}

// unpack the flags from a PSR value. the interrupt disable flags are only
// changed if privileged is true.
func (sr *status) unpack(v uint32, privileged bool) {
	sr.negative = v&core.FlagN == core.FlagN
	sr.zero = v&core.FlagZ == core.FlagZ
	sr.carry = v&core.FlagC == core.FlagC
	sr.overflow = v&core.FlagV == core.FlagV
	if privileged {
		sr.irqDisable = v&core.FlagI == core.FlagI
		sr.fiqDisable = v&core.FlagF == core.FlagF
	}
}

// condition returns true if the instruction with the condition field should be
// executed.
func (sr status) condition(cond uint32) bool {
	switch cond & 0x0f {
	case 0b0000:
		// equal
		return sr.zero
	case 0b0001:
		// not equal
		return !sr.zero
	case 0b0010:
		// carry set
		return sr.carry
	case 0b0011:
		// carry clear
		return !sr.carry
	case 0b0100:
		// minus
		return sr.negative
	case 0b0101:
		// plus
		return !sr.negative
	case 0b0110:
		// overflow
		return sr.overflow
	case 0b0111:
		// no overflow
		return !sr.overflow
	case 0b1000:
		// unsigned higher C==1 and Z==0
		return sr.carry && !sr.zero
	case 0b1001:
		// unsigned lower or same C==0 or Z==1
		return !sr.carry || sr.zero
	case 0b1010:
		// signed greater than or equal N==V
		return sr.negative == sr.overflow
	case 0b1011:
		// signed less than N!=V
		return sr.negative != sr.overflow
	case 0b1100:
		// signed greater than Z==0 and N==V
		return !sr.zero && sr.negative == sr.overflow
	case 0b1101:
		// signed less than or equal Z==1 or N!=V
		return sr.zero || sr.negative != sr.overflow
	case 0b1110:
		// always
		return true
	}

	// never
	return false
}

// addWithCarry returns the result of a+b+c along with the carry and overflow
// flags. subtraction is performed by the caller inverting b and setting c.
func addWithCarry(a, b uint32, c bool) (uint32, bool, bool) {
	r := uint64(a) + uint64(b)
	if c {
		r++
	}
	result := uint32(r)
	carry := r>>32 != 0
	overflow := (^(a^b))&(a^result)&0x80000000 != 0
	return result, carry, overflow
}
