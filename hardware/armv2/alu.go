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
	"math/bits"

	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// data processing opcodes.
const (
	opAND = iota
	opEOR
	opSUB
	opRSB
	opADD
	opADC
	opSBC
	opRSC
	opTST
	opTEQ
	opCMP
	opCMN
	opORR
	opMOV
	opBIC
	opMVN
)

// shift types.
const (
	shiftLSL = iota
	shiftLSR
	shiftASR
	shiftROR
)

// shift returns the value of the shift operand in bits 11 to 0 and the carry
// out of the shifter. if allowRegShift is false then the shift amount is
// always an immediate value.
func (arm *ARMv2) shift(word uint32, allowRegShift bool) (uint32, bool) {
	val := arm.operandPSR(word & 0x0f)
	typ := (word >> 5) & 0x03
	carry := arm.status.carry

	if allowRegShift && word&0x10 == 0x10 {
		amount := arm.operand((word>>8)&0x0f) & 0xff
		if amount == 0 {
			return val, carry
		}

		switch typ {
		case shiftLSL:
			if amount < 32 {
				carry = (val>>(32-amount))&0x01 == 0x01
				val <<= amount
			} else if amount == 32 {
				carry = val&0x01 == 0x01
				val = 0
			} else {
				carry = false
				val = 0
			}
		case shiftLSR:
			if amount < 32 {
				carry = (val>>(amount-1))&0x01 == 0x01
				val >>= amount
			} else if amount == 32 {
				carry = val&0x80000000 == 0x80000000
				val = 0
			} else {
				carry = false
				val = 0
			}
		case shiftASR:
			if amount < 32 {
				carry = (val>>(amount-1))&0x01 == 0x01
				val = uint32(int32(val) >> amount)
			} else {
				carry = val&0x80000000 == 0x80000000
				val = uint32(int32(val) >> 31)
			}
		case shiftROR:
			amount &= 0x1f
			if amount == 0 {
				carry = val&0x80000000 == 0x80000000
			} else {
				carry = (val>>(amount-1))&0x01 == 0x01
				val = bits.RotateLeft32(val, -int(amount))
			}
		}

		return val, carry
	}

	amount := (word >> 7) & 0x1f

	switch typ {
	case shiftLSL:
		if amount == 0 {
			return val, carry
		}
		carry = (val>>(32-amount))&0x01 == 0x01
		val <<= amount
	case shiftLSR:
		// LSR #0 is the encoding for LSR #32
		if amount == 0 {
			carry = val&0x80000000 == 0x80000000
			val = 0
		} else {
			carry = (val>>(amount-1))&0x01 == 0x01
			val >>= amount
		}
	case shiftASR:
		// ASR #0 is the encoding for ASR #32
		if amount == 0 {
			carry = val&0x80000000 == 0x80000000
			val = uint32(int32(val) >> 31)
		} else {
			carry = (val>>(amount-1))&0x01 == 0x01
			val = uint32(int32(val) >> amount)
		}
	case shiftROR:
		// ROR #0 is the encoding for RRX
		if amount == 0 {
			c := carry
			carry = val&0x01 == 0x01
			val >>= 1
			if c {
				val |= 0x80000000
			}
		} else {
			carry = (val>>(amount-1))&0x01 == 0x01
			val = bits.RotateLeft32(val, -int(amount))
		}
	}

	return val, carry
}

func (arm *ARMv2) dataProcessing(word uint32) exception {
	opcode := (word >> 21) & 0x0f
	setFlags := word&0x00100000 == 0x00100000
	rn := (word >> 16) & 0x0f
	rd := (word >> 12) & 0x0f

	var op2 uint32
	carry := arm.status.carry
	overflow := arm.status.overflow

	if word&0x02000000 == 0x02000000 {
		rot := ((word >> 8) & 0x0f) << 1
		op2 = bits.RotateLeft32(word&0xff, -int(rot))
		if rot != 0 {
			carry = op2&0x80000000 == 0x80000000
		}
	} else {
		op2, carry = arm.shift(word, true)
	}

	a := arm.operand(rn)
	c := arm.status.carry

	var result uint32

	switch opcode {
	case opAND, opTST:
		result = a & op2
	case opEOR, opTEQ:
		result = a ^ op2
	case opSUB, opCMP:
		result, carry, overflow = addWithCarry(a, ^op2, true)
	case opRSB:
		result, carry, overflow = addWithCarry(op2, ^a, true)
	case opADD, opCMN:
		result, carry, overflow = addWithCarry(a, op2, false)
	case opADC:
		result, carry, overflow = addWithCarry(a, op2, c)
	case opSBC:
		result, carry, overflow = addWithCarry(a, ^op2, c)
	case opRSC:
		result, carry, overflow = addWithCarry(op2, ^a, c)
	case opORR:
		result = a | op2
	case opMOV:
		result = op2
	case opBIC:
		result = a &^ op2
	case opMVN:
		result = ^op2
	}

	// the test instructions always set the flags and never write a result.
	// with a destination of register 15 the status is set from the result
	if opcode >= opTST && opcode <= opCMN {
		if rd == core.PC {
			arm.restorePSR(result)
			return noException
		}
		arm.setFlags(result, carry, overflow)
		return noException
	}

	if rd == core.PC {
		if setFlags {
			arm.restorePSR(result)
		}
		arm.pc = result & pcMask
		return noException
	}

	*arm.reg(rd) = result
	if setFlags {
		arm.setFlags(result, carry, overflow)
	}

	return noException
}

func (arm *ARMv2) setFlags(result uint32, carry bool, overflow bool) {
	arm.status.isNegative(result)
	arm.status.isZero(result)
	arm.status.carry = carry
	arm.status.overflow = overflow
}

func (arm *ARMv2) multiply(word uint32) exception {
	rm := word & 0x0f
	rs := (word >> 8) & 0x0f
	rn := (word >> 12) & 0x0f
	rd := (word >> 16) & 0x0f

	result := arm.operand(rm) * arm.operand(rs)
	if word&0x00200000 == 0x00200000 {
		result += arm.operand(rn)
	}

	// writes to register 15 have no effect
	if rd != core.PC {
		*arm.reg(rd) = result
	}

	if word&0x00100000 == 0x00100000 {
		arm.status.isNegative(result)
		arm.status.isZero(result)
	}

	return noException
}
