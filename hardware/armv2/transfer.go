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

// addresses at or above this limit raise an address exception.
const addressLimit = 1 << 26

// loadWord reads the word containing the address. unaligned addresses
// rotate the word so that the addressed byte is in the least significant
// position.
func (arm *ARMv2) loadWord(address uint32) (uint32, error) {
	v, err := arm.mem.Read(address &^ 0x03)
	if err != nil {
		return 0, err
	}
	return bits.RotateLeft32(v, -int((address&0x03)<<3)), nil
}

// storeValue is the value of the register when used as the source of a store.
// register 15 stores the address of the instruction plus twelve with the PSR.
func (arm *ARMv2) storeValue(i uint32) uint32 {
	if i == core.PC {
		return ((arm.executing + 12) & pcMask) | arm.PSR()
	}
	return *arm.reg(i)
}

func (arm *ARMv2) swap(word uint32) exception {
	byteSwap := word&0x00400000 == 0x00400000
	rn := (word >> 16) & 0x0f
	rd := (word >> 12) & 0x0f
	rm := word & 0x0f

	address := arm.operand(rn)
	if address >= addressLimit {
		return addressException
	}

	src := arm.operand(rm)

	if byteSwap {
		v, err := arm.mem.Read8(address)
		if err != nil {
			return dataAbort
		}
		if err := arm.mem.Write8(address, uint8(src)); err != nil {
			return dataAbort
		}
		arm.write(rd, uint32(v))
		return noException
	}

	v, err := arm.loadWord(address)
	if err != nil {
		return dataAbort
	}
	if err := arm.mem.Write(address&^0x03, src); err != nil {
		return dataAbort
	}
	arm.write(rd, v)

	return noException
}

func (arm *ARMv2) singleTransfer(word uint32) exception {
	registerOffset := word&0x02000000 == 0x02000000
	preIndex := word&0x01000000 == 0x01000000
	up := word&0x00800000 == 0x00800000
	byteTransfer := word&0x00400000 == 0x00400000
	writeBack := word&0x00200000 == 0x00200000
	load := word&0x00100000 == 0x00100000
	rn := (word >> 16) & 0x0f
	rd := (word >> 12) & 0x0f

	var offset uint32
	if registerOffset {
		offset, _ = arm.shift(word, false)
	} else {
		offset = word & 0xfff
	}

	base := arm.operand(rn)

	indexed := base - offset
	if up {
		indexed = base + offset
	}

	address := base
	if preIndex {
		address = indexed
	}

	if address >= addressLimit {
		return addressException
	}

	// post-indexed transfers always write back
	updateBase := func() {
		if (!preIndex || writeBack) && rn != core.PC {
			*arm.reg(rn) = indexed
		}
	}

	if load {
		var v uint32
		var err error
		if byteTransfer {
			var b uint8
			b, err = arm.mem.Read8(address)
			v = uint32(b)
		} else {
			v, err = arm.loadWord(address)
		}
		if err != nil {
			return dataAbort
		}

		// a loaded base register takes the loaded value
		updateBase()
		arm.write(rd, v)

		return noException
	}

	v := arm.storeValue(rd)

	var err error
	if byteTransfer {
		err = arm.mem.Write8(address, uint8(v))
	} else {
		err = arm.mem.Write(address&^0x03, v)
	}
	if err != nil {
		return dataAbort
	}

	updateBase()

	return noException
}

func (arm *ARMv2) multiTransfer(word uint32) exception {
	preIndex := word&0x01000000 == 0x01000000
	up := word&0x00800000 == 0x00800000
	psrOrUser := word&0x00400000 == 0x00400000
	writeBack := word&0x00200000 == 0x00200000
	load := word&0x00100000 == 0x00100000
	rn := (word >> 16) & 0x0f
	list := uint16(word)

	count := uint32(bits.OnesCount16(list))
	if count == 0 {
		return noException
	}

	base := arm.operand(rn)

	// registers are always transferred lowest first to the lowest address
	var address uint32
	var final uint32
	if up {
		address = base
		if preIndex {
			address += 4
		}
		final = base + count*4
	} else {
		address = base - count*4
		if !preIndex {
			address += 4
		}
		final = base - count*4
	}

	address &^= 0x03
	if address >= addressLimit {
		return addressException
	}

	// with the S bit set and R15 not being loaded, the user bank is
	// transferred regardless of the current mode
	userBank := psrOrUser && !(load && list&0x8000 == 0x8000)
	regPtr := func(i uint32) *uint32 {
		if userBank {
			return &arm.regs[i]
		}
		return arm.reg(i)
	}

	if load {
		if writeBack && rn != core.PC {
			*arm.reg(rn) = final
		}

		for i := uint32(0); i < core.NumRegisters; i++ {
			if list&(1<<i) == 0 {
				continue
			}

			v, err := arm.mem.Read(address)
			if err != nil {
				return dataAbort
			}
			address += 4

			if i == core.PC {
				if psrOrUser {
					arm.restorePSR(v)
				}
				arm.pc = v & pcMask
				continue
			}

			*regPtr(i) = v
		}

		return noException
	}

	for i := uint32(0); i < core.NumRegisters; i++ {
		if list&(1<<i) == 0 {
			continue
		}

		var v uint32
		if i == core.PC {
			v = arm.storeValue(i)
		} else {
			v = *regPtr(i)
		}

		if err := arm.mem.Write(address, v); err != nil {
			return dataAbort
		}
		address += 4
	}

	if writeBack && rn != core.PC {
		*arm.reg(rn) = final
	}

	return noException
}
