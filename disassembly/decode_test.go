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

package disassembly_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jetsetilly/armv2dbg/disassembly"
	"github.com/jetsetilly/armv2dbg/test"
)

// simple implementation of the WordReader interface
type memory map[uint32]uint32

func (mem memory) ReadWord(address uint32) (uint32, error) {
	if v, ok := mem[address]; ok {
		return v, nil
	}
	return 0, errors.New("no memory")
}

func TestDecodeDataProcessing(t *testing.T) {
	ins := disassembly.DecodeWord(0, 0xe3a00001)
	test.ExpectEquality(t, ins.Class, disassembly.ClassDataProcessing)
	test.ExpectEquality(t, ins.Condition, disassembly.CondAL)
	test.ExpectEquality(t, ins.Mnemonic, "MOV")
	test.ExpectEquality(t, len(ins.Operands), 2)
	test.ExpectEquality(t, ins.Operands[0], "R0")
	test.ExpectEquality(t, ins.Operands[1], "#0x1")
	test.ExpectEquality(t, ins.String(), "MOV R0, #0x1")

	// rotated immediate
	ins = disassembly.DecodeWord(0, 0xe3a004ff)
	test.ExpectEquality(t, ins.String(), "MOV R0, #0xff000000")

	// shifted register
	ins = disassembly.DecodeWord(0, 0xe0810102)
	test.ExpectEquality(t, ins.String(), "ADD R0, R1, R2, LSL #0x2")

	// register shift amount
	ins = disassembly.DecodeWord(0, 0xe1a00211)
	test.ExpectEquality(t, ins.String(), "MOV R0, R1, LSL R2")

	// immediate shift of zero is omitted
	ins = disassembly.DecodeWord(0, 0xe1a00021)
	test.ExpectEquality(t, ins.String(), "MOV R0, R1")

	// except for ROR #0
	ins = disassembly.DecodeWord(0, 0xe1a00061)
	test.ExpectEquality(t, ins.String(), "MOV R0, R1, RRX")

	// comparisons render Rd and Rn
	ins = disassembly.DecodeWord(0, 0xe3510000)
	test.ExpectEquality(t, ins.Mnemonic, "CMP")
	test.ExpectEquality(t, ins.String(), "CMP R0, R1, #0x0")

	// MVN does not render Rn
	ins = disassembly.DecodeWord(0, 0xe3e0d000)
	test.ExpectEquality(t, ins.String(), "MVN SP, #0x0")
}

func TestDecodeConditions(t *testing.T) {
	expected := []string{
		"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
		"HI", "LS", "GE", "LT", "GT", "LE", "", "NV",
	}
	for i, c := range expected {
		ins := disassembly.DecodeWord(0, uint32(i)<<28|0x01a00001)
		test.ExpectEquality(t, ins.Condition.String(), c)
		test.ExpectEquality(t, ins.String(), "MOV"+c+" R0, R1")
	}
}

func TestDecodeMultiplyAndSwap(t *testing.T) {
	// bits 7 to 4 are 0b1001 and bits 11 to 8 are zero
	ins := disassembly.DecodeWord(0x1000, 0x00000090)
	test.ExpectEquality(t, ins.Class, disassembly.ClassSwap)
	test.ExpectEquality(t, ins.String(), "SWPEQ R0, R0, [R0]")

	// bits 11 to 8 are not zero
	ins = disassembly.DecodeWord(0x1000, 0xe0000291)
	test.ExpectEquality(t, ins.Class, disassembly.ClassMultiply)
	test.ExpectEquality(t, ins.String(), "MUL R0, R1, R2")

	ins = disassembly.DecodeWord(0, 0xe0234392)
	test.ExpectEquality(t, ins.String(), "MLA R3, R2, R3, R4")

	ins = disassembly.DecodeWord(0, 0xe1432091)
	test.ExpectEquality(t, ins.Class, disassembly.ClassSwap)
	test.ExpectEquality(t, ins.String(), "SWPB R2, R1, [R3]")

	ins = disassembly.DecodeWord(0, 0xe1032091)
	test.ExpectEquality(t, ins.String(), "SWP R2, R1, [R3]")
}

func TestDecodeSingleTransfer(t *testing.T) {
	// pre-indexed
	ins := disassembly.DecodeWord(0, 0xe5910004)
	test.ExpectEquality(t, ins.Class, disassembly.ClassSingleTransfer)
	test.ExpectEquality(t, ins.String(), "LDR R0, [R1, #0x4]")

	// post-indexed
	ins = disassembly.DecodeWord(0, 0xe4910004)
	test.ExpectEquality(t, ins.String(), "LDR R0, [R1], #0x4")

	// negative offset
	ins = disassembly.DecodeWord(0, 0xe5110004)
	test.ExpectEquality(t, ins.String(), "LDR R0, [R1, #-0x4]")

	// write-back
	ins = disassembly.DecodeWord(0, 0xe5a10004)
	test.ExpectEquality(t, ins.Mnemonic, "STR!")
	test.ExpectEquality(t, ins.String(), "STR! R0, [R1, #0x4]")

	// write-back marker precedes the condition
	ins = disassembly.DecodeWord(0, 0x05b10004)
	test.ExpectEquality(t, ins.Mnemonic, "LDR!")
	test.ExpectEquality(t, ins.Condition, disassembly.CondEQ)
	test.ExpectEquality(t, ins.String(), "LDR!EQ R0, [R1, #0x4]")

	// register offset
	ins = disassembly.DecodeWord(0, 0xe7910102)
	test.ExpectEquality(t, ins.String(), "LDR R0, [R1, R2, LSL #0x2]")

	// register shift flag is ignored
	ins = disassembly.DecodeWord(0, 0xe7900211)
	test.ExpectEquality(t, ins.String(), "LDR R0, [R0, R1, LSL #0x4]")
}

func TestDecodeLiteral(t *testing.T) {
	mem := memory{0x110: 0xdeadbeef, 0x104: 0x12345678}

	ins := disassembly.Decode(0x100, 0xe59f0008, mem)
	test.ExpectEquality(t, ins.HasTarget, true)
	test.ExpectEquality(t, ins.Target, uint32(0x110))
	test.ExpectEquality(t, ins.String(), "LDR R0, =0xdeadbeef")

	ins = disassembly.Decode(0x100, 0xe51f0004, mem)
	test.ExpectEquality(t, ins.Target, uint32(0x104))
	test.ExpectEquality(t, ins.String(), "LDR R0, =0x12345678")

	// no memory
	ins = disassembly.DecodeWord(0x100, 0xe59f0008)
	test.ExpectEquality(t, ins.String(), "LDR R0, =?")

	// unreadable memory
	ins = disassembly.Decode(0x200, 0xe59f0008, mem)
	test.ExpectEquality(t, ins.String(), "LDR R0, =?")
}

func TestDecodeBranch(t *testing.T) {
	ins := disassembly.DecodeWord(0x8000, 0xeafffffe)
	test.ExpectEquality(t, ins.Class, disassembly.ClassBranch)
	test.ExpectEquality(t, ins.Mnemonic, "B")
	test.ExpectEquality(t, ins.Target, uint32(0x8000+(0xfffffe<<2)+8))
	test.ExpectEquality(t, ins.String(), "B 0x04008000")

	ins = disassembly.DecodeWord(0x100, 0xeb000001)
	test.ExpectEquality(t, ins.Mnemonic, "BL")
	test.ExpectEquality(t, ins.String(), "BL 0x0000010c")

	ins = disassembly.DecodeWord(0, 0x1a000000)
	test.ExpectEquality(t, ins.String(), "BNE 0x00000008")

	// target wraps around the address space
	ins = disassembly.DecodeWord(0xfffffff0, 0xea000004)
	test.ExpectEquality(t, ins.Target, uint32(0x08))
}

func TestDecodeMultiTransfer(t *testing.T) {
	ins := disassembly.DecodeWord(0, 0xe8bd800f)
	test.ExpectEquality(t, ins.Class, disassembly.ClassMultiTransfer)
	test.ExpectEquality(t, ins.String(), "LDMIA SP!, {R0 - R3,PC}")

	ins = disassembly.DecodeWord(0, 0xe92d4070)
	test.ExpectEquality(t, ins.String(), "STMDB SP!, {R4 - R6,LR}")

	ins = disassembly.DecodeWord(0, 0xe9910003)
	test.ExpectEquality(t, ins.String(), "LDMIB R1, {R0,R1}")

	ins = disassembly.DecodeWord(0, 0xe8000001)
	test.ExpectEquality(t, ins.String(), "STMDA R0, {R0}")
}

func TestRegisterList(t *testing.T) {
	test.ExpectEquality(t, disassembly.RegisterList(0b111), "{R0 - R2}")
	test.ExpectEquality(t, disassembly.RegisterList(0b101), "{R0,R2}")
	test.ExpectEquality(t, disassembly.RegisterList(0b011), "{R0,R1}")
	test.ExpectEquality(t, disassembly.RegisterList(0xc000), "{LR,PC}")
	test.ExpectEquality(t, disassembly.RegisterList(0xffff), "{R0 - PC}")
	test.ExpectEquality(t, disassembly.RegisterList(0b1101110), "{R1 - R3,R5,R6}")
	test.ExpectEquality(t, disassembly.RegisterList(0), "{}")
}

func TestDecodeSoftwareInterrupt(t *testing.T) {
	ins := disassembly.DecodeWord(0, 0xef00feed)
	test.ExpectEquality(t, ins.Class, disassembly.ClassSoftwareInterrupt)
	test.ExpectEquality(t, ins.String(), "SWI #0xfeed")

	ins = disassembly.DecodeWord(0, 0x0f123456)
	test.ExpectEquality(t, ins.String(), "SWIEQ #0x123456")
}

func TestDecodeCoprocessor(t *testing.T) {
	ins := disassembly.DecodeWord(0, 0xec000000)
	test.ExpectEquality(t, ins.Class, disassembly.ClassCoprocessorTransfer)
	test.ExpectEquality(t, ins.Class.Recognised(), false)

	ins = disassembly.DecodeWord(0, 0xee000010)
	test.ExpectEquality(t, ins.Class, disassembly.ClassCoprocessorRegister)

	ins = disassembly.DecodeWord(0, 0xee000000)
	test.ExpectEquality(t, ins.Class, disassembly.ClassCoprocessorOperation)
	test.ExpectEquality(t, len(ins.Operands), 0)
}

// every word decodes to something and decoding is deterministic
func TestDecodeTotal(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x41524d32))
	for i := 0; i < 100000; i++ {
		word := rnd.Uint32()
		address := rnd.Uint32() &^ 0x03

		a := disassembly.DecodeWord(address, word)
		b := disassembly.DecodeWord(address, word)

		if !test.ExpectInequality(t, a.Mnemonic, "", word) {
			return
		}
		if !test.ExpectEquality(t, a.String(), b.String(), word) {
			return
		}
		test.ExpectEquality(t, a.Word, word)
		test.ExpectEquality(t, a.Address, address)
	}
}
