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

package armv2_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/armv2"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/test"
)

const pcMask = 0x03fffffc

// the core must satisfy the interface used by the rest of the debugger
var _ core.Core = (*armv2.ARMv2)(nil)

// image returns a boot image with the words placed at the addresses given by
// the map keys. the image is padded to the minimum boot size.
func image(words map[uint32]uint32) []byte {
	size := uint32(armv2.MinimumBootSize)
	for a := range words {
		if a+4 > size {
			size = a + 4
		}
	}
	b := make([]byte, size)
	for a, w := range words {
		binary.LittleEndian.PutUint32(b[a:], w)
	}
	return b
}

func newCore(t *testing.T, words map[uint32]uint32) *armv2.ARMv2 {
	t.Helper()
	arm, err := armv2.NewARMv2(0x4000, image(words))
	test.DemandSuccess(t, err)
	return arm
}

func TestBootImage(t *testing.T) {
	_, err := armv2.NewARMv2(0x4000, make([]byte, armv2.MinimumBootSize-1))
	test.ExpectEquality(t, curated.Is(err, armv2.BootTooSmall), true)

	_, err = armv2.NewARMv2(0x1000, make([]byte, 0x1001))
	test.ExpectEquality(t, curated.Is(err, armv2.BootTooLarge), true)

	arm, err := armv2.NewARMv2(0x4000, make([]byte, armv2.MinimumBootSize))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, arm.MemorySize(), uint32(0x4000))
	test.ExpectEquality(t, arm.Mode(), core.ModeSVC)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0))
	test.ExpectEquality(t, arm.PSR(), core.FlagI|core.FlagF|uint32(core.ModeSVC))
}

func TestArithmetic(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a00001, // MOV R0, #1
		0x04: 0xe3a01002, // MOV R1, #2
		0x08: 0xe0802001, // ADD R2, R0, R1
		0x0c: 0xe0503000, // SUBS R3, R0, R0
		0x10: 0xe1500001, // CMP R0, R1
		0x14: core.BreakpointTrap,
	})

	st := arm.Step(100)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x14))
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x14))

	test.ExpectEquality(t, arm.Register(2), uint32(3))
	test.ExpectEquality(t, arm.Register(3), uint32(0))

	// 1 - 2 is negative with a borrow
	test.ExpectEquality(t, arm.PSR()&(core.FlagN|core.FlagZ|core.FlagC|core.FlagV), core.FlagN)

	// the trap is not consumed
	st = arm.Step(1)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x14))
}

func TestStepCount(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a00001, // MOV R0, #1
		0x04: 0xe3a01002, // MOV R1, #2
		0x08: 0xe0802001, // ADD R2, R0, R1
	})

	st := arm.Step(2)
	test.ExpectEquality(t, st.Kind, core.StatusNormal)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x08))
	test.ExpectEquality(t, arm.Register(2), uint32(0))

	st = arm.Step(0)
	test.ExpectEquality(t, st.Kind, core.StatusNormal)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x08))
}

func TestBranchLoop(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a00000, // MOV R0, #0
		0x04: 0xe2800001, // ADD R0, R0, #1
		0x08: 0xe3500005, // CMP R0, #5
		0x0c: 0x1afffffc, // BNE 0x04
		0x10: core.BreakpointTrap,
	})

	st := arm.Step(100)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x10))
	test.ExpectEquality(t, arm.Register(0), uint32(5))
	test.ExpectEquality(t, arm.PSR()&core.FlagZ, core.FlagZ)
}

func TestBranchWithLink(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xeb000002, // BL 0x10
		0x04: core.BreakpointTrap,
		0x10: 0xe3a00007, // MOV R0, #7
		0x14: 0xe1a0f00e, // MOV PC, LR
	})

	arm.Step(1)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x10))
	test.ExpectEquality(t, arm.Register(core.LR)&pcMask, uint32(0x04))
	test.ExpectEquality(t, arm.Register(core.LR)&^pcMask, arm.PSR())

	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x04))
	test.ExpectEquality(t, arm.Register(0), uint32(7))
}

func TestShifts(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe1b00081, // MOVS R0, R1, LSL #1
		0x04: 0xe1b02063, // MOVS R2, R3, RRX
		0x08: core.BreakpointTrap,
	})
	arm.SetRegister(1, 0x80000000)
	arm.SetRegister(3, 0x02)

	arm.Step(1)
	test.ExpectEquality(t, arm.Register(0), uint32(0))
	test.ExpectEquality(t, arm.PSR()&(core.FlagZ|core.FlagC), core.FlagZ|core.FlagC)

	// carry is shifted into bit 31
	arm.Step(1)
	test.ExpectEquality(t, arm.Register(2), uint32(0x80000001))
	test.ExpectEquality(t, arm.PSR()&(core.FlagN|core.FlagZ|core.FlagC), core.FlagN)
}

func TestMultiply(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe0000291, // MUL R0, R1, R2
		0x04: 0xe0234291, // MLA R3, R1, R2, R4
		0x08: core.BreakpointTrap,
	})
	arm.SetRegister(1, 6)
	arm.SetRegister(2, 7)
	arm.SetRegister(4, 100)

	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, arm.Register(0), uint32(42))
	test.ExpectEquality(t, arm.Register(3), uint32(142))
}

func TestSingleTransfer(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a01a01, // MOV R1, #0x1000
		0x04: 0xe3a000ff, // MOV R0, #0xff
		0x08: 0xe5a10004, // STR R0, [R1, #0x4]!
		0x0c: 0xe4912004, // LDR R2, [R1], #0x4
		0x10: 0xe5513004, // LDRB R3, [R1, #-0x4]
		0x14: 0xe59f4000, // LDR R4, [PC, #0x0]
		0x18: core.BreakpointTrap,
		0x1c: 0xdeadbeef,
	})

	st := arm.Step(100)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x18))

	test.ExpectEquality(t, arm.Register(1), uint32(0x1008))
	test.ExpectEquality(t, arm.Register(2), uint32(0xff))
	test.ExpectEquality(t, arm.Register(3), uint32(0xff))
	test.ExpectEquality(t, arm.Register(4), uint32(0xdeadbeef))

	v, err := arm.ReadWord(0x1004)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xff))
}

func TestUnalignedLoad(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe5910000, // LDR R0, [R1]
		0x04: core.BreakpointTrap,
	})
	test.DemandSuccess(t, arm.WriteWord(0x1000, 0x44332211))
	arm.SetRegister(1, 0x1001)

	arm.Step(1)
	test.ExpectEquality(t, arm.Register(0), uint32(0x11443322))
}

func TestSwap(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe1032091, // SWP R2, R1, [R3]
		0x04: 0xe1454096, // SWPB R4, R6, [R5]
		0x08: core.BreakpointTrap,
	})
	test.DemandSuccess(t, arm.WriteWord(0x1000, 0x55))
	test.DemandSuccess(t, arm.WriteWord(0x1004, 0xaabbccdd))
	arm.SetRegister(1, 0x66)
	arm.SetRegister(3, 0x1000)
	arm.SetRegister(5, 0x1004)
	arm.SetRegister(6, 0x77)

	arm.Step(10)
	test.ExpectEquality(t, arm.Register(2), uint32(0x55))
	test.ExpectEquality(t, arm.Register(4), uint32(0xdd))

	v, err := arm.ReadWord(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x66))

	v, err = arm.ReadWord(0x1004)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xaabbcc77))
}

func TestMultiTransfer(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a0da02, // MOV SP, #0x2000
		0x04: 0xe3a00001, // MOV R0, #1
		0x08: 0xe3a01002, // MOV R1, #2
		0x0c: 0xe3a02003, // MOV R2, #3
		0x10: 0xe92d0007, // STMDB SP!, {R0 - R2}
		0x14: 0xe8bd0038, // LDMIA SP!, {R3 - R5}
		0x18: core.BreakpointTrap,
	})

	arm.Step(5)
	test.ExpectEquality(t, arm.Register(core.SP), uint32(0x1ff4))
	for i, a := range []uint32{0x1ff4, 0x1ff8, 0x1ffc} {
		v, err := arm.ReadWord(a)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, uint32(i+1))
	}

	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, arm.Register(core.SP), uint32(0x2000))
	test.ExpectEquality(t, arm.Register(3), uint32(1))
	test.ExpectEquality(t, arm.Register(4), uint32(2))
	test.ExpectEquality(t, arm.Register(5), uint32(3))
}

func TestSoftwareInterrupt(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xea000006, // B 0x20
		0x04: core.BreakpointTrap,
		0x08: 0xea00000c, // B 0x40
		0x0c: core.BreakpointTrap,
		0x10: core.BreakpointTrap,
		0x14: core.BreakpointTrap,
		0x20: 0xe33ff000, // TEQP PC, #0
		0x24: 0xe3a0d005, // MOV SP, #5
		0x28: 0xef000010, // SWI #0x10
		0x2c: core.BreakpointTrap,
		0x40: 0xe3a0d009, // MOV SP, #9
		0x44: 0xe1b0f00e, // MOVS PC, LR
	})

	arm.Step(2)
	test.ExpectEquality(t, arm.Mode(), core.ModeUSR)
	test.ExpectEquality(t, arm.PSR(), uint32(0))

	arm.Step(2)
	test.ExpectEquality(t, arm.Mode(), core.ModeSVC)
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x08))
	test.ExpectEquality(t, arm.Register(core.LR), uint32(0x2c))
	test.ExpectEquality(t, arm.PSR(), core.FlagI|uint32(core.ModeSVC))

	// supervisor stack pointer is banked
	arm.Step(2)
	test.ExpectEquality(t, arm.Register(core.SP), uint32(9))

	// return to user mode
	arm.Step(1)
	test.ExpectEquality(t, arm.Mode(), core.ModeUSR)
	test.ExpectEquality(t, arm.Register(core.SP), uint32(5))

	st := arm.Step(1)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x2c))
}

func TestUndefinedInstruction(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xea000006, // B 0x20
		0x04: core.BreakpointTrap,
		0x20: 0xee000000, // CDO
	})
	psr := arm.PSR()

	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x04))
	test.ExpectEquality(t, arm.Register(core.LR), uint32(0x24)|psr)
}

func TestDataAbort(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xea000006, // B 0x20
		0x10: core.BreakpointTrap,
		0x20: 0xe5800000, // STR R0, [R0]
	})

	// the first page is write protected to the program
	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x10))
	test.ExpectEquality(t, arm.Register(core.LR)&pcMask, uint32(0x28))
}

func TestAddressException(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xea000006, // B 0x20
		0x14: core.BreakpointTrap,
		0x20: 0xe5910000, // LDR R0, [R1]
	})
	arm.SetRegister(1, 0x04000000)

	st := arm.Step(10)
	test.ExpectEquality(t, st.Kind, core.StatusBreakpoint)
	test.ExpectEquality(t, st.Address, uint32(0x14))
}

func TestConditionNever(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xf3a00001, // MOVNV R0, #1
		0x04: core.BreakpointTrap,
	})
	arm.Step(1)
	test.ExpectEquality(t, arm.Register(0), uint32(0))
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0x04))
}

func TestReset(t *testing.T) {
	arm := newCore(t, map[uint32]uint32{
		0x00: 0xe3a00001, // MOV R0, #1
	})
	arm.Step(1)
	test.ExpectEquality(t, arm.Register(0), uint32(1))

	arm.Reset()
	test.ExpectEquality(t, arm.Register(0), uint32(0))
	test.ExpectEquality(t, arm.Register(core.PC), uint32(0))
	test.ExpectEquality(t, arm.Mode(), core.ModeSVC)
}
