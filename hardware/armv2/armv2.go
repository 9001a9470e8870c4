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
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/hardware/memory"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
)

// MinimumBootSize is the smallest acceptable boot image. Enough for the
// exception vectors and one instruction.
const MinimumBootSize = 24

// Sentinel errors returned by the armv2 package.
const (
	BootTooSmall = "armv2: boot image too small (%d bytes)"
	BootTooLarge = "armv2: boot image too large (%d bytes)"
)

// the program counter occupies bits 25 to 2 of register 15.
const pcMask = 0x03fffffc

// ARMv2 implements the core.Core interface.
type ARMv2 struct {
	mem *memory.Memory

	// user mode registers. index 15 is unused, the program counter is held
	// separately
	regs [core.NumRegisters]uint32

	// banked registers. R8 to R14 for FIQ and R13 and R14 for IRQ and SVC
	fiq [7]uint32
	irq [2]uint32
	svc [2]uint32

	// address of the next instruction to execute
	pc uint32

	status status
	mode   core.Mode

	// address of the instruction currently being executed. reading register 15
	// during execution returns executing+8
	executing uint32
}

// NewARMv2 is the preferred method of initialisation for the ARMv2 type. The
// boot image is loaded at address zero and the core is reset.
func NewARMv2(memsize uint32, boot []byte) (*ARMv2, error) {
	if len(boot) < MinimumBootSize {
		return nil, curated.Errorf(BootTooSmall, len(boot))
	}

	mem, err := memory.NewMemory(memsize)
	if err != nil {
		return nil, err
	}

	if uint64(len(boot)) > uint64(mem.Size()) {
		return nil, curated.Errorf(BootTooLarge, len(boot))
	}

	if err := mem.Load(0, boot); err != nil {
		return nil, err
	}

	arm := &ARMv2{mem: mem}
	arm.Reset()

	return arm, nil
}

// Reset implements the core.Core interface. Processor enters SVC mode with
// interrupts disabled and execution starts at the reset vector.
func (arm *ARMv2) Reset() {
	arm.regs = [core.NumRegisters]uint32{}
	arm.fiq = [7]uint32{}
	arm.irq = [2]uint32{}
	arm.svc = [2]uint32{}
	arm.status = status{irqDisable: true, fiqDisable: true}
	arm.mode = core.ModeSVC
	arm.pc = vectorReset
}

// Memory returns the memory instance used by the core.
func (arm *ARMv2) Memory() *memory.Memory {
	return arm.mem
}

// reg returns a pointer to register i (0 to 14) for the current mode.
func (arm *ARMv2) reg(i uint32) *uint32 {
	switch arm.mode {
	case core.ModeFIQ:
		if i >= 8 && i <= 14 {
			return &arm.fiq[i-8]
		}
	case core.ModeIRQ:
		if i >= 13 && i <= 14 {
			return &arm.irq[i-13]
		}
	case core.ModeSVC:
		if i >= 13 && i <= 14 {
			return &arm.svc[i-13]
		}
	}
	return &arm.regs[i]
}

// operand returns the value of register i as seen by an executing instruction.
// register 15 is the address of the instruction plus eight.
func (arm *ARMv2) operand(i uint32) uint32 {
	if i == core.PC {
		return (arm.executing + 8) & pcMask
	}
	return *arm.reg(i)
}

// operandPSR is the same as operand() except that register 15 includes the
// processor status.
func (arm *ARMv2) operandPSR(i uint32) uint32 {
	if i == core.PC {
		return arm.operand(i) | arm.PSR()
	}
	return *arm.reg(i)
}

// write value to register i. writing register 15 changes the program counter
// only.
func (arm *ARMv2) write(i uint32, value uint32) {
	if i == core.PC {
		arm.pc = value & pcMask
		return
	}
	*arm.reg(i) = value
}

// restorePSR sets the program counter and the processor status from a packed
// register 15 value. in user mode only the condition flags are changed.
func (arm *ARMv2) restorePSR(value uint32) {
	privileged := arm.mode != core.ModeUSR
	arm.status.unpack(value, privileged)
	if privileged {
		arm.mode = core.Mode(value & 0x03)
	}
}

// Register implements the core.Core interface.
func (arm *ARMv2) Register(i int) uint32 {
	if i == core.PC {
		return arm.pc
	}
	return *arm.reg(uint32(i) & 0x0f)
}

// SetRegister implements the core.Core interface.
func (arm *ARMv2) SetRegister(i int, value uint32) {
	if i == core.PC {
		arm.pc = value & pcMask
		return
	}
	*arm.reg(uint32(i) & 0x0f) = value
}

// PSR implements the core.Core interface.
func (arm *ARMv2) PSR() uint32 {
	return arm.status.pack() | uint32(arm.mode)
}

// Mode implements the core.Core interface.
func (arm *ARMv2) Mode() core.Mode {
	return arm.mode
}

// Peek implements the core.Core interface.
func (arm *ARMv2) Peek(address uint32) (uint8, error) {
	return arm.mem.Peek(address)
}

// Poke implements the core.Core interface.
func (arm *ARMv2) Poke(address uint32, value uint8) error {
	return arm.mem.Poke(address, value)
}

// ReadWord implements the core.Core interface.
func (arm *ARMv2) ReadWord(address uint32) (uint32, error) {
	return arm.mem.ReadWord(address)
}

// WriteWord implements the core.Core interface.
func (arm *ARMv2) WriteWord(address uint32, value uint32) error {
	return arm.mem.WriteWord(address, value)
}

// MemorySize implements the core.Core interface.
func (arm *ARMv2) MemorySize() uint32 {
	return arm.mem.Size()
}

// AttachDevice implements the core.Core interface.
func (arm *ARMv2) AttachDevice(dev peripherals.Device, start uint32, end uint32) error {
	return arm.mem.Map(dev, start, end)
}
