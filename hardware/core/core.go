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

package core

import (
	"fmt"

	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
)

// NumRegisters is the number of registers visible in the current mode.
const NumRegisters = 16

// Register aliases.
const (
	SP = 13
	LR = 14
	PC = 15
)

// RegisterName returns the conventional name for register i.
func RegisterName(i int) string {
	switch i {
	case SP:
		return "SP"
	case LR:
		return "LR"
	case PC:
		return "PC"
	}
	return fmt.Sprintf("R%d", i)
}

// BreakpointTrap is the instruction written over a breakpointed address. It is
// a software interrupt with a comment field that is reserved for the debugger.
// A core executing the instruction stops and reports StatusBreakpoint.
const BreakpointTrap uint32 = 0xef000000 | BreakpointComment

// BreakpointComment is the comment field of the BreakpointTrap instruction.
const BreakpointComment uint32 = 0x00feed

// Sentinel errors shared by all core implementations.
const (
	AlignmentError = "alignment: address %#08x is not word aligned"
	AddressError   = "memory: address %#08x is out of range"
)

// StatusKind indicates why a call to Core.Step() returned.
type StatusKind int

// List of valid StatusKind values.
const (
	StatusNormal StatusKind = iota
	StatusBreakpoint
)

func (k StatusKind) String() string {
	switch k {
	case StatusNormal:
		return "normal"
	case StatusBreakpoint:
		return "breakpoint"
	}
	return "unknown"
}

// Status is returned by Core.Step(). The Address field is meaningful only for
// StatusBreakpoint and is the address of the trap instruction.
type Status struct {
	Kind    StatusKind
	Address uint32
}

func (s Status) String() string {
	if s.Kind == StatusBreakpoint {
		return fmt.Sprintf("breakpoint at %#08x", s.Address)
	}
	return s.Kind.String()
}

// Core is the interface to the CPU core. Implementations are not required to
// be safe for concurrent use. The hardware.Machine type serialises access.
type Core interface {
	// Register returns the value of register i (0 to 15) in the current mode
	Register(i int) uint32

	// SetRegister sets the value of register i (0 to 15) in the current mode.
	// Setting register 15 changes the address of the next instruction
	SetRegister(i int, value uint32)

	// PSR returns the processor status in the packed 26-bit layout: NZCVIF in
	// the top six bits and the mode in the bottom two bits
	PSR() uint32

	// Mode returns the current processor mode
	Mode() Mode

	// Peek and Poke access the byte memory view. Neither access causes
	// peripherals to be notified
	Peek(address uint32) (uint8, error)
	Poke(address uint32, value uint8) error

	// ReadWord and WriteWord access the word memory view. Unaligned access
	// returns an AlignmentError. Neither access causes peripherals to be
	// notified and neither access is subject to write protection
	ReadWord(address uint32) (uint32, error)
	WriteWord(address uint32, value uint32) error

	// MemorySize returns the number of bytes of memory
	MemorySize() uint32

	// Step executes n instructions or until a BreakpointTrap is encountered.
	// On encountering the trap the core does not advance the program counter
	Step(n int) Status

	// AttachDevice maps the device to the address range. Mapping is at page
	// granularity and later mappings shadow earlier mappings
	AttachDevice(dev peripherals.Device, start uint32, end uint32) error

	// Reset the core to its initial state. Memory contents are preserved
	Reset()
}
