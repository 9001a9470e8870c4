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

// Package peripherals defines the Device interface. Devices are registered
// with a hardware.Machine and mapped to one or more pages of memory. Accesses
// by the core to a mapped page are passed to the device.
//
// The console and keyboard sub-packages contain simple implementations.
package peripherals

// Device is implemented by all peripherals.
//
// OnRead and OnWrite are called synchronously by the core while it is
// executing an instruction and so must not block.
type Device interface {
	// a stable identifier for the device
	ID() uint32

	// OnRead is called when the core reads a word in a mapped page. The
	// current argument is the value currently stored in memory at the address.
	// The return value is the value seen by the core
	OnRead(address uint32, current uint32) uint32

	// OnWrite is called after the core has written a word to a mapped page
	OnWrite(address uint32, value uint32)
}

// Register returns the offset of the address from the start of the page it is
// in. Useful for devices that implement a small number of memory registers.
func Register(address uint32) uint32 {
	return address & PageMask
}

// Page size and mask. Devices are mapped at page granularity.
const (
	PageSize uint32 = 1 << 12
	PageMask uint32 = PageSize - 1
)
