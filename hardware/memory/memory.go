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

package memory

import (
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
)

// MaxSize is the largest amount of memory addressable by a 26-bit address bus.
const MaxSize uint32 = 1 << 26

// Sentinel errors returned by the memory package.
const (
	WriteProtected = "memory: address %#08x is write protected"
	InvalidSize    = "memory: invalid size (%#x)"
	InvalidMapping = "memory: cannot map %#08x to %#08x: %s"
)

type page struct {
	device   peripherals.Device
	readOnly bool
}

// Memory is the paged memory of the emulated machine.
type Memory struct {
	words []uint32
	pages []page
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The size is rounded up to a whole number of pages. The first page is write
// protected because it holds the boot image.
func NewMemory(size uint32) (*Memory, error) {
	if size == 0 || size > MaxSize {
		return nil, curated.Errorf(InvalidSize, size)
	}

	size = (size + peripherals.PageMask) &^ peripherals.PageMask

	mem := &Memory{
		words: make([]uint32, size>>2),
		pages: make([]page, size/peripherals.PageSize),
	}
	mem.pages[0].readOnly = true

	return mem, nil
}

// Size returns the number of bytes in memory.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.words)) << 2
}

func pageOf(address uint32) uint32 {
	return address / peripherals.PageSize
}

// Map device to the pages covering the address range start to end inclusive.
// The first page cannot be mapped. Later mappings shadow earlier mappings.
func (mem *Memory) Map(dev peripherals.Device, start uint32, end uint32) error {
	if end < start {
		return curated.Errorf(InvalidMapping, start, end, "end is before start")
	}
	if end >= mem.Size() {
		return curated.Errorf(InvalidMapping, start, end, "range is outside of memory")
	}
	if pageOf(start) == 0 {
		return curated.Errorf(InvalidMapping, start, end, "the first page is reserved")
	}

	for p := pageOf(start); p <= pageOf(end); p++ {
		mem.pages[p].device = dev
	}

	return nil
}

// Device returns the device mapped to the page containing address. Returns
// nil if no device is mapped or if the address is out of range.
func (mem *Memory) Device(address uint32) peripherals.Device {
	if address >= mem.Size() {
		return nil
	}
	return mem.pages[pageOf(address)].device
}

// SetReadOnly changes the write protection for the page containing address.
func (mem *Memory) SetReadOnly(address uint32, readOnly bool) error {
	if address >= mem.Size() {
		return curated.Errorf(core.AddressError, address)
	}
	mem.pages[pageOf(address)].readOnly = readOnly
	return nil
}

func (mem *Memory) check(address uint32) error {
	if address >= mem.Size() {
		return curated.Errorf(core.AddressError, address)
	}
	return nil
}

func (mem *Memory) checkWord(address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf(core.AlignmentError, address)
	}
	return mem.check(address)
}

// Load data into memory starting at origin. Write protection is ignored and
// devices are not notified.
func (mem *Memory) Load(origin uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	end := uint64(origin) + uint64(len(data)) - 1
	if end >= uint64(mem.Size()) {
		return curated.Errorf(core.AddressError, uint32(end))
	}
	for i, b := range data {
		mem.poke(origin+uint32(i), b)
	}
	return nil
}
