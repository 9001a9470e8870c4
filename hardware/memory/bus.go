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
)

// Read the word at the aligned address. If a device is mapped to the page
// then the value is filtered through the device.
func (mem *Memory) Read(address uint32) (uint32, error) {
	if err := mem.checkWord(address); err != nil {
		return 0, err
	}
	v := mem.words[address>>2]
	if dev := mem.pages[pageOf(address)].device; dev != nil {
		v = dev.OnRead(address, v)
	}
	return v, nil
}

// Write the word at the aligned address. If a device is mapped to the page
// then the device is notified after the write.
func (mem *Memory) Write(address uint32, value uint32) error {
	if err := mem.checkWord(address); err != nil {
		return err
	}
	p := mem.pages[pageOf(address)]
	if p.readOnly {
		return curated.Errorf(WriteProtected, address)
	}
	mem.words[address>>2] = value
	if p.device != nil {
		p.device.OnWrite(address, value)
	}
	return nil
}

// Read8 reads the byte at address. If a device is mapped to the page then the
// word containing the byte is filtered through the device.
func (mem *Memory) Read8(address uint32) (uint8, error) {
	v, err := mem.Read(address &^ 0x03)
	if err != nil {
		return 0, err
	}
	return uint8(v >> ((address & 0x03) << 3)), nil
}

// Write8 writes the byte at address. If a device is mapped to the page then
// the device is notified with the updated word containing the byte.
func (mem *Memory) Write8(address uint32, value uint8) error {
	if err := mem.check(address); err != nil {
		return err
	}
	p := mem.pages[pageOf(address)]
	if p.readOnly {
		return curated.Errorf(WriteProtected, address)
	}
	mem.poke(address, value)
	if p.device != nil {
		aligned := address &^ 0x03
		p.device.OnWrite(aligned, mem.words[aligned>>2])
	}
	return nil
}
