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

// Peek returns the byte at address. Devices are not notified.
func (mem *Memory) Peek(address uint32) (uint8, error) {
	if err := mem.check(address); err != nil {
		return 0, err
	}
	return mem.peek(address), nil
}

// Poke sets the byte at address. Write protection is ignored and devices are
// not notified.
func (mem *Memory) Poke(address uint32, value uint8) error {
	if err := mem.check(address); err != nil {
		return err
	}
	mem.poke(address, value)
	return nil
}

// ReadWord returns the word at the aligned address. Devices are not notified.
func (mem *Memory) ReadWord(address uint32) (uint32, error) {
	if err := mem.checkWord(address); err != nil {
		return 0, err
	}
	return mem.words[address>>2], nil
}

// WriteWord sets the word at the aligned address. Write protection is ignored
// and devices are not notified.
func (mem *Memory) WriteWord(address uint32, value uint32) error {
	if err := mem.checkWord(address); err != nil {
		return err
	}
	mem.words[address>>2] = value
	return nil
}

func (mem *Memory) peek(address uint32) uint8 {
	shift := (address & 0x03) << 3
	return uint8(mem.words[address>>2] >> shift)
}

func (mem *Memory) poke(address uint32, value uint8) {
	shift := (address & 0x03) << 3
	w := &mem.words[address>>2]
	*w = (*w &^ (0xff << shift)) | (uint32(value) << shift)
}
