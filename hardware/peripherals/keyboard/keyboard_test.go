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

package keyboard_test

import (
	"testing"

	"github.com/jetsetilly/armv2dbg/hardware/peripherals/keyboard"
	"github.com/jetsetilly/armv2dbg/test"
)

func TestKeyboard(t *testing.T) {
	kb := keyboard.NewKeyboard()
	test.ExpectEquality(t, kb.ID(), keyboard.ID)

	// no keys waiting
	test.ExpectEquality(t, kb.OnRead(keyboard.Count, 0), uint32(0))
	test.ExpectEquality(t, kb.OnRead(keyboard.Data, 0), uint32(0))

	kb.Push('a')
	kb.Push('b')
	test.ExpectEquality(t, kb.OnRead(keyboard.Count, 0), uint32(2))
	test.ExpectEquality(t, kb.OnRead(keyboard.Data, 0), uint32('a'))
	test.ExpectEquality(t, kb.OnRead(keyboard.Data, 0), uint32('b'))
	test.ExpectEquality(t, kb.OnRead(keyboard.Count, 0), uint32(0))

	// other addresses in the page see the memory value
	test.ExpectEquality(t, kb.OnRead(0x10, 0x1234), uint32(0x1234))
}

func TestKeyboardOverflow(t *testing.T) {
	kb := keyboard.NewKeyboard()
	for i := 0; i < 100; i++ {
		kb.Push(byte(i))
	}
	test.ExpectEquality(t, kb.OnRead(keyboard.Count, 0), uint32(64))
	test.ExpectEquality(t, kb.OnRead(keyboard.Data, 0), uint32(0))
	test.ExpectEquality(t, kb.OnRead(keyboard.Data, 0), uint32(1))
}
