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

package console_test

import (
	"testing"

	"github.com/jetsetilly/armv2dbg/hardware/peripherals/console"
	"github.com/jetsetilly/armv2dbg/test"
)

func TestConsole(t *testing.T) {
	w := &test.CompareWriter{}
	con := console.NewConsole(w)

	test.ExpectEquality(t, con.ID(), console.ID)

	con.OnWrite(0x2000+console.Data, 'h')
	con.OnWrite(0x2000+console.Data, 0x1269)
	test.ExpectEquality(t, w.Compare("hi"), true)

	test.ExpectEquality(t, con.OnRead(0x2000+console.Status, 0), uint32(1))
	test.ExpectEquality(t, con.OnRead(0x2000+console.Data, 0xabcd), uint32(0xabcd))

	// writes to unknown registers have no effect
	con.OnWrite(0x2000+0x8, 'x')
	test.ExpectEquality(t, w.Compare("hi"), true)
}
