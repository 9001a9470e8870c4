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

package plainterm_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/plainterm"
	"github.com/jetsetilly/armv2dbg/test"
)

// the plain terminal must satisfy the terminal interface
var _ terminal.Terminal = (*plainterm.PlainTerminal)(nil)

func TestRead(t *testing.T) {
	in := strings.NewReader("step 10\r\nregs\nquit")
	out := &test.CompareWriter{}

	pt := plainterm.NewPlainTerminal(in, out)
	test.DemandSuccess(t, pt.Initialise())
	test.ExpectEquality(t, pt.IsInteractive(), false)

	s, err := pt.TermRead(terminal.Prompt{Content: "0x0"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "step 10")

	s, err = pt.TermRead(terminal.Prompt{Content: "0x0"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "regs")

	// last line without a line ending
	s, err = pt.TermRead(terminal.Prompt{Content: "0x0"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "quit")

	_, err = pt.TermRead(terminal.Prompt{Content: "0x0"})
	test.ExpectEquality(t, err, io.EOF)

	// prompt is not written for a non-interactive terminal
	test.ExpectEquality(t, out.String(), "")
}

func TestReadKey(t *testing.T) {
	in := strings.NewReader("\n \nup\npgdn\ntab\nc\n")
	pt := plainterm.NewPlainTerminal(in, io.Discard)
	test.DemandSuccess(t, pt.Initialise())

	for _, k := range []terminal.Key{
		terminal.KeyEnter,
		terminal.Key(' '),
		terminal.KeyUp,
		terminal.KeyPageDown,
		terminal.KeyTab,
		terminal.Key('c'),
	} {
		r, err := pt.TermReadKey()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, r, k)
	}
}

func TestPrint(t *testing.T) {
	out := &test.CompareWriter{}
	pt := plainterm.NewPlainTerminal(strings.NewReader(""), out)
	test.DemandSuccess(t, pt.Initialise())

	pt.TermPrintLine(terminal.StyleFeedback, "hello")
	pt.TermPrintLine(terminal.StyleEcho, "ignored")
	pt.TermPrintLine(terminal.StyleError, "bad")
	test.ExpectEquality(t, out.String(), "hello\n* bad\n")

	out.Clear()
	pt.Silence(true)
	pt.TermPrintLine(terminal.StyleFeedback, "hello")
	pt.TermPrintLine(terminal.StyleError, "bad")
	test.ExpectEquality(t, out.String(), "* bad\n")
}
