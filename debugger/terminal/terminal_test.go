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

package terminal_test

import (
	"testing"

	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/test"
)

func TestTabCompletion(t *testing.T) {
	tc := terminal.NewTabCompletion([]string{"step", "stop", "break", "prefs"})
	tc.AddArguments("prefs", []string{"debugger.steps", "debugger.color", "save"})

	test.ExpectEquality(t, tc.Complete("b"), "BREAK ")
	test.ExpectEquality(t, tc.Complete("x"), "x")

	// repeated completion cycles through the options
	tc.Reset()
	s := tc.Complete("st")
	test.ExpectEquality(t, s, "STEP ")
	s = tc.Complete(s)
	test.ExpectEquality(t, s, "STOP ")
	s = tc.Complete(s)
	test.ExpectEquality(t, s, "STEP ")

	tc.Reset()
	test.ExpectEquality(t, tc.Complete("prefs debugger.c"), "prefs debugger.color ")
	test.ExpectEquality(t, tc.Complete("prefs s"), "prefs save ")

	// commands without arguments are not completed
	tc.Reset()
	test.ExpectEquality(t, tc.Complete("step 1"), "step 1")
}

func TestWriter(t *testing.T) {
	out := &output{}
	w := terminal.NewWriter(out, terminal.StyleCode)

	n, err := w.Write([]byte("line one\nline "))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 14)
	test.DemandEquality(t, len(out.lines), 1)
	test.ExpectEquality(t, out.lines[0], "line one")

	w.Write([]byte("two\n\n"))
	test.DemandEquality(t, len(out.lines), 3)
	test.ExpectEquality(t, out.lines[1], "line two")
	test.ExpectEquality(t, out.lines[2], "")
	test.ExpectEquality(t, out.style, terminal.StyleCode)
}

func TestPrompt(t *testing.T) {
	p := terminal.Prompt{Content: " 0x00000000 "}
	test.ExpectEquality(t, p.String(), "[ 0x00000000 ] >> ")
	p.Running = true
	test.ExpectEquality(t, p.String(), "[ 0x00000000 ] > ")
}

func TestKey(t *testing.T) {
	test.ExpectEquality(t, terminal.KeyPageDown.String(), "page down")
	test.ExpectEquality(t, terminal.Key('c').String(), "c")
	test.ExpectEquality(t, terminal.Key(' ').String(), "space")
}

type output struct {
	lines []string
	style terminal.Style
}

func (o *output) TermPrintLine(style terminal.Style, s string) {
	o.style = style
	o.lines = append(o.lines, s)
}
