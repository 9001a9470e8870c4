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

package colorterm

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/test"
)

// type the string into the editor. returns true if the line was completed
func typeInto(t *testing.T, ed *editor, s string) bool {
	t.Helper()
	rd := strings.NewReader(s)
	for {
		r, _, err := rd.ReadRune()
		if err != nil {
			return false
		}
		done, err := ed.handle(r, rd)
		test.DemandSuccess(t, err)
		if done {
			return true
		}
	}
}

func TestEditorInsert(t *testing.T) {
	var history []string
	ed := newEditor(&history, nil)

	test.ExpectEquality(t, typeInto(t, ed, "stp"), false)
	test.ExpectEquality(t, ed.String(), "stp")

	// cursor left and insert
	typeInto(t, ed, "\033[De")
	test.ExpectEquality(t, ed.String(), "step")
	test.ExpectEquality(t, ed.cursor, 3)

	// cursor left twice from the end and insert
	ed2 := newEditor(&history, nil)
	typeInto(t, ed2, "stp\033[D\033[De")
	test.ExpectEquality(t, ed2.String(), "setp")
	test.ExpectEquality(t, ed2.cursor, 2)

	// home, delete, end, backspace
	typeInto(t, ed, "\033[H\033[3~\033[F\x7f")
	test.ExpectEquality(t, ed.String(), "te")

	test.ExpectEquality(t, typeInto(t, ed, "\n"), true)
	test.ExpectEquality(t, len(history), 1)
	test.ExpectEquality(t, history[0], "te")
}

func TestEditorHistory(t *testing.T) {
	history := []string{"step", "regs"}
	ed := newEditor(&history, nil)

	typeInto(t, ed, "li")
	typeInto(t, ed, "\033[A")
	test.ExpectEquality(t, ed.String(), "regs")
	typeInto(t, ed, "\033[A\033[A")
	test.ExpectEquality(t, ed.String(), "step")

	// return to the partially typed input
	typeInto(t, ed, "\033[B\033[B")
	test.ExpectEquality(t, ed.String(), "li")
	typeInto(t, ed, "\033[B")
	test.ExpectEquality(t, ed.String(), "li")

	// repeated entries are not added to the history
	typeInto(t, ed, "\033[A\r")
	test.ExpectEquality(t, len(history), 2)

	ed = newEditor(&history, nil)
	typeInto(t, ed, "\r")
	test.ExpectEquality(t, len(history), 2)
}

func TestEditorTabCompletion(t *testing.T) {
	var history []string
	ed := newEditor(&history, terminal.NewTabCompletion([]string{"CONTINUE", "CLEAR"}))

	typeInto(t, ed, "con\t")
	test.ExpectEquality(t, ed.String(), "CONTINUE ")
	test.ExpectEquality(t, ed.cursor, 9)
}

func TestEditorInterrupt(t *testing.T) {
	var history []string
	ed := newEditor(&history, nil)
	_, err := ed.handle(rune(terminal.KeyInterrupt), strings.NewReader(""))
	test.ExpectEquality(t, curated.Is(err, terminal.UserInterrupt), true)
}

func TestReadKey(t *testing.T) {
	rd := strings.NewReader("\n\033[A\033[B\033[C\033[D\033[5~\033[6~\tq")
	for _, k := range []terminal.Key{
		terminal.KeyEnter,
		terminal.KeyUp,
		terminal.KeyDown,
		terminal.KeyRight,
		terminal.KeyLeft,
		terminal.KeyPageUp,
		terminal.KeyPageDown,
		terminal.KeyTab,
		terminal.Key('q'),
	} {
		r, err := readKey(rd)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, r, k)
	}
}

func TestStylise(t *testing.T) {
	nc := color.NoColor
	defer func() { color.NoColor = nc }()

	color.NoColor = true
	test.ExpectEquality(t, stylise(terminal.StyleFeedback, "ok"), "ok")
	test.ExpectEquality(t, stylise(terminal.StyleError, "bad"), "* bad")

	color.NoColor = false
	test.ExpectInequality(t, stylise(terminal.StyleCode, "code"), "code")
}
