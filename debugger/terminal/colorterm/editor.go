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
	"io"
	"unicode"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/colorterm/easyterm"
)

// editor is the state of a single line of input.
type editor struct {
	input  []rune
	cursor int

	tabCompletion *terminal.TabCompletion

	// the history is shared between editors. idx is the entry currently
	// being shown. when idx is equal to the length of the history the
	// current input is being shown and buff holds the current input while
	// the history is being browsed
	history *[]string
	idx     int
	buff    []rune
}

func newEditor(history *[]string, tc *terminal.TabCompletion) *editor {
	return &editor{
		history:       history,
		idx:           len(*history),
		tabCompletion: tc,
	}
}

func (ed *editor) String() string {
	return string(ed.input)
}

func (ed *editor) showHistory(idx int) {
	if ed.idx == len(*ed.history) {
		ed.buff = append(ed.buff[:0], ed.input...)
	}
	ed.idx = idx
	if ed.idx == len(*ed.history) {
		ed.input = append(ed.input[:0], ed.buff...)
	} else {
		ed.input = []rune((*ed.history)[ed.idx])
	}
	ed.cursor = len(ed.input)
}

// commit the current input to the history if it is not empty and is not the
// same as the previous entry.
func (ed *editor) commit() {
	if len(ed.input) == 0 {
		return
	}
	h := *ed.history
	if len(h) > 0 && h[len(h)-1] == string(ed.input) {
		return
	}
	*ed.history = append(h, string(ed.input))
}

// handle a single rune of input. additional runes are read from the reader
// for escape sequences. returns true when the line has been completed.
func (ed *editor) handle(r rune, rd io.RuneReader) (bool, error) {
	switch r {
	case easyterm.KeyTab:
		if ed.tabCompletion != nil {
			s := []rune(ed.tabCompletion.Complete(string(ed.input[:ed.cursor])))
			rest := append([]rune{}, ed.input[ed.cursor:]...)
			ed.input = append(s, rest...)
			ed.cursor = len(s)
		}

	case easyterm.KeyInterrupt:
		return false, curated.Errorf(terminal.UserInterrupt)

	case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
		ed.commit()
		return true, nil

	case easyterm.KeyBackspace, easyterm.KeyDelete:
		if ed.cursor > 0 {
			ed.input = append(ed.input[:ed.cursor-1], ed.input[ed.cursor:]...)
			ed.cursor--
			ed.idx = len(*ed.history)
		}

	case easyterm.KeyEsc:
		r, _, err := rd.ReadRune()
		if err != nil {
			return false, err
		}
		if r != easyterm.EscCursor {
			return false, nil
		}
		r, _, err = rd.ReadRune()
		if err != nil {
			return false, err
		}

		switch r {
		case easyterm.CursorUp:
			if ed.idx > 0 {
				ed.showHistory(ed.idx - 1)
			}
		case easyterm.CursorDown:
			if ed.idx < len(*ed.history) {
				ed.showHistory(ed.idx + 1)
			}
		case easyterm.CursorForward:
			if ed.cursor < len(ed.input) {
				ed.cursor++
			}
		case easyterm.CursorBackward:
			if ed.cursor > 0 {
				ed.cursor--
			}
		case easyterm.CursorHome:
			ed.cursor = 0
		case easyterm.CursorEnd:
			ed.cursor = len(ed.input)
		case easyterm.EscDelete:
			// consume the trailing tilde
			if _, _, err := rd.ReadRune(); err != nil {
				return false, err
			}
			if ed.cursor < len(ed.input) {
				ed.input = append(ed.input[:ed.cursor], ed.input[ed.cursor+1:]...)
				ed.idx = len(*ed.history)
			}
		case easyterm.EscPageUp, easyterm.EscPageDown:
			if _, _, err := rd.ReadRune(); err != nil {
				return false, err
			}
		}

	default:
		if unicode.IsPrint(r) {
			ed.input = append(ed.input, 0)
			copy(ed.input[ed.cursor+1:], ed.input[ed.cursor:])
			ed.input[ed.cursor] = r
			ed.cursor++
			ed.idx = len(*ed.history)
		}
	}

	return false, nil
}

// readKey reads a single key press from the reader, including any escape
// sequence.
func readKey(rd io.RuneReader) (terminal.Key, error) {
	r, _, err := rd.ReadRune()
	if err != nil {
		return terminal.KeyNone, err
	}

	switch r {
	case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
		return terminal.KeyEnter, nil
	case easyterm.KeyTab:
		return terminal.KeyTab, nil
	case easyterm.KeyInterrupt:
		return terminal.KeyInterrupt, nil
	case easyterm.KeyEsc:
		r, _, err := rd.ReadRune()
		if err != nil {
			return terminal.KeyNone, err
		}
		if r != easyterm.EscCursor {
			return terminal.KeyNone, nil
		}
		r, _, err = rd.ReadRune()
		if err != nil {
			return terminal.KeyNone, err
		}
		switch r {
		case easyterm.CursorUp:
			return terminal.KeyUp, nil
		case easyterm.CursorDown:
			return terminal.KeyDown, nil
		case easyterm.CursorForward:
			return terminal.KeyRight, nil
		case easyterm.CursorBackward:
			return terminal.KeyLeft, nil
		case easyterm.EscPageUp, easyterm.EscPageDown:
			if _, _, err := rd.ReadRune(); err != nil {
				return terminal.KeyNone, err
			}
			if r == easyterm.EscPageUp {
				return terminal.KeyPageUp, nil
			}
			return terminal.KeyPageDown, nil
		}
		return terminal.KeyNone, nil
	}

	return terminal.Key(r), nil
}
