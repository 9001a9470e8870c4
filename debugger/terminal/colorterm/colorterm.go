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

//go:build !windows

// Package colorterm implements the Terminal interface for the armv2dbg
// debugger. It supports color output, history and tab completion. Key presses
// are read individually which allows the interactive views to respond to
// cursor keys.
package colorterm

import (
	"bufio"
	"os"

	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/colorterm/easyterm"
)

// ColorTerminal implements debugger UI interface with a basic ANSI terminal.
type ColorTerminal struct {
	easyterm.EasyTerm

	reader        *bufio.Reader
	history       []string
	tabCompletion *terminal.TabCompletion

	silenced bool
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	err := ct.EasyTerm.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ct.history = make([]string, 0)
	ct.reader = bufio.NewReader(os.Stdin)

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.EasyTerm.TermPrint("\r")
	_ = ct.Flush()
	ct.EasyTerm.CleanUp()
}

// RegisterTabCompletion adds an implementation of TabCompletion to the
// terminal.
func (ct *ColorTerminal) RegisterTabCompletion(tc *terminal.TabCompletion) {
	ct.tabCompletion = tc
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// input is echoed as it is typed
	if style == terminal.StyleEcho {
		return
	}

	ct.EasyTerm.TermPrint("\r")
	ct.EasyTerm.TermPrint(stylise(style, s))
	ct.EasyTerm.TermPrint("\n")
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	if ct.tabCompletion != nil {
		ct.tabCompletion.Reset()
	}

	ed := newEditor(&ct.history, ct.tabCompletion)
	p := promptColor.Sprint(prompt.String())

	for {
		ct.EasyTerm.TermPrint("\r" + easyterm.ClearLine)
		ct.EasyTerm.TermPrint(p)
		ct.EasyTerm.TermPrint(ed.String())
		ct.EasyTerm.TermPrint(easyterm.CursorMove(ed.cursor - len(ed.input)))

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return "", err
		}

		done, err := ed.handle(r, ct.reader)
		if err != nil {
			ct.EasyTerm.TermPrint("\n")
			return "", err
		}
		if done {
			ct.EasyTerm.TermPrint("\n")
			return ed.String(), nil
		}
	}
}

// TermReadKey implements the terminal.Input interface.
func (ct *ColorTerminal) TermReadKey() (terminal.Key, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()
	return readKey(ct.reader)
}
