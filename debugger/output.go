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

package debugger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jetsetilly/armv2dbg/debugger/script"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
)

// output implements the terminal.Output interface. All output from the
// debugger goes through this type. Output can come from the input loop, from
// a background CONTINUE command, from the signal handler and from the
// machine's peripherals so access to the terminal and the scribe is
// serialised.
type output struct {
	crit   sync.Mutex
	term   terminal.Output
	scribe script.Scribe
}

// TermPrintLine implements the terminal.Output interface.
func (o *output) TermPrintLine(style terminal.Style, s string) {
	o.crit.Lock()
	defer o.crit.Unlock()

	o.term.TermPrintLine(style, s)

	switch style {
	case terminal.StyleFeedback, terminal.StyleCode, terminal.StyleMachine, terminal.StyleError:
		o.scribe.WriteOutput(s)
	}
}

func (o *output) recordInput(s string) {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.scribe.WriteInput(s)
}

func (o *output) rollback() {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.scribe.Rollback()
}

// printLine formats the string and prints each line with the style.
func (dbg *Debugger) printLine(style terminal.Style, s string, a ...any) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}

	// remove all trailing newlines, and return if the resulting string is empty
	s = strings.TrimRight(s, "\n")
	if len(s) == 0 {
		return
	}

	for _, l := range strings.Split(s, "\n") {
		dbg.out.TermPrintLine(style, l)
	}
}

// printStyle returns an io.Writer that prints lines with the style.
func (dbg *Debugger) printStyle(style terminal.Style) io.Writer {
	return terminal.NewWriter(dbg.out, style)
}

// startRecording begins recording commands to a new script file.
func (o *output) startRecording(fn string) error {
	o.crit.Lock()
	defer o.crit.Unlock()
	return o.scribe.StartSession(fn)
}

// endRecording ends the recording session and returns the name of the script
// file. The command that ended the recording is not recorded.
func (o *output) endRecording() (string, error) {
	o.crit.Lock()
	defer o.crit.Unlock()
	fn := o.scribe.Filename()
	o.scribe.Rollback()
	return fn, o.scribe.EndSession()
}

func (o *output) startPlayback() {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.scribe.StartPlayback()
}

func (o *output) endPlayback() {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.scribe.EndPlayback()
}
