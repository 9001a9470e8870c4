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

package script

import (
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
)

// Sentinel errors returned by the Rescribe type.
const (
	ScriptFileError = "script: %v"
	ScriptEnd       = "script: end of script (%s)"
)

func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentLine)
}

// Rescribe plays back a command script. It implements the terminal.Input
// interface.
type Rescribe struct {
	scriptfile string
	lines      []string
	lineCt     int
}

// RescribeScript is the preferred method of initialisation for the Rescribe
// type.
func RescribeScript(scriptfile string) (*Rescribe, error) {
	f, err := os.Open(scriptfile)
	if err != nil {
		return nil, curated.Errorf(ScriptFileError, err)
	}
	defer f.Close()

	return newRescribe(scriptfile, f)
}

func newRescribe(name string, r io.Reader) (*Rescribe, error) {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(ScriptFileError, err)
	}

	scr := &Rescribe{scriptfile: name}
	for _, l := range strings.Split(string(buffer), "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" || isCommentLine(l) {
			continue
		}
		scr.lines = append(scr.lines, l)
	}

	return scr, nil
}

// IsInteractive implements the terminal.Input interface.
func (scr *Rescribe) IsInteractive() bool {
	return false
}

// TermRead implements the terminal.Input interface. Returns the next command
// in the script. The ScriptEnd error is returned when there are no more
// commands.
func (scr *Rescribe) TermRead(_ terminal.Prompt) (string, error) {
	if scr.lineCt >= len(scr.lines) {
		return "", curated.Errorf(ScriptEnd, scr.scriptfile)
	}
	l := scr.lines[scr.lineCt]
	scr.lineCt++
	return l, nil
}

// TermReadKey implements the terminal.Input interface. Scripts cannot drive
// the interactive views so the key is always the key to leave the view.
func (scr *Rescribe) TermReadKey() (terminal.Key, error) {
	return terminal.Key('q'), nil
}
