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

package views

import (
	"fmt"
	"io"

	"github.com/jetsetilly/armv2dbg/debugger/terminal"
)

// the keys listed by the help view
var helpKeys = []struct {
	key    string
	action string
}{
	{"c", "continue"},
	{"q", "quit"},
	{"r", "restart"},
	{"s", "step"},
	{"space", "toggle breakpoint"},
	{"tab", "switch window"},
	{"0-f", "memory address"},
}

// Help is a static view listing the keys accepted by the other views.
type Help struct {
	output io.Writer
}

// NewHelp is the preferred method of initialisation for the Help type.
func NewHelp(output io.Writer) *Help {
	return &Help{output: output}
}

// Select implements the View interface.
func (hv *Help) Select(uint32) {
}

// CenterOn implements the View interface.
func (hv *Help) CenterOn(uint32) {
}

// Render implements the View interface.
func (hv *Help) Render(focused bool) {
	title(hv.output, "help", focused)
	for _, k := range helpKeys {
		fmt.Fprintf(hv.output, "%5s - %s\n", k.key, k.action)
	}
}

// HandleInput implements the View interface.
func (hv *Help) HandleInput(key terminal.Key) Control {
	return handleInputPassive(key)
}
