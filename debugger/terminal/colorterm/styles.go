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
	"github.com/fatih/color"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
)

var promptColor = color.New(color.Bold)

var styles = map[terminal.Style]*color.Color{
	terminal.StyleFeedback: color.New(color.FgWhite, color.Faint),
	terminal.StyleHelp:     color.New(color.FgWhite, color.Faint),
	terminal.StyleCode:     color.New(color.FgHiYellow),
	terminal.StyleMachine:  color.New(color.FgHiCyan),
	terminal.StyleEcho:     color.New(color.FgWhite),
	terminal.StyleError:    color.New(color.FgHiRed),
}

// stylise returns the string with the colouring for the style applied. if
// colour has been disabled with color.NoColor the string is returned
// unchanged, other than the prefix for error messages.
func stylise(style terminal.Style, s string) string {
	if style == terminal.StyleError {
		s = "* " + s
	}
	if c, ok := styles[style]; ok {
		return c.Sprint(s)
	}
	return s
}
