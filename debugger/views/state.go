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
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

var stateNames = [core.NumRegisters]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "fp", "sp", "lr", "pc",
}

// State is a view of the register file and the processor mode.
type State struct {
	dbg    Debugger
	output io.Writer
}

// NewState is the preferred method of initialisation for the State type.
func NewState(dbg Debugger, output io.Writer) *State {
	return &State{
		dbg:    dbg,
		output: output,
	}
}

// Select implements the View interface.
func (sv *State) Select(uint32) {
}

// CenterOn implements the View interface.
func (sv *State) CenterOn(uint32) {
}

// Render implements the View interface.
func (sv *State) Render(focused bool) {
	regs := sv.dbg.Registers()
	psr := sv.dbg.PSR()

	title(sv.output, "state", focused)
	for i, v := range regs {
		s := fmt.Sprintf("%3s : %08x", stateNames[i], v)
		switch i {
		case 0:
			s = fmt.Sprintf("%s    Mode : %s", s, sv.dbg.Mode())
		case 1:
			s = fmt.Sprintf("%s      pc : %08x", s, regs[core.PC]&pcMask)
		case 2:
			s = fmt.Sprintf("%s   flags : %s", s, core.PSRString(psr))
		}
		fmt.Fprintln(sv.output, s)
	}
}

// HandleInput implements the View interface.
func (sv *State) HandleInput(key terminal.Key) Control {
	return handleInputPassive(key)
}

// input handling for views that have no interactive features
func handleInputPassive(key terminal.Key) Control {
	switch key {
	case terminal.KeyTab:
		return SwitchFocus
	case 'q':
		return Exit
	}
	return NoOp
}
