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

	"github.com/fatih/color"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/disassembly"
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// Control is returned by View.HandleInput() and tells the debugger what to do
// next.
type Control int

// List of valid Control values.
const (
	// continue taking input for the current view
	NoOp Control = iota

	// perform any queued action and then return focus to the view
	Resume

	// move focus to the next view
	SwitchFocus

	// reset the machine
	Restart

	// leave the interactive views
	Exit
)

func (c Control) String() string {
	switch c {
	case NoOp:
		return "noop"
	case Resume:
		return "resume"
	case SwitchFocus:
		return "switch focus"
	case Restart:
		return "restart"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Action is queued with the debugger by a view.
type Action int

// List of valid Action values.
const (
	ActionStep Action = iota
	ActionContinue
)

// Debugger defines the debugger functions required by the views.
type Debugger interface {
	Registers() [core.NumRegisters]uint32
	PSR() uint32
	Mode() core.Mode
	MemorySize() uint32
	ReadBytes(address uint32, n int) ([]byte, error)

	HasBreakpoint(address uint32) bool
	ToggleBreakpoint(address uint32) error
	Disassemble(start uint32, end uint32) (*disassembly.Sequence, error)

	// Queue an action to be performed when HandleInput() returns Resume
	Queue(Action)
}

// View is implemented by all views.
type View interface {
	// Select the address. The meaning of a selected address depends on the
	// view
	Select(address uint32)

	// CenterOn moves the view so that the address is as close to the middle
	// of the view as possible
	CenterOn(address uint32)

	// Render the view. The focused argument indicates that the view is
	// currently taking input
	Render(focused bool)

	// HandleInput responds to a single key press
	HandleInput(key terminal.Key) Control
}

var (
	titlePen    = color.New(color.Bold)
	selectedPen = color.New(color.ReverseVideo)
	markerPen   = color.New(color.FgHiRed)
)

// the address mask for a PC value
const pcMask = 0x03fffffc

// write the title of the view
func title(output io.Writer, s string, focused bool) {
	if focused {
		fmt.Fprintln(output, titlePen.Sprintf("[ %s ]", s))
	} else {
		fmt.Fprintf(output, "  %s  \n", s)
	}
}

// write a line of the view, highlighted if selected
func line(output io.Writer, s string, selected bool) {
	if selected {
		fmt.Fprintln(output, selectedPen.Sprint(s))
	} else {
		fmt.Fprintln(output, s)
	}
}
