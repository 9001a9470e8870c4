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
	"github.com/jetsetilly/armv2dbg/logger"
)

type codeLine struct {
	address uint32
	text    string
}

// Code is a view of the disassembly around an address. The line for the
// current PC is marked with an arrow and lines with a breakpoint are marked
// with an asterisk.
type Code struct {
	dbg    Debugger
	output io.Writer
	height int

	selected uint32
	lines    []codeLine

	// the index in lines of the selected address. -1 if the selected address
	// is not visible
	selectedPos int
}

// NewCode is the preferred method of initialisation for the Code type.
func NewCode(dbg Debugger, output io.Writer, height int) *Code {
	if height < 1 {
		height = 1
	}
	return &Code{
		dbg:         dbg,
		output:      output,
		height:      height,
		selectedPos: -1,
	}
}

// Select implements the View interface.
func (cv *Code) Select(address uint32) {
	cv.selected = address &^ 0x03
	cv.findSelected()
}

func (cv *Code) findSelected() {
	cv.selectedPos = -1
	for i, l := range cv.lines {
		if l.address == cv.selected {
			cv.selectedPos = i
			return
		}
	}
}

// CenterOn implements the View interface.
func (cv *Code) CenterOn(address uint32) {
	address &^= 0x03

	start := uint32(0)
	if half := uint32(cv.height/2) * 4; address > half {
		start = address - half
	}

	end := start + uint32(cv.height)*4
	if size := cv.dbg.MemorySize(); end > size {
		end = size
		if end >= uint32(cv.height)*4 {
			start = end - uint32(cv.height)*4
		} else {
			start = 0
		}
	}

	pc := cv.dbg.Registers()[15] & pcMask

	cv.lines = cv.lines[:0]
	seq, err := cv.dbg.Disassemble(start, end)
	if err != nil {
		cv.findSelected()
		return
	}
	for ins, ok := seq.Next(); ok; ins, ok = seq.Next() {
		arrow := ""
		if ins.Address == pc {
			arrow = "==>"
		}
		bpt := " "
		if cv.dbg.HasBreakpoint(ins.Address) {
			bpt = markerPen.Sprint("*")
		}
		cv.lines = append(cv.lines, codeLine{
			address: ins.Address,
			text:    fmt.Sprintf("%3s%s%07x %08x : %s", arrow, bpt, ins.Address, ins.Word, ins.String()),
		})
	}

	cv.findSelected()
}

// Render implements the View interface.
func (cv *Code) Render(focused bool) {
	title(cv.output, "code", focused)
	for i, l := range cv.lines {
		line(cv.output, l.text, i == cv.selectedPos)
	}
}

// HandleInput implements the View interface.
func (cv *Code) HandleInput(key terminal.Key) Control {
	switch key {
	case terminal.KeyDown:
		if cv.selectedPos >= 0 && cv.selectedPos < len(cv.lines)-1 {
			cv.selected = cv.lines[cv.selectedPos+1].address
			cv.CenterOn(cv.selected)
		}
	case terminal.KeyUp:
		if cv.selectedPos > 0 {
			cv.selected = cv.lines[cv.selectedPos-1].address
			cv.CenterOn(cv.selected)
		}
	case terminal.KeyPageDown:
		// centering on the last line twice moves the view on by a page
		var p uint32
		for i := 0; i < 2 && len(cv.lines) > 0; i++ {
			p = cv.lines[len(cv.lines)-1].address
			cv.CenterOn(p)
		}
		cv.Select(p)
	case terminal.KeyPageUp:
		var p uint32
		for i := 0; i < 2 && len(cv.lines) > 0; i++ {
			p = cv.lines[0].address
			cv.CenterOn(p)
		}
		cv.Select(p)
	case terminal.KeyTab:
		return SwitchFocus
	case ' ':
		if err := cv.dbg.ToggleBreakpoint(cv.selected); err != nil {
			logger.Log(logger.Allow, "views", err)
		}
		cv.CenterOn(cv.selected)
	case 'c':
		cv.dbg.Queue(ActionContinue)
		return Resume
	case 's':
		cv.dbg.Queue(ActionStep)
		return Resume
	case 'r':
		return Restart
	case 'q':
		return Exit
	}
	return NoOp
}
