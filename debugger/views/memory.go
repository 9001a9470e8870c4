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
	"strings"
	"time"

	"github.com/jetsetilly/armv2dbg/debugger/terminal"
)

const (
	// number of bytes shown on each line of the memory view
	memoryWidth = 16

	// keys typed within this duration of the previous key continue the
	// address being typed
	memoryKeyTime = time.Second

	// the highest address that can be selected
	memoryMax = 0x4000000
)

// address digits are entered from the most significant digit. the mask
// preserves the digits of the current position not yet typed over
var memoryMasks = [...]uint32{0x3fffff0, 0x3ffff00, 0x3fff000, 0x3ff0000, 0x3f00000, 0x3000000, 0}

// Memory is a hex dump of memory. The address to show can be typed as a hex
// number.
type Memory struct {
	dbg    Debugger
	output io.Writer
	height int

	pos      uint32
	selected uint32

	// state of address entry
	lastKey time.Time
	keyPos  int
	newNum  uint32

	// the current time. replaced for testing
	now func() time.Time
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(dbg Debugger, output io.Writer, height int) *Memory {
	if height < 1 {
		height = 1
	}
	return &Memory{
		dbg:    dbg,
		output: output,
		height: height,
		now:    time.Now,
	}
}

// Select implements the View interface.
func (mv *Memory) Select(address uint32) {
	mv.setSelected(int64(address))
}

func (mv *Memory) setSelected(address int64) {
	if address > memoryMax {
		address = memoryMax
	}
	if address < 0 {
		address = 0
	}
	mv.selected = uint32(address)

	if (mv.selected-mv.pos)/memoryWidth >= uint32(mv.height) && mv.selected > mv.pos {
		mv.pos = mv.selected - uint32(mv.height-1)*memoryWidth
	} else if mv.selected < mv.pos {
		mv.pos = mv.selected
	}
}

// CenterOn implements the View interface.
func (mv *Memory) CenterOn(address uint32) {
	mv.Select(address)
	half := uint32(mv.height/2) * memoryWidth
	if mv.selected > half {
		mv.pos = mv.selected - half
	} else {
		mv.pos = 0
	}
}

// Render implements the View interface.
func (mv *Memory) Render(focused bool) {
	// the address being typed, with dots for the digits not yet typed
	typed := fmt.Sprintf("%07x", mv.pos)[:mv.keyPos]
	typed += strings.Repeat(".", 7-len(typed))

	title(mv.output, fmt.Sprintf("memory %s", typed), focused)

	for i := 0; i < mv.height; i++ {
		address := mv.pos + uint32(i*memoryWidth)

		// ReadBytes() returns the bytes read before any error
		data, _ := mv.dbg.ReadBytes(address, memoryWidth)

		s := strings.Builder{}
		fmt.Fprintf(&s, "%07x :", address)
		for j := 0; j < memoryWidth; j++ {
			if j < len(data) {
				fmt.Fprintf(&s, " %02x", data[j])
			} else {
				s.WriteString(" ??")
			}
		}

		line(mv.output, s.String(), address == mv.selected)
	}
}

// HandleInput implements the View interface.
func (mv *Memory) HandleInput(key terminal.Key) Control {
	switch key {
	case terminal.KeyDown:
		mv.setSelected(int64(mv.selected) + memoryWidth)
	case terminal.KeyUp:
		mv.setSelected(int64(mv.selected) - memoryWidth)
	case terminal.KeyPageDown:
		mv.setSelected(int64(mv.selected) + int64(memoryWidth*mv.height))
	case terminal.KeyPageUp:
		mv.setSelected(int64(mv.selected) - int64(memoryWidth*mv.height))
	case terminal.KeyTab:
		return SwitchFocus
	case 'q':
		return Exit
	default:
		if d, ok := hexDigit(key); ok {
			mv.typeDigit(d)
		}
	}
	return NoOp
}

func (mv *Memory) typeDigit(d uint32) {
	mv.keyPos %= len(memoryMasks)

	now := mv.now()
	if now.Sub(mv.lastKey) > memoryKeyTime {
		mv.keyPos = 0
		mv.newNum = 0
	}
	mv.lastKey = now

	mv.newNum = ((mv.newNum << 4) | d) & 0x3ffffff
	mv.pos &= memoryMasks[mv.keyPos]
	mv.pos |= mv.newNum
	mv.keyPos++
	mv.selected = mv.pos
}

func hexDigit(key terminal.Key) (uint32, bool) {
	switch {
	case key >= '0' && key <= '9':
		return uint32(key - '0'), true
	case key >= 'a' && key <= 'f':
		return uint32(key-'a') + 10, true
	case key >= 'A' && key <= 'F':
		return uint32(key-'A') + 10, true
	}
	return 0, false
}
