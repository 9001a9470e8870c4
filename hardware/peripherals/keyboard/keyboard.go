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

// Package keyboard implements a simple input device. Key presses are pushed
// to the device from the user interface and read by the core one byte at a
// time.
//
// The device has two registers, relative to the start of the page it is
// mapped to:
//
//	0x0 data register. reading removes and returns the oldest key. zero if
//	    there are no keys waiting
//	0x4 count register. the number of keys waiting
package keyboard

import (
	"sync"

	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/logger"
)

// ID of the keyboard device.
const ID uint32 = 0x41414141

// Register offsets.
const (
	Data  uint32 = 0x0
	Count uint32 = 0x4
)

// maximum number of keys that can be waiting. keys pushed when the buffer is
// full are dropped.
const bufferSize = 64

// Keyboard implements the peripherals.Device interface.
type Keyboard struct {
	crit sync.Mutex
	keys []byte
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		keys: make([]byte, 0, bufferSize),
	}
}

// Push a key. Safe to call from any goroutine.
func (kb *Keyboard) Push(key byte) {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	if len(kb.keys) >= bufferSize {
		logger.Log(logger.Allow, "keyboard", "buffer full")
		return
	}
	kb.keys = append(kb.keys, key)
}

// ID implements the peripherals.Device interface.
func (kb *Keyboard) ID() uint32 {
	return ID
}

// OnRead implements the peripherals.Device interface.
func (kb *Keyboard) OnRead(address uint32, current uint32) uint32 {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	switch peripherals.Register(address) {
	case Data:
		if len(kb.keys) == 0 {
			return 0
		}
		k := kb.keys[0]
		kb.keys = kb.keys[1:]
		return uint32(k)
	case Count:
		return uint32(len(kb.keys))
	}
	return current
}

// OnWrite implements the peripherals.Device interface.
func (kb *Keyboard) OnWrite(address uint32, value uint32) {
	logger.Logf(logger.Allow, "keyboard", "write to read-only device (%#08x: %#08x)", address, value)
}
