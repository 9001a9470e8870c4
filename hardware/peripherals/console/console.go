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

// Package console implements a simple output device. Bytes written to the
// data register are written to an io.Writer.
//
// The device has two registers, relative to the start of the page it is
// mapped to:
//
//	0x0 data register. the low byte of a written word is output
//	0x4 status register. reads as one when the device is ready
package console

import (
	"io"
	"sync"

	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/logger"
)

// ID of the console device.
const ID uint32 = 0x434f4e53

// Register offsets.
const (
	Data   uint32 = 0x0
	Status uint32 = 0x4
)

// Console implements the peripherals.Device interface.
type Console struct {
	crit   sync.Mutex
	output io.Writer
}

// NewConsole is the preferred method of initialisation for the Console type.
func NewConsole(output io.Writer) *Console {
	return &Console{output: output}
}

// SetOutput changes where console output is written.
func (con *Console) SetOutput(output io.Writer) {
	con.crit.Lock()
	defer con.crit.Unlock()
	con.output = output
}

// ID implements the peripherals.Device interface.
func (con *Console) ID() uint32 {
	return ID
}

// OnRead implements the peripherals.Device interface.
func (con *Console) OnRead(address uint32, current uint32) uint32 {
	switch peripherals.Register(address) {
	case Status:
		return 1
	}
	return current
}

// OnWrite implements the peripherals.Device interface.
func (con *Console) OnWrite(address uint32, value uint32) {
	switch peripherals.Register(address) {
	case Data:
		con.crit.Lock()
		defer con.crit.Unlock()
		if con.output != nil {
			con.output.Write([]byte{byte(value)})
		}
	default:
		logger.Logf(logger.Allow, "console", "write to unknown register (%#08x)", address)
	}
}
