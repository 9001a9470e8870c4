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

package hardware

import (
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// Registers returns a snapshot of all registers in the current mode. The
// snapshot is taken between instructions.
func (m *Machine) Registers() [core.NumRegisters]uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()

	var r [core.NumRegisters]uint32
	for i := range r {
		r[i] = m.core.Register(i)
	}
	return r
}

// Register returns the value of a single register in the current mode.
func (m *Machine) Register(i int) uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.Register(i)
}

// SetRegister sets the value of a single register in the current mode.
func (m *Machine) SetRegister(i int, value uint32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.core.SetRegister(i, value)
}

// PSR returns the processor status register.
func (m *Machine) PSR() uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.PSR()
}

// Mode returns the current processor mode.
func (m *Machine) Mode() core.Mode {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.Mode()
}

// MemorySize returns the size of the core's memory in bytes.
func (m *Machine) MemorySize() uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.MemorySize()
}

// ReadWord reads the word at the aligned address.
func (m *Machine) ReadWord(address uint32) (uint32, error) {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.ReadWord(address)
}

// WriteWord writes the word at the aligned address.
func (m *Machine) WriteWord(address uint32, value uint32) error {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.core.WriteWord(address, value)
}

// ReadBytes reads n bytes starting at address. The bytes read before any
// error are returned along with the error.
func (m *Machine) ReadBytes(address uint32, n int) ([]byte, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	b := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		v, err := m.core.Peek(address + uint32(i))
		if err != nil {
			return b, err
		}
		b = append(b, v)
	}
	return b, nil
}

// WriteBytes writes the data starting at address.
func (m *Machine) WriteBytes(address uint32, data []byte) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	for i, v := range data {
		if err := m.core.Poke(address+uint32(i), v); err != nil {
			return err
		}
	}
	return nil
}
