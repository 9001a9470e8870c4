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
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/logger"
)

// Sentinel errors for device registration and mapping.
const (
	DuplicateDevice = "machine: device %#08x is already registered"
	UnknownDevice   = "machine: no device with id %#08x"
	UnalignedDevice = "machine: device range %#08x to %#08x is not page aligned"
)

// AddDevice registers a peripheral with the machine. The device is not
// visible to the core until it has been mapped with MapDevice().
func (m *Machine) AddDevice(dev peripherals.Device) error {
	m.crit.Lock()
	defer m.crit.Unlock()

	for _, d := range m.devices {
		if d.ID() == dev.ID() {
			return curated.Errorf(DuplicateDevice, dev.ID())
		}
	}
	m.devices = append(m.devices, dev)

	return nil
}

// MapDevice maps a registered device to the address range. The start address
// must be at the beginning of a page and the end address (inclusive) at the
// end of a page. A later mapping shadows any earlier mapping for the same
// pages.
func (m *Machine) MapDevice(id uint32, start uint32, end uint32) error {
	if start&peripherals.PageMask != 0 || (end+1)&peripherals.PageMask != 0 {
		return curated.Errorf(UnalignedDevice, start, end)
	}

	m.crit.Lock()
	defer m.crit.Unlock()

	for _, d := range m.devices {
		if d.ID() == id {
			if err := m.core.AttachDevice(d, start, end); err != nil {
				return err
			}
			logger.Logf(logger.Allow, "machine", "device %#08x mapped to %#08x-%#08x", id, start, end)
			return nil
		}
	}

	return curated.Errorf(UnknownDevice, id)
}

// Devices returns the registered devices in the order they were added.
func (m *Machine) Devices() []peripherals.Device {
	m.crit.Lock()
	defer m.crit.Unlock()

	d := make([]peripherals.Device, len(m.devices))
	copy(d, m.devices)
	return d
}
