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

package debugger

import (
	"sort"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// MissingBreakpoint is returned when removing a breakpoint that does not exist.
const MissingBreakpoint = "breakpoint: no breakpoint at %#08x"

// AddBreakpoint patches the trap instruction into memory at the address. The
// original word is kept in the breakpoint table. Adding a breakpoint that
// already exists does nothing.
func (eng *Engine) AddBreakpoint(address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf(core.AlignmentError, address)
	}

	eng.crit.Lock()
	defer eng.crit.Unlock()

	if _, ok := eng.breakpoints[address]; ok {
		return nil
	}

	var err error
	eng.machine.Lock(func(c core.Core) {
		var original uint32
		original, err = c.ReadWord(address)
		if err != nil {
			return
		}
		err = c.WriteWord(address, core.BreakpointTrap)
		if err != nil {
			return
		}
		eng.breakpoints[address] = original
	})

	return err
}

// RemoveBreakpoint restores the original word at the address and removes the
// entry from the breakpoint table.
func (eng *Engine) RemoveBreakpoint(address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf(core.AlignmentError, address)
	}

	eng.crit.Lock()
	defer eng.crit.Unlock()

	original, ok := eng.breakpoints[address]
	if !ok {
		return curated.Errorf(MissingBreakpoint, address)
	}

	var err error
	eng.machine.Lock(func(c core.Core) {
		err = c.WriteWord(address, original)
	})
	if err != nil {
		return err
	}

	delete(eng.breakpoints, address)

	return nil
}

// ToggleBreakpoint adds a breakpoint at the address if there is not one
// already, otherwise the breakpoint is removed.
func (eng *Engine) ToggleBreakpoint(address uint32) error {
	if eng.HasBreakpoint(address) {
		return eng.RemoveBreakpoint(address)
	}
	return eng.AddBreakpoint(address)
}

// HasBreakpoint returns true if there is a breakpoint at the address.
func (eng *Engine) HasBreakpoint(address uint32) bool {
	eng.crit.Lock()
	defer eng.crit.Unlock()
	_, ok := eng.breakpoints[address]
	return ok
}

// Breakpoints returns the sorted list of breakpoint addresses.
func (eng *Engine) Breakpoints() []uint32 {
	eng.crit.Lock()
	defer eng.crit.Unlock()

	l := make([]uint32, 0, len(eng.breakpoints))
	for a := range eng.breakpoints {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })

	return l
}

// Shadowed implements the disassembly.Shadow interface. It returns the
// original word for an address that has been patched with a breakpoint.
func (eng *Engine) Shadowed(address uint32) (uint32, bool) {
	eng.crit.Lock()
	defer eng.crit.Unlock()
	w, ok := eng.breakpoints[address]
	return w, ok
}
