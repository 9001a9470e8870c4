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
	"context"
	"testing"

	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/test"
)

// spinner is a core that does nothing for every instruction
type spinner struct{}

func (c *spinner) Register(_ int) uint32              { return 0 }
func (c *spinner) SetRegister(_ int, _ uint32)        {}
func (c *spinner) PSR() uint32                        { return 0 }
func (c *spinner) Mode() core.Mode                    { return core.ModeUSR }
func (c *spinner) Peek(_ uint32) (uint8, error)       { return 0, nil }
func (c *spinner) Poke(_ uint32, _ uint8) error       { return nil }
func (c *spinner) ReadWord(_ uint32) (uint32, error)  { return 0, nil }
func (c *spinner) WriteWord(_ uint32, _ uint32) error { return nil }
func (c *spinner) MemorySize() uint32                 { return 0 }
func (c *spinner) Step(_ int) core.Status             { return core.Status{Kind: core.StatusNormal} }
func (c *spinner) Reset()                             {}
func (c *spinner) AttachDevice(_ peripherals.Device, _ uint32, _ uint32) error {
	return nil
}

func (m *Machine) currentRequest() uint64 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.request
}

func TestInterruptEarlierRequest(t *testing.T) {
	m := NewMachine(&spinner{})
	t.Cleanup(m.Close)

	m.RequestSteps(1)
	_, err := m.Wait(context.Background())
	test.DemandSuccess(t, err)
	earlier := m.currentRequest()

	// an interrupt for the completed request does not affect the new one
	m.RequestSteps(1 << 30)
	m.interrupt(earlier)

	m.crit.Lock()
	test.ExpectEquality(t, m.interrupted, false)
	test.ExpectEquality(t, m.steps > 0, true)
	m.crit.Unlock()

	m.interrupt(m.currentRequest())

	m.crit.Lock()
	test.ExpectEquality(t, m.interrupted, true)
	test.ExpectEquality(t, m.steps, 0)
	m.crit.Unlock()
}

func TestWaitCancelled(t *testing.T) {
	m := NewMachine(&spinner{})
	t.Cleanup(m.Close)

	ctx, cancel := context.WithCancel(context.Background())
	m.RequestSteps(1 << 30)
	cancel()

	_, err := m.Wait(ctx)
	test.ExpectEquality(t, err, context.Canceled)
}
