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
	"sync"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/logger"
)

// Sentinel errors.
const (
	CoreFault     = "machine: core fault: %v"
	MachineClosed = "machine: session is closed"
)

// Machine runs a core.Core on its own goroutine.
type Machine struct {
	// critical section guards every field below and every access to the core
	crit sync.Mutex
	cond *sync.Cond

	core core.Core

	// number of instructions remaining in the current request
	steps int

	// alive is false once the machine has been closed or has faulted
	alive bool

	// the current request was interrupted by a cancelled context
	interrupted bool

	// incremented by every call to RequestSteps(). a cancelled context only
	// interrupts the request that was current when Wait() was called
	request uint64

	// status of the most recently completed request
	status core.Status

	// the recovered panic from the core, if any
	fault error

	// total number of instructions executed by the machine
	executed uint64

	devices []peripherals.Device

	// closed when the worker goroutine exits
	done chan struct{}
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The execution goroutine is started immediately and runs until Close() is
// called.
func NewMachine(c core.Core) *Machine {
	m := &Machine{
		core:  c,
		alive: true,
		done:  make(chan struct{}),
	}
	m.cond = sync.NewCond(&m.crit)

	go m.worker()

	return m
}

func (m *Machine) worker() {
	defer close(m.done)

	logger.Log(logger.Allow, "machine", "worker started")
	defer logger.Log(logger.Allow, "machine", "worker stopped")

	m.crit.Lock()
	defer m.crit.Unlock()

	for {
		for m.steps == 0 && m.alive {
			m.cond.Wait()
		}

		if !m.alive {
			return
		}

		m.status = core.Status{Kind: core.StatusNormal}

		for m.steps > 0 && m.alive {
			st, err := m.step()
			if err != nil {
				logger.Log(logger.Allow, "machine", err)
				m.fault = err
				m.alive = false
				break
			}

			m.steps--
			m.executed++

			if st.Kind == core.StatusBreakpoint {
				m.status = st
				break
			}

			// other goroutines are given the opportunity to take the critical
			// section between instructions. a cancelled request is seen on
			// the next check of the step counter
			m.crit.Unlock()
			m.crit.Lock()
		}

		m.steps = 0
		m.cond.Broadcast()
	}
}

// step executes a single instruction. must be called with the critical
// section held.
func (m *Machine) step() (st core.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = curated.Errorf(CoreFault, r)
		}
	}()
	return m.core.Step(1), nil
}

// RequestSteps asks the machine to execute n instructions. Any outstanding
// request is replaced. The function returns immediately, use Wait() to block
// until the request has completed.
func (m *Machine) RequestSteps(n int) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if n < 0 {
		n = 0
	}
	m.steps = n
	m.interrupted = false
	m.request++
	m.cond.Broadcast()
}

// interrupt stops the request if it is still the current request.
func (m *Machine) interrupt(request uint64) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.request == request && m.steps > 0 {
		m.steps = 0
		m.interrupted = true
		m.cond.Broadcast()
	}
}

// Wait blocks until the current request has completed and returns the status
// of the request. If the context is cancelled before the request completes
// then the request is stopped at the next instruction boundary and the
// context's error is returned.
func (m *Machine) Wait(ctx context.Context) (core.Status, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	// the callback takes the critical section, which is released while
	// waiting on the condition
	request := m.request
	stop := context.AfterFunc(ctx, func() {
		m.interrupt(request)
	})
	defer stop()

	for m.steps > 0 && m.alive {
		m.cond.Wait()
	}

	if m.fault != nil {
		return m.status, m.fault
	}

	if m.interrupted {
		m.interrupted = false
		return m.status, ctx.Err()
	}

	if !m.alive {
		return m.status, curated.Errorf(MachineClosed)
	}

	return m.status, nil
}

// Close ends the session. The execution goroutine is stopped and the function
// returns once it has exited. It is safe to call Close() more than once.
func (m *Machine) Close() {
	m.crit.Lock()
	m.alive = false
	m.cond.Broadcast()
	m.crit.Unlock()

	<-m.done
}

// Err returns the core fault that ended the session, if any.
func (m *Machine) Err() error {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.fault
}

// Executed returns the total number of instructions executed.
func (m *Machine) Executed() uint64 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.executed
}

// Lock gives the function exclusive access to the core. The core is not
// executing while the function runs. The core must not be retained after the
// function returns.
func (m *Machine) Lock(f func(c core.Core)) {
	m.crit.Lock()
	defer m.crit.Unlock()
	f(m.core)
}
