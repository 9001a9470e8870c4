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
	"context"
	"errors"
	"sync"

	"github.com/jetsetilly/armv2dbg/debugger/govern"
	"github.com/jetsetilly/armv2dbg/disassembly"
	"github.com/jetsetilly/armv2dbg/hardware"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/logger"
)

// DefaultCycle is the number of instructions requested from the machine by
// each cycle of Continue().
const DefaultCycle = 10000

// Engine owns the breakpoint table and controls the execution of the
// machine.
type Engine struct {
	machine *hardware.Machine

	// critical section guards the breakpoint table and the state
	crit sync.Mutex

	// breakpoint table. maps address to the word that was at the address
	// before the trap was written
	breakpoints map[uint32]uint32

	state govern.State

	// number of instructions requested by each cycle of Continue()
	cycle int
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(machine *hardware.Machine) *Engine {
	return &Engine{
		machine:     machine,
		breakpoints: make(map[uint32]uint32),
		state:       govern.Stopped,
		cycle:       DefaultCycle,
	}
}

// Machine returns the machine being controlled by the engine.
func (eng *Engine) Machine() *hardware.Machine {
	return eng.machine
}

// State returns the current state of the engine.
func (eng *Engine) State() govern.State {
	eng.crit.Lock()
	defer eng.crit.Unlock()
	return eng.state
}

func (eng *Engine) setState(state govern.State) {
	eng.crit.Lock()
	defer eng.crit.Unlock()
	eng.state = state
}

// SetCycle changes the number of instructions requested by each cycle of
// Continue(). Values less than one are ignored.
func (eng *Engine) SetCycle(n int) {
	if n < 1 {
		return
	}
	eng.crit.Lock()
	defer eng.crit.Unlock()
	eng.cycle = n
}

// Stop marks the engine as stopped. A Continue() in progress will return at
// the end of the current cycle. An instruction in progress is not halted.
func (eng *Engine) Stop() {
	eng.setState(govern.Stopped)
}

// StepCount advances the machine by n instructions. Execution stops early if a
// breakpoint is hit or if the context is cancelled.
//
// If the program counter is at a breakpoint when the function is called, the
// original instruction is executed and the breakpoint is re-installed before
// the remaining instructions are executed.
func (eng *Engine) StepCount(ctx context.Context, n int) (Result, error) {
	eng.setState(govern.Running)
	defer eng.setState(govern.Stopped)
	return eng.stepCount(ctx, n, true)
}

// Continue runs the machine until a breakpoint is hit, the context is
// cancelled or Stop() is called. Cancellation is not an error and is reported
// as a ResultCancelled result.
func (eng *Engine) Continue(ctx context.Context) (Result, error) {
	eng.setState(govern.Running)
	defer eng.setState(govern.Stopped)

	eng.crit.Lock()
	cycle := eng.cycle
	eng.crit.Unlock()

	// the resume rule only applies to the first cycle. a cycle that ends with
	// the program counter at a breakpoint has not yet hit that breakpoint
	resume := true

	for {
		res, err := eng.stepCount(ctx, cycle, resume)
		if err != nil || res.Kind != ResultNormal {
			return res, err
		}
		resume = false

		if eng.State() != govern.Running {
			return res, nil
		}
	}
}

func (eng *Engine) stepCount(ctx context.Context, n int, resume bool) (Result, error) {
	if n <= 0 {
		return eng.result(ResultNormal), nil
	}

	if ctx.Err() != nil {
		return eng.result(ResultCancelled), nil
	}

	if resume {
		resumed, st, err := eng.resume()
		if err != nil {
			return Result{}, err
		}
		if resumed {
			n--
			if st.Kind == core.StatusBreakpoint {
				return eng.hit(st), nil
			}
			if n == 0 {
				return eng.result(ResultNormal), nil
			}
		}
	}

	eng.machine.RequestSteps(n)
	st, err := eng.machine.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return eng.result(ResultCancelled), nil
		}
		return Result{}, err
	}

	if st.Kind == core.StatusBreakpoint {
		return eng.hit(st), nil
	}

	return eng.result(ResultNormal), nil
}

// resume executes the original instruction at a breakpointed program counter
// and re-installs the trap. returns false if the program counter is not at a
// breakpoint.
func (eng *Engine) resume() (bool, core.Status, error) {
	// the breakpoint table is locked for the duration so that the breakpoint
	// cannot be removed while the trap is lifted
	eng.crit.Lock()
	defer eng.crit.Unlock()

	var pc uint32
	var original uint32
	var ok bool
	var err error

	eng.machine.Lock(func(c core.Core) {
		pc = c.Register(core.PC)
		original, ok = eng.breakpoints[pc]
		if ok {
			err = c.WriteWord(pc, original)
		}
	})
	if !ok || err != nil {
		return false, core.Status{}, err
	}

	// a single instruction is not cancellable
	eng.machine.RequestSteps(1)
	st, err := eng.machine.Wait(context.Background())

	// the trap is re-installed even if the instruction failed
	eng.machine.Lock(func(c core.Core) {
		if werr := c.WriteWord(pc, core.BreakpointTrap); err == nil {
			err = werr
		}
	})

	return true, st, err
}

func (eng *Engine) hit(st core.Status) Result {
	logger.Logf(logger.Allow, "debugger", "breakpoint hit at %#08x", st.Address)
	return Result{Kind: ResultBreakpoint, Address: st.Address}
}

func (eng *Engine) result(kind ResultKind) Result {
	return Result{Kind: kind, Address: eng.machine.Register(core.PC)}
}

// Disassemble returns a disassembly sequence for the address range. Addresses
// with a breakpoint are disassembled using the original word.
func (eng *Engine) Disassemble(start uint32, end uint32) (*disassembly.Sequence, error) {
	return disassembly.Disassemble(eng.machine, eng, start, end)
}
