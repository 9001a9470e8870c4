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
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/fatih/color"
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/govern"
	"github.com/jetsetilly/armv2dbg/debugger/script"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/views"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/logger"
	"github.com/jetsetilly/armv2dbg/prefs"
)

// Sentinel errors returned by the Debugger.
const (
	EngineRunning = "debugger: engine is running (use STOP)"
)

// Debugger is the interactive front end to the Engine. Commands are read from
// the terminal and acted upon until the QUIT command is entered or the input
// is exhausted.
type Debugger struct {
	eng   *Engine
	term  terminal.Terminal
	prefs *Preferences

	// all output goes through the output type
	out *output

	// the input currently being used. the terminal or a command script
	input terminal.Input

	tabCompletion *terminal.TabCompletion

	// actions queued by the interactive views
	queued []views.Action

	// cancel function of the CONTINUE command in progress. nil if the engine
	// is not being continued
	crit   sync.Mutex
	cancel context.CancelFunc

	// waits for a CONTINUE command running in the background
	background sync.WaitGroup

	// the QUIT command has been entered
	quit bool
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
func NewDebugger(eng *Engine, term terminal.Terminal, prf *Preferences) *Debugger {
	dbg := &Debugger{
		eng:   eng,
		term:  term,
		prefs: prf,
		out:   &output{term: term},
	}

	dbg.tabCompletion = terminal.NewTabCompletion(commandList)
	dbg.tabCompletion.AddArguments(cmdPrefs, append([]string{"SET", "SAVE", "LOAD"}, prf.Keys()...))
	dbg.tabCompletion.AddArguments(cmdScript, []string{"RECORD", "END"})
	dbg.tabCompletion.AddFileArgument(cmdScript)
	dbg.tabCompletion.AddArguments(cmdLog, []string{"CLEAR"})
	dbg.tabCompletion.AddArguments(cmdClear, []string{"ALL"})
	dbg.tabCompletion.AddArguments(cmdContinue, []string{"BG"})

	// the preferences take effect immediately and whenever they change
	eng.SetCycle(prf.Steps.Get().(int))
	prf.Steps.SetHookPost(func(v prefs.Value) error {
		eng.SetCycle(v.(int))
		return nil
	})
	color.NoColor = !prf.Color.Get().(bool)
	prf.Color.SetHookPost(func(v prefs.Value) error {
		color.NoColor = !v.(bool)
		return nil
	})

	return dbg
}

// MachineOutput returns an io.Writer suitable for the output of peripherals.
func (dbg *Debugger) MachineOutput() io.Writer {
	return dbg.printStyle(terminal.StyleMachine)
}

// Start the debugger. Returns when the QUIT command is entered, when the input
// is exhausted or when the context is cancelled.
func (dbg *Debugger) Start(ctx context.Context) error {
	if err := dbg.term.Initialise(); err != nil {
		return err
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(dbg.tabCompletion)

	// an interrupt signal cancels the CONTINUE command in progress
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigint)
		close(done)
	}()

	go func() {
		for {
			select {
			case <-sigint:
				dbg.interrupt()
			case <-done:
				return
			}
		}
	}()

	defer func() {
		dbg.stop()
		if err := dbg.out.scribe.EndSession(); err != nil {
			logger.Log(logger.Allow, "debugger", err)
		}
	}()

	logger.Log(logger.Allow, "debugger", "started")
	defer logger.Log(logger.Allow, "debugger", "finished")

	return dbg.inputLoop(ctx, dbg.term)
}

// inputLoop reads and acts upon commands from the input until QUIT or the
// end of the input.
func (dbg *Debugger) inputLoop(ctx context.Context, input terminal.Input) error {
	prev := dbg.input
	dbg.input = input
	defer func() {
		dbg.input = prev
	}()

	for !dbg.quit {
		if err := ctx.Err(); err != nil {
			return err
		}

		s, err := input.TermRead(dbg.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || curated.Is(err, script.ScriptEnd) {
				return nil
			}
			if curated.Is(err, terminal.UserInterrupt) {
				dbg.printLine(terminal.StyleFeedback, "use QUIT to exit")
				continue
			}
			return err
		}

		if !input.IsInteractive() {
			dbg.printLine(terminal.StyleEcho, s)
		}

		dbg.out.recordInput(s)
		if err := dbg.parseCommand(ctx, s); err != nil {
			dbg.out.rollback()
			dbg.printLine(terminal.StyleError, "%v", err)
		}
	}

	return nil
}

func (dbg *Debugger) prompt() terminal.Prompt {
	pc := dbg.eng.Machine().Register(core.PC)
	return terminal.Prompt{
		Content: fmt.Sprintf("%#08x", pc),
		Running: dbg.eng.State() == govern.Running,
	}
}

// interrupt is called when an interrupt signal is received.
func (dbg *Debugger) interrupt() {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	if dbg.cancel != nil {
		dbg.cancel()
		return
	}
	dbg.printLine(terminal.StyleFeedback, "use QUIT to exit")
}

// setCancel records the cancel function of a CONTINUE command. returns false
// if a CONTINUE command is already in progress.
func (dbg *Debugger) setCancel(cancel context.CancelFunc) bool {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	if cancel != nil && dbg.cancel != nil {
		return false
	}
	dbg.cancel = cancel
	return true
}

// running returns true if a CONTINUE command is in progress.
func (dbg *Debugger) running() bool {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	return dbg.cancel != nil
}

// stop the CONTINUE command in progress and wait for it to finish.
func (dbg *Debugger) stop() {
	dbg.eng.Stop()
	dbg.crit.Lock()
	if dbg.cancel != nil {
		dbg.cancel()
	}
	dbg.crit.Unlock()
	dbg.background.Wait()
}

// step the engine by n instructions.
func (dbg *Debugger) step(ctx context.Context, n int) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !dbg.setCancel(cancel) {
		return Result{}, curated.Errorf(EngineRunning)
	}
	defer dbg.setCancel(nil)
	return dbg.eng.StepCount(ctx, n)
}

// continue the engine until a breakpoint or until interrupted.
func (dbg *Debugger) cont(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !dbg.setCancel(cancel) {
		return Result{}, curated.Errorf(EngineRunning)
	}
	defer dbg.setCancel(nil)
	return dbg.eng.Continue(ctx)
}

// continue the engine in the background. the result is printed when the
// engine stops.
func (dbg *Debugger) contBackground(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	if !dbg.setCancel(cancel) {
		cancel()
		return curated.Errorf(EngineRunning)
	}

	dbg.printLine(terminal.StyleFeedback, "running in background")

	dbg.background.Add(1)
	go func() {
		defer dbg.background.Done()
		defer dbg.setCancel(nil)
		defer cancel()

		res, err := dbg.eng.Continue(ctx)
		if err != nil {
			dbg.printLine(terminal.StyleError, "%v", err)
			return
		}
		dbg.printResult(res)
	}()

	return nil
}

// reset the core. memory and breakpoints are preserved.
func (dbg *Debugger) reset() error {
	if dbg.running() {
		return curated.Errorf(EngineRunning)
	}
	dbg.eng.Machine().Lock(func(c core.Core) {
		c.Reset()
	})
	logger.Log(logger.Allow, "debugger", "core reset")
	return nil
}

func (dbg *Debugger) printResult(res Result) {
	dbg.printLine(terminal.StyleFeedback, res.String())
	dbg.printInstruction(dbg.eng.Machine().Register(core.PC))
}

// print the disassembly of the instruction at the address.
func (dbg *Debugger) printInstruction(address uint32) {
	seq, err := dbg.eng.Disassemble(address&^0x03, address+4)
	if err != nil {
		return
	}
	if ins, ok := seq.Next(); ok {
		dbg.printLine(terminal.StyleCode, ins.Line())
	}
}
