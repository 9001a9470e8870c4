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
	"io"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/views"
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// the views used by the VIEW and KEYS commands.
type viewSet struct {
	state  *views.State
	memory *views.Memory
	code   *views.Code
	help   *views.Help

	// the order in which the views are drawn
	all []views.View

	// the views that can take input. the first entry has focus
	focusable []views.View
}

func (dbg *Debugger) newViewSet() *viewSet {
	vd := viewsDebugger{Machine: dbg.eng.Machine(), dbg: dbg}
	w := dbg.printStyle(terminal.StyleCode)

	vs := &viewSet{
		state:  views.NewState(vd, w),
		memory: views.NewMemory(vd, w, dbg.prefs.MemLines.Get().(int)),
		code:   views.NewCode(vd, w, dbg.prefs.CodeLines.Get().(int)),
		help:   views.NewHelp(w),
	}
	vs.all = []views.View{vs.state, vs.memory, vs.code, vs.help}
	vs.focusable = []views.View{vs.code, vs.memory}

	vs.follow(vd.Register(core.PC))

	return vs
}

// select and center the code view on the address
func (vs *viewSet) follow(pc uint32) {
	vs.code.Select(pc)
	vs.code.CenterOn(pc)
}

func (vs *viewSet) focused() views.View {
	return vs.focusable[0]
}

func (vs *viewSet) switchFocus() {
	vs.focusable = append(vs.focusable[1:], vs.focusable[0])
}

func (vs *viewSet) render() {
	f := vs.focused()
	for _, v := range vs.all {
		v.Render(v == f)
	}
}

// keys runs the interactive views until the exit key is pressed.
func (dbg *Debugger) keys(ctx context.Context) error {
	if dbg.running() {
		return curated.Errorf(EngineRunning)
	}

	vs := dbg.newViewSet()
	dbg.queued = dbg.queued[:0]

	for {
		vs.render()

		k, err := dbg.input.TermReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) || curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return err
		}
		if k == terminal.KeyInterrupt {
			return nil
		}

		switch vs.focused().HandleInput(k) {
		case views.Resume:
			if err := dbg.runQueued(ctx); err != nil {
				return err
			}
			vs.follow(dbg.eng.Machine().Register(core.PC))
		case views.SwitchFocus:
			vs.switchFocus()
		case views.Restart:
			if err := dbg.reset(); err != nil {
				return err
			}
			vs.follow(dbg.eng.Machine().Register(core.PC))
		case views.Exit:
			return nil
		}
	}
}

// perform the actions queued by the views.
func (dbg *Debugger) runQueued(ctx context.Context) error {
	defer func() {
		dbg.queued = dbg.queued[:0]
	}()

	for _, a := range dbg.queued {
		var res Result
		var err error

		switch a {
		case views.ActionStep:
			res, err = dbg.step(ctx, 1)
		case views.ActionContinue:
			res, err = dbg.cont(ctx)
		}
		if err != nil {
			return err
		}

		dbg.printLine(terminal.StyleFeedback, res.String())
	}

	return nil
}
