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

	"github.com/jetsetilly/armv2dbg/debugger/views"
	"github.com/jetsetilly/armv2dbg/disassembly"
	"github.com/jetsetilly/armv2dbg/hardware"
)

// viewsDebugger implements the views.Debugger interface.
type viewsDebugger struct {
	*hardware.Machine
	dbg *Debugger
}

func (vd viewsDebugger) HasBreakpoint(address uint32) bool {
	return vd.dbg.eng.HasBreakpoint(address)
}

func (vd viewsDebugger) ToggleBreakpoint(address uint32) error {
	return vd.dbg.eng.ToggleBreakpoint(address)
}

func (vd viewsDebugger) Disassemble(start uint32, end uint32) (*disassembly.Sequence, error) {
	return vd.dbg.eng.Disassemble(start, end)
}

func (vd viewsDebugger) Queue(action views.Action) {
	vd.dbg.queued = append(vd.dbg.queued, action)
}

// scriptDebugger implements the script.Debugger interface.
type scriptDebugger struct {
	*hardware.Machine
	dbg *Debugger
}

func (sd scriptDebugger) Step(ctx context.Context, n int) (string, error) {
	res, err := sd.dbg.step(ctx, n)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (sd scriptDebugger) Continue(ctx context.Context) (string, error) {
	res, err := sd.dbg.cont(ctx)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func (sd scriptDebugger) AddBreakpoint(address uint32) error {
	return sd.dbg.eng.AddBreakpoint(address)
}

func (sd scriptDebugger) RemoveBreakpoint(address uint32) error {
	return sd.dbg.eng.RemoveBreakpoint(address)
}

func (sd scriptDebugger) DisassembleOne(address uint32) (string, error) {
	seq, err := sd.dbg.eng.Disassemble(address, address+4)
	if err != nil {
		return "", err
	}
	ins, ok := seq.Next()
	if !ok {
		return "", seq.Err()
	}
	return ins.String(), nil
}
