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
	"fmt"
)

// ResultKind indicates how a StepCount() or Continue() request ended.
type ResultKind int

// List of valid ResultKind values.
const (
	ResultNormal ResultKind = iota
	ResultBreakpoint
	ResultCancelled
)

func (k ResultKind) String() string {
	switch k {
	case ResultNormal:
		return "normal"
	case ResultBreakpoint:
		return "breakpoint"
	case ResultCancelled:
		return "cancelled"
	}
	return ""
}

// Result is returned by the execution functions of the Engine. The Address
// field is the address of the breakpoint for ResultBreakpoint and the address
// of the next instruction otherwise.
type Result struct {
	Kind    ResultKind
	Address uint32
}

func (r Result) String() string {
	switch r.Kind {
	case ResultBreakpoint:
		return fmt.Sprintf("breakpoint at %#08x", r.Address)
	case ResultCancelled:
		return fmt.Sprintf("cancelled at %#08x", r.Address)
	}
	return fmt.Sprintf("stopped at %#08x", r.Address)
}
