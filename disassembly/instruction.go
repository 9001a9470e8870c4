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

package disassembly

import (
	"fmt"
	"strings"
)

// Condition is the condition field of an instruction. Bits 31 to 28.
type Condition uint8

// List of valid Condition values.
const (
	CondEQ Condition = iota
	CondNE
	CondCS
	CondCC
	CondMI
	CondPL
	CondVS
	CondVC
	CondHI
	CondLS
	CondGE
	CondLT
	CondGT
	CondLE
	CondAL
	CondNV
)

var conditions = [...]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "", "NV",
}

// String returns the mnemonic suffix for the condition. The always condition
// is the empty string.
func (c Condition) String() string {
	return conditions[c&0x0f]
}

// Class is the instruction class.
type Class int

// List of valid Class values.
const (
	ClassDataProcessing Class = iota
	ClassMultiply
	ClassSwap
	ClassSingleTransfer
	ClassBranch
	ClassMultiTransfer
	ClassSoftwareInterrupt
	ClassCoprocessorTransfer
	ClassCoprocessorRegister
	ClassCoprocessorOperation
)

func (c Class) String() string {
	switch c {
	case ClassDataProcessing:
		return "data processing"
	case ClassMultiply:
		return "multiply"
	case ClassSwap:
		return "swap"
	case ClassSingleTransfer:
		return "single data transfer"
	case ClassBranch:
		return "branch"
	case ClassMultiTransfer:
		return "block data transfer"
	case ClassSoftwareInterrupt:
		return "software interrupt"
	case ClassCoprocessorTransfer:
		return "coprocessor data transfer"
	case ClassCoprocessorRegister:
		return "coprocessor register transfer"
	case ClassCoprocessorOperation:
		return "coprocessor data operation"
	}
	return "unknown"
}

// Recognised returns false for the placeholder classes.
func (c Class) Recognised() bool {
	switch c {
	case ClassCoprocessorTransfer, ClassCoprocessorRegister, ClassCoprocessorOperation:
		return false
	}
	return true
}

// Instruction is the result of decoding a single word. Instances are values
// and are never modified after decoding.
type Instruction struct {
	Address   uint32
	Word      uint32
	Condition Condition
	Class     Class
	Mnemonic  string
	Operands  []string

	// the destination address of a branch or the address of the literal in a
	// PC relative load. only valid if HasTarget is true
	Target    uint32
	HasTarget bool
}

// String returns the instruction in the form:
//
//	MNEMONIC<cond> op1, op2, ...
func (ins Instruction) String() string {
	s := strings.Builder{}
	s.WriteString(ins.Mnemonic)
	s.WriteString(ins.Condition.String())
	if len(ins.Operands) > 0 {
		s.WriteString(" ")
		s.WriteString(strings.Join(ins.Operands, ", "))
	}
	return s.String()
}

// Line returns a single line of a listing for the instruction.
func (ins Instruction) Line() string {
	return fmt.Sprintf("%08x: %08x  %s", ins.Address, ins.Word, ins.String())
}
