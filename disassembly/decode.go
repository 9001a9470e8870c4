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
	"math/bits"
	"strings"

	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// WordReader is used by the decoder to read the literal of a PC relative load
// and by the Sequence type to read the words to decode.
type WordReader interface {
	ReadWord(address uint32) (uint32, error)
}

var dataOpcodes = [...]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

var shiftTypes = [...]string{"LSL", "LSR", "ASR", "ROR"}

// the opcodes that do not use the Rn register
const (
	opMOV = 0b1101
	opMVN = 0b1111
)

func reg(r uint32) string {
	return core.RegisterName(int(r & 0x0f))
}

func hex(v uint32) string {
	return fmt.Sprintf("#0x%x", v)
}

// DecodeWord decodes the word as though it is found at address. PC relative
// literal loads are rendered with an unknown value.
func DecodeWord(address uint32, word uint32) Instruction {
	return Decode(address, word, nil)
}

// Decode the word as though it is found at address. The mem argument is used
// to read the value of PC relative literal loads and can be nil.
func Decode(address uint32, word uint32, mem WordReader) Instruction {
	ins := Instruction{
		Address:   address,
		Word:      word,
		Condition: Condition(word >> 28),
	}

	var f func(ins *Instruction, mem WordReader)

	switch (word >> 26) & 0x03 {
	case 0b00:
		if word&0xf0 != 0x90 {
			f = decodeDataProcessing
		} else if word&0xf00 != 0 {
			f = decodeMultiply
		} else {
			f = decodeSwap
		}
	case 0b01:
		f = decodeSingleTransfer
	case 0b10:
		if word&0x02000000 == 0x02000000 {
			f = decodeBranch
		} else {
			f = decodeMultiTransfer
		}
	case 0b11:
		if word&0x0f000000 == 0x0f000000 {
			f = decodeSoftwareInterrupt
		} else if word&0x02000000 == 0 {
			f = decodeCoprocessorTransfer
		} else if word&0x10 == 0x10 {
			f = decodeCoprocessorRegister
		} else {
			f = decodeCoprocessorOperation
		}
	}

	f(&ins, mem)

	return ins
}

// decodes the shift operand in bits 11 to 0. the result is either one or two
// operands. if allowRegShift is false then the shift amount is always treated
// as an immediate value.
func shiftOperand(word uint32, allowRegShift bool) []string {
	rm := reg(word)
	typ := shiftTypes[(word>>5)&0x03]

	if allowRegShift && word&0x10 == 0x10 {
		return []string{rm, fmt.Sprintf("%s %s", typ, reg(word>>8))}
	}

	amount := (word >> 7) & 0x1f
	if amount == 0 {
		// ROR #0 is the encoding for rotate right extended
		if (word>>5)&0x03 == 0b11 {
			return []string{rm, "RRX"}
		}
		return []string{rm}
	}

	return []string{rm, fmt.Sprintf("%s %s", typ, hex(amount))}
}

func decodeDataProcessing(ins *Instruction, _ WordReader) {
	ins.Class = ClassDataProcessing

	opcode := (ins.Word >> 21) & 0x0f
	rn := reg(ins.Word >> 16)
	rd := reg(ins.Word >> 12)

	ins.Mnemonic = dataOpcodes[opcode]

	var op2 []string
	if ins.Word&0x02000000 == 0x02000000 {
		imm := ins.Word & 0xff
		rot := ((ins.Word >> 8) & 0x0f) << 1
		op2 = []string{hex(bits.RotateLeft32(imm, -int(rot)))}
	} else {
		op2 = shiftOperand(ins.Word, true)
	}

	switch opcode {
	case opMOV, opMVN:
		ins.Operands = append([]string{rd}, op2...)
	default:
		ins.Operands = append([]string{rd, rn}, op2...)
	}
}

func decodeMultiply(ins *Instruction, _ WordReader) {
	ins.Class = ClassMultiply

	rm := reg(ins.Word)
	rs := reg(ins.Word >> 8)
	rn := reg(ins.Word >> 12)
	rd := reg(ins.Word >> 16)

	if ins.Word&0x00200000 == 0x00200000 {
		ins.Mnemonic = "MLA"
		ins.Operands = []string{rd, rm, rs, rn}
	} else {
		ins.Mnemonic = "MUL"
		ins.Operands = []string{rd, rm, rs}
	}
}

func decodeSwap(ins *Instruction, _ WordReader) {
	ins.Class = ClassSwap

	rm := reg(ins.Word)
	rd := reg(ins.Word >> 12)
	rn := reg(ins.Word >> 16)

	if ins.Word&0x00400000 == 0x00400000 {
		ins.Mnemonic = "SWPB"
	} else {
		ins.Mnemonic = "SWP"
	}
	ins.Operands = []string{rd, rm, fmt.Sprintf("[%s]", rn)}
}

func decodeSingleTransfer(ins *Instruction, mem WordReader) {
	ins.Class = ClassSingleTransfer

	rd := reg(ins.Word >> 12)
	rnNum := (ins.Word >> 16) & 0x0f
	immediate := ins.Word&0x02000000 == 0
	up := ins.Word&0x00800000 == 0x00800000
	preIndex := ins.Word&0x01000000 == 0x01000000

	if ins.Word&0x00100000 == 0x00100000 {
		ins.Mnemonic = "LDR"
	} else {
		ins.Mnemonic = "STR"
	}
	if ins.Word&0x00200000 == 0x00200000 {
		ins.Mnemonic = fmt.Sprintf("%s!", ins.Mnemonic)
	}

	var op2 []string
	var offset uint32
	if immediate {
		offset = ins.Word & 0xfff
		if up {
			op2 = []string{hex(offset)}
		} else {
			op2 = []string{fmt.Sprintf("#-0x%x", offset)}
			offset = -offset
		}
	} else {
		op2 = shiftOperand(ins.Word, false)
		if !up {
			op2[0] = fmt.Sprintf("-%s", op2[0])
		}
	}

	// PC relative literal
	if rnNum == core.PC && immediate {
		ins.Target = ins.Address + 8 + offset
		ins.HasTarget = true

		literal := "=?"
		if mem != nil {
			if v, err := mem.ReadWord(ins.Target); err == nil {
				literal = fmt.Sprintf("=0x%x", v)
			}
		}
		ins.Operands = []string{rd, literal}
		return
	}

	rn := reg(rnNum)
	if preIndex {
		op2[len(op2)-1] = fmt.Sprintf("%s]", op2[len(op2)-1])
		ins.Operands = append([]string{rd, fmt.Sprintf("[%s", rn)}, op2...)
	} else {
		ins.Operands = append([]string{rd, fmt.Sprintf("[%s]", rn)}, op2...)
	}
}

func decodeBranch(ins *Instruction, _ WordReader) {
	ins.Class = ClassBranch

	if ins.Word&0x01000000 == 0x01000000 {
		ins.Mnemonic = "BL"
	} else {
		ins.Mnemonic = "B"
	}

	// the offset is not sign extended. the target wraps around the 32-bit
	// address space
	offset := (ins.Word & 0xffffff) << 2
	ins.Target = ins.Address + offset + 8
	ins.HasTarget = true
	ins.Operands = []string{fmt.Sprintf("0x%08x", ins.Target)}
}

func decodeMultiTransfer(ins *Instruction, _ WordReader) {
	ins.Class = ClassMultiTransfer

	s := strings.Builder{}
	if ins.Word&0x00100000 == 0x00100000 {
		s.WriteString("LDM")
	} else {
		s.WriteString("STM")
	}
	if ins.Word&0x00800000 == 0x00800000 {
		s.WriteString("I")
	} else {
		s.WriteString("D")
	}
	if ins.Word&0x01000000 == 0x01000000 {
		s.WriteString("B")
	} else {
		s.WriteString("A")
	}
	ins.Mnemonic = s.String()

	base := reg(ins.Word >> 16)
	if ins.Word&0x00200000 == 0x00200000 {
		base = fmt.Sprintf("%s!", base)
	}

	list := RegisterList(uint16(ins.Word))
	if ins.Word&0x00400000 == 0x00400000 {
		list = fmt.Sprintf("%s^", list)
	}

	ins.Operands = []string{base, list}
}

// RegisterList renders a register bitmask using run compression. Runs of
// three or more consecutive registers are rendered as a range.
func RegisterList(mask uint16) string {
	var regs []string

	i := 0
	for i < 16 {
		if mask&(1<<i) == 0 {
			i++
			continue
		}

		// find end of run
		j := i
		for j+1 < 16 && mask&(1<<(j+1)) != 0 {
			j++
		}

		if j-i >= 2 {
			regs = append(regs, fmt.Sprintf("%s - %s", reg(uint32(i)), reg(uint32(j))))
		} else {
			for k := i; k <= j; k++ {
				regs = append(regs, reg(uint32(k)))
			}
		}

		i = j + 1
	}

	return fmt.Sprintf("{%s}", strings.Join(regs, ","))
}

func decodeSoftwareInterrupt(ins *Instruction, _ WordReader) {
	ins.Class = ClassSoftwareInterrupt
	ins.Mnemonic = "SWI"
	ins.Operands = []string{hex(ins.Word & 0xffffff)}
}

func decodeCoprocessorTransfer(ins *Instruction, _ WordReader) {
	ins.Class = ClassCoprocessorTransfer
	ins.Mnemonic = "CDT"
}

func decodeCoprocessorRegister(ins *Instruction, _ WordReader) {
	ins.Class = ClassCoprocessorRegister
	ins.Mnemonic = "CRT"
}

func decodeCoprocessorOperation(ins *Instruction, _ WordReader) {
	ins.Class = ClassCoprocessorOperation
	ins.Mnemonic = "CDO"
}
