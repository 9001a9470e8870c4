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
	"io"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/hardware/core"
)

// Shadow is implemented by types that hold the original word for addresses
// that have been patched. The debugger's breakpoint table is the canonical
// example.
type Shadow interface {
	// Shadowed returns the original word at address and true if the address
	// has been patched
	Shadowed(address uint32) (uint32, bool)
}

// shadowed implements the WordReader interface. Words in the shadow take
// precedence over words in memory.
type shadowed struct {
	mem    WordReader
	shadow Shadow
}

func (r shadowed) ReadWord(address uint32) (uint32, error) {
	if r.shadow != nil {
		if w, ok := r.shadow.Shadowed(address); ok {
			return w, nil
		}
	}
	return r.mem.ReadWord(address)
}

// Sequence is a finite, forward-only sequence of decoded instructions. Create
// a new Sequence with Disassemble() to start again.
type Sequence struct {
	mem    WordReader
	shadow Shadow

	// next address to decode and the end of the range. uint64 so that a range
	// ending at the top of the address space terminates
	addr uint64
	end  uint64

	err error
}

// Disassemble returns a new Sequence of the instructions in the address range
// start to end (exclusive). The start address must be word aligned. The
// shadow argument can be nil.
func Disassemble(mem WordReader, shadow Shadow, start uint32, end uint32) (*Sequence, error) {
	if start&0x03 != 0 {
		return nil, curated.Errorf(core.AlignmentError, start)
	}

	return &Sequence{
		mem:    mem,
		shadow: shadow,
		addr:   uint64(start),
		end:    uint64(end),
	}, nil
}

// Next returns the next instruction in the sequence. Returns false if there
// are no more instructions or if an error has occurred.
func (seq *Sequence) Next() (Instruction, bool) {
	if seq.err != nil || seq.addr >= seq.end {
		return Instruction{}, false
	}

	address := uint32(seq.addr)
	seq.addr += 4

	r := shadowed{mem: seq.mem, shadow: seq.shadow}

	word, err := r.ReadWord(address)
	if err != nil {
		seq.err = err
		return Instruction{}, false
	}

	return Decode(address, word, r), true
}

// Err returns the error that ended the sequence, if any.
func (seq *Sequence) Err() error {
	return seq.err
}

// Write the remaining instructions in the sequence to io.Writer, one
// instruction per line.
func (seq *Sequence) Write(output io.Writer) error {
	for ins, ok := seq.Next(); ok; ins, ok = seq.Next() {
		if _, err := io.WriteString(output, ins.Line()); err != nil {
			return err
		}
		if _, err := io.WriteString(output, "\n"); err != nil {
			return err
		}
	}
	return seq.Err()
}
