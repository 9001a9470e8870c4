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

package core

// Mode is the processor mode.
type Mode int

// List of valid Mode values. The numeric values are the values stored in the
// bottom two bits of the PSR.
const (
	ModeUSR Mode = iota
	ModeFIQ
	ModeIRQ
	ModeSVC
)

func (m Mode) String() string {
	switch m {
	case ModeUSR:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSVC:
		return "SVC"
	}
	return "???"
}

// PSR flag bits.
const (
	FlagN uint32 = 0x80000000
	FlagZ uint32 = 0x40000000
	FlagC uint32 = 0x20000000
	FlagV uint32 = 0x10000000
	FlagI uint32 = 0x08000000
	FlagF uint32 = 0x04000000
)

// PSRString returns a string representation of the flags in the PSR value.
// Upper case letters indicate that the flag is set.
func PSRString(psr uint32) string {
	flags := []struct {
		bit uint32
		set rune
		clr rune
	}{
		{FlagN, 'N', 'n'},
		{FlagZ, 'Z', 'z'},
		{FlagC, 'C', 'c'},
		{FlagV, 'V', 'v'},
		{FlagI, 'I', 'i'},
		{FlagF, 'F', 'f'},
	}

	s := make([]rune, 0, len(flags))
	for _, f := range flags {
		if psr&f.bit == f.bit {
			s = append(s, f.set)
		} else {
			s = append(s, f.clr)
		}
	}
	return string(s)
}
