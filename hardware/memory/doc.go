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

// Package memory implements the paged memory of the emulated machine. Memory
// is divided into pages of peripherals.PageSize bytes. Pages can be write
// protected and can have a peripheral device mapped to them.
//
// There are two ways of accessing memory. The bus functions (Read(), Write(),
// Read8() and Write8()) are used by the core during instruction execution.
// They honour write protection and notify mapped devices. The debugging
// functions (Peek(), Poke(), ReadWord() and WriteWord()) are used by the
// debugger. They ignore write protection and never notify devices.
//
// Words are stored little-endian.
package memory
