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

// Package views implements the interactive surface of the debugger. There are
// four views: code, state, memory and help. Each view renders itself to an
// io.Writer and responds to individual key presses.
//
// The views interact with the debugger through the Debugger interface. Keys
// that run the emulation, for example 's' in the code view, queue an Action
// with the debugger and return the Resume control value. It is then up to the
// debugger to perform the action before rendering the views again.
package views
