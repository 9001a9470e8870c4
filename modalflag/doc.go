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

// Package modalflag is a wrapper for the pflag package. It provides a
// convenient method of handling program modes (and sub-modes) and allows
// different flags for each mode.
//
// Whereas, with pflag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Non-flag arguments can then be retrieved with the RemainingArgs() or GetArg()
// function.
//
// Program modes are specified with AddSubModes(). The first sub-mode is the
// default and is selected if the first non-flag argument is not one of the
// listed sub-modes. After the call to Parse(), the selected mode is returned
// by the Mode() function. Flags for the selected mode are added after a call
// to NewMode() and then parsed with another call to Parse():
//
//	md.AddSubModes("DEBUG", "DISASM")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "DEBUG":
//		md.NewMode()
//		color := md.AddBool("color", true, "colored output")
//		_, _ = md.Parse()
//	case "DISASM":
//		...
//	}
//
// Sub-mode comparisons are case insensitive. Flags are parsed in the style of
// pflag, so long flags are given with two dashes. Flag parsing stops at the
// first non-flag argument.
package modalflag
