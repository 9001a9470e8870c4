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

// Package prefs facilitates the storage of preferential values in the
// debugger. Preferences are typed values (Bool, Int and String) that can be
// registered with a Disk instance and loaded from or saved to a YAML file.
//
// Preference values can also be specified on the command line. The command
// line stack is a list of key/value groups, each group given in the form:
//
//	key::value; key::value
//
// Values in the top group of the stack take precedence over values loaded from
// disk.
package prefs
