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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created by the
// Errorf() function with a specific pattern. The pattern is how curated
// errors are told apart. For example:
//
//	e := curated.Errorf(hardware.AlignmentError, 0x1001)
//
//	if curated.Is(e, hardware.AlignmentError) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf(hardware.AlignmentError, 0x1001)
//	f := curated.Errorf("debugger: %v", e)
//
//	if curated.Has(f, hardware.AlignmentError) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. We can think of the difference as being
// 'expected' and 'unexpected' errors.
//
// The Error() function normalises the error chain. Specifically, the chain
// does not contain duplicate adjacent parts. Chains are thought of as being
// composed of parts separated by the sub-string ": ". For example, wrapping
// "breakpoint: no breakpoint at 0x00000010" with "breakpoint: %v" results in
// the message:
//
//	breakpoint: no breakpoint at 0x00000010
//
// and not:
//
//	breakpoint: breakpoint: no breakpoint at 0x00000010
//
// Sentinal patterns should be stored as const strings in the package that
// raises them, suitably named and commented.
package curated
