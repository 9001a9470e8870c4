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

package terminal

// Sentinel errors. Returned by TermRead() and TermReadKey() if caught whilst
// waiting for input.
const (
	UserInterrupt = "user interrupt"
	UserAbort     = "user abort"
)

// Style is used to indicate the type of information being printed.
type Style int

// List of terminal styles.
const (
	// feedback from the debugger in response to a command
	StyleFeedback Style = iota

	// help text
	StyleHelp

	// disassembly and other code listings
	StyleCode

	// output from the emulated machine
	StyleMachine

	// the user's input being echoed back. terminals that echo input as it is
	// typed can ignore this style
	StyleEcho

	// an error. should be printed even when the terminal is silenced
	StyleError
)

// Key is a single key press returned by TermReadKey(). Printable keys are
// represented by their rune. Cursor keys are represented by the negative
// constants below.
type Key rune

// List of non-printable keys.
const (
	KeyNone      Key = 0
	KeyTab       Key = '\t'
	KeyEnter     Key = '\r'
	KeyInterrupt Key = 3
	KeyUp        Key = -1
	KeyDown      Key = -2
	KeyLeft      Key = -3
	KeyRight     Key = -4
	KeyPageUp    Key = -5
	KeyPageDown  Key = -6
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeyInterrupt:
		return "interrupt"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPageUp:
		return "page up"
	case KeyPageDown:
		return "page down"
	case ' ':
		return "space"
	}
	return string(rune(k))
}

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns a line of input, without the line ending. The prompt
	// is displayed before waiting for input.
	TermRead(prompt Prompt) (string, error)

	// TermReadKey returns a single key press. Implementations that cannot
	// read individual keys may read a line and interpret it as a key.
	TermReadKey() (Key, error)

	// IsInteractive() should return true for implementations that require user
	// interaction. Instances that don't expect user intervention should return
	// false.
	IsInteractive() bool
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all terminal implementations will need to
	// do anything.
	Initialise() error

	// Restore the terminal to it's original state, if possible. for example,
	// we could use this to make sure the terminal is returned to canonical
	// mode. not all terminal implementations will need to do anything.
	CleanUp()

	// Register a tab completion implementation to use with the terminal. Not
	// all implementations need to respond meaningfully to this.
	RegisterTabCompletion(*TabCompletion)

	// Silence all input and output except error messages. In other words,
	// TermPrintLine() should display error messages even if silenced is true.
	Silence(silenced bool)
}
