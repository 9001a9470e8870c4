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

package modalflag

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const modeSeparator = "/"

// Modes provides an easy way of handling command line arguments. The Output
// field should be specified before calling Parse() or you will not see any
// help messages.
type Modes struct {
	// where to print output (help messages etc).
	Output io.Writer

	// whether Parse() has been called recently
	parsed bool

	// a new flagset is created on every call to NewArgs() and NewMode()
	flags *pflag.FlagSet

	// the arguments still to be parsed
	args []string

	// the most recent list of sub-modes specified with the AddSubModes()
	// function
	subModes []string

	// path is the series of sub-modes that have been found during subsequent
	// calls to Parse(). never reset
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args

	// by definition, a newly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a new
// mode.
func (md *Modes) NewMode() {
	md.subModes = []string{}
	md.flags = pflag.NewFlagSet("", pflag.ContinueOnError)
	md.flags.SetInterspersed(false)
	md.flags.Usage = func() {}
	md.flags.SetOutput(io.Discard)
	md.parsed = false
}

// AdditionalHelp allows you to add extensive help text to be displayed in
// addition to the regular help on available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns false if Parse() has not yet been called since either a call
// to NewArgs() or NewMode(). Note that, a Modes struct is considered to be
// Parsed() even if Parse() results in an error.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// Continue with command line processing. If sub-modes were specified then
	// the Mode() function should be checked.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// an error has occurred and is returned as the second return value.
	ParseError
)

// Parse the top level layer of arguments. The idiomatic usage is as follows:
//
//	p, err := md.Parse()
//	switch p {
//	case ParseHelp:
//		// help message has already been printed
//		return
//	case ParseError:
//		printError(err)
//		return
//	}
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	err := md.flags.Parse(md.args)
	if err != nil {
		if err == pflag.ErrHelp {
			md.help()
			return ParseHelp, nil
		}

		// flags have been set that are not recognised. if sub-modes have been
		// defined, select the default mode and leave the arguments for the
		// next call to Parse(). otherwise return error
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0])
			return ParseContinue, nil
		}
		return ParseError, err
	}

	remaining := md.flags.Args()

	if len(md.subModes) > 0 {
		// the default mode is selected unless the first non-flag argument is
		// one of the sub-modes
		mode := md.subModes[0]
		if len(remaining) > 0 {
			arg := strings.ToUpper(remaining[0])
			for i := range md.subModes {
				if md.subModes[i] == arg {
					mode = arg
					remaining = remaining[1:]
					break // for loop
				}
			}
		}
		md.path = append(md.path, mode)
	}

	md.args = remaining

	return ParseContinue, nil
}

func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	usages := md.flags.FlagUsages()

	if usages == "" && len(md.subModes) == 0 {
		io.WriteString(md.Output, "No help available")
		if md.Path() != "" {
			io.WriteString(md.Output, fmt.Sprintf(" for %s", md.Path()))
		}
		io.WriteString(md.Output, "\n")
		return
	}

	if md.Path() != "" {
		io.WriteString(md.Output, fmt.Sprintf("Usage for %s mode:\n", md.Path()))
	} else {
		io.WriteString(md.Output, "Usage:\n")
	}

	io.WriteString(md.Output, usages)

	if len(md.subModes) > 0 {
		if usages != "" {
			io.WriteString(md.Output, "\n")
		}
		io.WriteString(md.Output, fmt.Sprintf("  available sub-modes: %s\n", strings.Join(md.subModes, ", ")))
		io.WriteString(md.Output, fmt.Sprintf("    default: %s\n", md.subModes[0]))
	}

	if md.additionalHelp != "" {
		io.WriteString(md.Output, "\n")
		io.WriteString(md.Output, md.additionalHelp)
		io.WriteString(md.Output, "\n")
	}
}

// RemainingArgs after a call to Parse() ie. arguments that aren't flags or a
// listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
// Returns the empty string if the argument does not exist.
func (md *Modes) GetArg(i int) string {
	if i < 0 || i >= len(md.args) {
		return ""
	}
	return md.args[i]
}

// AddSubModes to list of submodes for next parse. The first sub-mode in the
// list is considered to be the default sub-mode.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// AddDefaultSubMode to list of sub-modes.
func (md *Modes) AddDefaultSubMode(defSubMode string) {
	md.subModes = append([]string{strings.ToUpper(defSubMode)}, md.subModes...)
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddUint32 flag for next call to Parse(). The value can be given in
// hexadecimal with a 0x prefix.
func (md *Modes) AddUint32(name string, value uint32, usage string) *uint32 {
	v := value
	md.flags.Var((*hexValue)(&v), name, usage)
	return &v
}

// Visit visits the flags in lexicographical order, calling fn for each. It
// visits only those flags that have been set.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *pflag.Flag) {
		fn(f.Name)
	})
}
