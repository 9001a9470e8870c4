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

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// repeated requests within this duration cycle through the options of the
// current completion session.
const cycleDuration = 500 * time.Millisecond

// TabCompletion guesses the completion of the last word of an input line.
// The first word is completed from the list of commands. Subsequent words are
// completed from the command's argument list, or from the filesystem if the
// command has been marked as taking a file.
type TabCompletion struct {
	commands  []string
	arguments map[string][]string
	files     map[string]bool

	options    []string
	lastOption int

	// lastGuess is the last string generated and returned by the Complete
	// function. we use it to help decide whether to start a new completion
	// session
	lastGuess string

	lastCompletionTime time.Time
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type. Commands are matched case-insensitively and completed in
// upper case.
func NewTabCompletion(commands []string) *TabCompletion {
	tc := &TabCompletion{
		arguments: make(map[string][]string),
		files:     make(map[string]bool),
	}
	for _, c := range commands {
		tc.commands = append(tc.commands, strings.ToUpper(c))
	}
	sort.Strings(tc.commands)
	return tc
}

// AddArguments specifies the list of possible arguments for a command.
func (tc *TabCompletion) AddArguments(command string, args []string) {
	tc.arguments[strings.ToUpper(command)] = args
}

// AddFileArgument marks the command as taking a filename argument.
func (tc *TabCompletion) AddFileArgument(command string) {
	tc.files[strings.ToUpper(command)] = true
}

// Complete returns the input with the last word completed. If there is no
// completion the input is returned unchanged.
func (tc *TabCompletion) Complete(input string) string {
	// split input into words
	p := strings.Split(input, " ")

	// if input string is the same as the string last returned by this function
	// AND it is within a time duration of 'cycleDuration' then return the next
	// option
	if input == tc.lastGuess && time.Since(tc.lastCompletionTime) < cycleDuration {
		// if there was only one option in the option list then return immediatly
		if len(tc.options) <= 1 {
			return input
		}

		// there is more than one completion option, so shorten the input by
		// one word (getting rid of the trailing space of the last completion
		// effort) and step to next option
		p = p[:len(p)-1]
		tc.lastOption++
		if tc.lastOption >= len(tc.options) {
			tc.lastOption = 0
		}
	} else {
		// this is a new tabcompletion session
		tc.options = tc.options[:0]
		tc.lastOption = 0

		trigger := p[len(p)-1]

		if len(p) == 1 {
			trigger = strings.ToUpper(trigger)
			for _, c := range tc.commands {
				if strings.HasPrefix(c, trigger) {
					tc.options = append(tc.options, c)
				}
			}
		} else {
			cmd := strings.ToUpper(p[0])
			for _, a := range tc.arguments[cmd] {
				if strings.HasPrefix(strings.ToUpper(a), strings.ToUpper(trigger)) {
					tc.options = append(tc.options, a)
				}
			}
			if tc.files[cmd] {
				m, _ := filepath.Glob(trigger + "*")
				tc.options = append(tc.options, m...)
			}
		}

		// no completion options - return input unchanged
		if len(tc.options) == 0 {
			return input
		}
	}

	// change the last word in the supplied input to the chosen option
	p[len(p)-1] = tc.options[tc.lastOption]

	// rejoin all parts of the input along with the altered last word
	tc.lastGuess = strings.Join(p, " ") + " "

	// note current time. we'll use this to help decide whether to cycle
	// through a list of options or to begin a new completion session
	tc.lastCompletionTime = time.Now()

	return tc.lastGuess
}

// Reset ends the current completion session.
func (tc *TabCompletion) Reset() {
	tc.lastGuess = ""
	tc.options = tc.options[:0]
	tc.lastOption = 0
}
