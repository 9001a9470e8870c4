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

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/armv2dbg/paths"
	"github.com/jetsetilly/armv2dbg/prefs"
)

// name of the preferences file in the resource directory.
const prefsFile = "preferences"

// Preferences defines and collates all the preference values used by the
// debugger.
type Preferences struct {
	dsk *prefs.Disk

	// size of the core's memory in bytes
	MemSize prefs.Int

	// use colour in the terminal
	Color prefs.Bool

	// number of instructions in each cycle of the CONTINUE command
	Steps prefs.Int

	// number of lines in the code and memory views
	CodeLines prefs.Int
	MemLines  prefs.Int
}

func (p *Preferences) String() string {
	s := strings.Builder{}
	for _, k := range p.dsk.Keys() {
		v, _ := p.dsk.Lookup(k)
		s.WriteString(fmt.Sprintf("%s: %s\n", k, v))
	}
	return s.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile creates a Preferences instance that is loaded from and
// saved to the named file.
func NewPreferencesFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	// defaults
	p.MemSize.Set(1 << 16)
	p.Color.Set(true)
	p.Steps.Set(DefaultCycle)
	p.CodeLines.Set(16)
	p.MemLines.Set(8)

	// the hooks are added after the defaults have been set
	positive := func(v prefs.Value) error {
		if n, ok := v.(int); ok && n <= 0 {
			return fmt.Errorf("preferences: value must be positive (%d)", n)
		}
		return nil
	}
	p.MemSize.SetHookPre(positive)
	p.Steps.SetHookPre(positive)
	p.CodeLines.SetHookPre(positive)
	p.MemLines.SetHookPre(positive)

	p.dsk = prefs.NewDisk(pth)

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{key: "debugger.memsize", p: &p.MemSize},
		{key: "debugger.color", p: &p.Color},
		{key: "debugger.steps", p: &p.Steps},
		{key: "debugger.codelines", p: &p.CodeLines},
		{key: "debugger.memlines", p: &p.MemLines},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// Keys returns the list of preference keys.
func (p *Preferences) Keys() []string {
	return p.dsk.Keys()
}

// Set the preference value for the key.
func (p *Preferences) Set(key string, value string) error {
	return p.dsk.Set(key, value)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
