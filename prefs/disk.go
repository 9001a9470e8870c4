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

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/armv2dbg/curated"
	"gopkg.in/yaml.v2"
)

// WarningBoilerPlate is written to the head of every preferences file.
const WarningBoilerPlate = "# armv2dbg preferences file. edit with care"

// Sentinel errors returned by the Disk type.
const (
	DiskDuplicateKey = "prefs: duplicate key (%s)"
	DiskLoad         = "prefs: load: %v"
	DiskSave         = "prefs: save: %v"
)

// Disk represents preference values as stored on disk. Preferences are added
// to a Disk instance with the Add() function.
type Disk struct {
	path    string
	entries map[string]Pref

	// values from the command line. these take precedence over the values
	// from disk
	overrides map[string]Value

	// entries in the file that have not been added to the Disk instance. they
	// are preserved when the file is saved
	unknown map[string]string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) *Disk {
	return &Disk{
		path:      path,
		entries:   make(map[string]Pref),
		overrides: make(map[string]Value),
		unknown:   make(map[string]string),
	}
}

// Add preference value to list of values to store/load from Disk. If the
// current command line group has a value for the key then that value is set
// immediately.
func (dsk *Disk) Add(key string, p Pref) error {
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DiskDuplicateKey, key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return err
		}
		dsk.overrides[key] = v
	}

	return nil
}

// Keys returns the sorted list of keys that have been added to the Disk.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup the preference value for a key.
func (dsk *Disk) Lookup(key string) (fmt.Stringer, bool) {
	p, ok := dsk.entries[key]
	return p, ok
}

// Set the preference value for a key. The key must have been added to the
// Disk with the Add() function.
func (dsk *Disk) Set(key string, v Value) error {
	p, ok := dsk.entries[key]
	if !ok {
		return fmt.Errorf("prefs: unknown key (%s)", key)
	}
	return p.Set(v)
}

// Load preference values from disk. A missing file is not an error. Command
// line values are re-applied after loading.
func (dsk *Disk) Load() error {
	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return curated.Errorf(DiskLoad, err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return curated.Errorf(DiskLoad, err)
	}

	for k, v := range values {
		p, ok := dsk.entries[k]
		if !ok {
			dsk.unknown[k] = v
			continue
		}
		if err := p.Set(v); err != nil {
			return curated.Errorf(DiskLoad, err)
		}
	}

	for k, v := range dsk.overrides {
		if err := dsk.entries[k].Set(v); err != nil {
			return curated.Errorf(DiskLoad, err)
		}
	}

	return nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	values := make(map[string]string, len(dsk.entries)+len(dsk.unknown))
	for k, v := range dsk.unknown {
		values[k] = v
	}
	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return curated.Errorf(DiskSave, err)
	}

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	s.Write(data)

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o644); err != nil {
		return curated.Errorf(DiskSave, err)
	}

	return nil
}
