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

package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/armv2dbg/curated"
)

// Sentinel errors returned by the Scribe type.
const (
	ScribeActive = "script: scribe: already recording to %s"
	ScribeExists = "script: scribe: file already exists (%s)"
	ScribeError  = "script: scribe: %v"
)

// the prefix for lines that are not commands
const commentLine = "#"

// Scribe records commands to a command script. Output from a command is
// recorded as comment lines after the command.
type Scribe struct {
	file       io.WriteCloser
	scriptfile string

	// the depth of script playback during recording. commands from a script
	// being played back are not recorded
	playbackDepth int

	inputLine  string
	outputLine strings.Builder
}

// IsActive returns true if a recording session is in progress.
func (scr *Scribe) IsActive() bool {
	return scr.file != nil
}

// Filename returns the name of the script being recorded.
func (scr *Scribe) Filename() string {
	return scr.scriptfile
}

// StartSession begins a new recording session. The file must not already
// exist.
func (scr *Scribe) StartSession(scriptfile string) error {
	if scr.IsActive() {
		return curated.Errorf(ScribeActive, scr.scriptfile)
	}

	f, err := os.OpenFile(scriptfile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return curated.Errorf(ScribeExists, scriptfile)
		}
		return curated.Errorf(ScribeError, err)
	}

	scr.file = f
	scr.scriptfile = scriptfile

	return nil
}

// EndSession commits any outstanding lines and closes the script file.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptfile = ""
		scr.playbackDepth = 0
		scr.inputLine = ""
		scr.outputLine.Reset()
	}()

	// close the file even if the commit fails
	err := scr.Commit()

	if errClose := scr.file.Close(); errClose != nil {
		return curated.Errorf(ScribeError, errClose)
	}

	return err
}

// StartPlayback indicates that a script is being played back. Commands from
// the script will not be recorded.
func (scr *Scribe) StartPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	scr.playbackDepth++
}

// EndPlayback indicates that a script has finished playing back.
func (scr *Scribe) EndPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	if scr.playbackDepth > 0 {
		scr.playbackDepth--
	}
}

// Rollback discards the most recent command and its output. Used when a
// command fails.
func (scr *Scribe) Rollback() {
	if !scr.IsActive() {
		return
	}
	scr.inputLine = ""
	scr.outputLine.Reset()
}

// WriteInput records a command. The previous command is committed to the
// script file.
func (scr *Scribe) WriteInput(command string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	_ = scr.Commit()
	if command != "" {
		scr.inputLine = fmt.Sprintf("%s\n", command)
	}
}

// WriteOutput records a line of output for the most recent command.
func (scr *Scribe) WriteOutput(line string) {
	if !scr.IsActive() || scr.playbackDepth > 0 || scr.inputLine == "" {
		return
	}
	scr.outputLine.WriteString(commentLine)
	scr.outputLine.WriteString(" ")
	scr.outputLine.WriteString(line)
	scr.outputLine.WriteString("\n")
}

// Commit writes the most recent command and its output to the script file.
func (scr *Scribe) Commit() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.inputLine = ""
		scr.outputLine.Reset()
	}()

	if scr.inputLine != "" {
		if _, err := io.WriteString(scr.file, scr.inputLine); err != nil {
			return curated.Errorf(ScribeError, err)
		}
	}

	if scr.outputLine.Len() > 0 {
		if _, err := io.WriteString(scr.file, scr.outputLine.String()); err != nil {
			return curated.Errorf(ScribeError, err)
		}
	}

	return nil
}
