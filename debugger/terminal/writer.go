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
	"bytes"
	"io"
	"sync"
)

// lineWriter sends each complete line written to it to a terminal.
type lineWriter struct {
	crit   sync.Mutex
	output Output
	style  Style
	buf    bytes.Buffer
}

// NewWriter returns an io.Writer that prints each complete line to the
// terminal with the style. Incomplete lines are buffered until the next write
// completes them.
func NewWriter(output Output, style Style) io.Writer {
	return &lineWriter{output: output, style: style}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.crit.Lock()
	defer w.crit.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// put back the incomplete line
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.output.TermPrintLine(w.style, line[:len(line)-1])
	}

	return len(p), nil
}
