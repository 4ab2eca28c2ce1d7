// This file is part of tsibridge.
//
// tsibridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tsibridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tsibridge.  If not, see <https://www.gnu.org/licenses/>.

// Package easyterm is a small wrapper for "github.com/pkg/term/termios". It
// is used by the RUN mode to read single key presses from the controlling
// terminal while the simulation is running.
package easyterm

import (
	"fmt"
	"os"
	"sync"

	"github.com/jetsetilly/tsibridge/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Sentinal error patterns.
const (
	ErrNotTerminal = "easyterm: %s is not a terminal"
	ErrTermios     = "easyterm: %v"
)

// Terminal manages the mode of an input terminal.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	mu     sync.Mutex
	cbreak bool
}

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input file must be a terminal.
func NewTerminal(input, output *os.File) (*Terminal, error) {
	if !IsTerminal(input) {
		name := "input"
		if input != nil {
			name = input.Name()
		}
		return nil, curated.Errorf(ErrNotTerminal, name)
	}

	pt := &Terminal{
		input:  input,
		output: output,
	}

	err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr)
	if err != nil {
		return nil, curated.Errorf(ErrTermios, err)
	}

	// cbreak mode is the canonical mode with line buffering and echo turned
	// off. signals are still generated
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return pt, nil
}

// CBreakMode puts the terminal into cbreak mode.
func (pt *Terminal) CBreakMode() error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	err := termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
	if err != nil {
		return curated.Errorf(ErrTermios, err)
	}
	pt.cbreak = true
	return nil
}

// CanonicalMode returns the terminal to the mode it was in when NewTerminal()
// was called.
func (pt *Terminal) CanonicalMode() error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.cbreak {
		return nil
	}

	err := termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
	if err != nil {
		return curated.Errorf(ErrTermios, err)
	}
	pt.cbreak = false
	return nil
}

// Flush discards pending input and output.
func (pt *Terminal) Flush() error {
	if err := termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH); err != nil {
		return curated.Errorf(ErrTermios, err)
	}
	if pt.output != nil && IsTerminal(pt.output) {
		if err := termios.Tcflush(pt.output.Fd(), termios.TCOFLUSH); err != nil {
			return curated.Errorf(ErrTermios, err)
		}
	}
	return nil
}

// Keys returns a channel of key presses read from the terminal. The channel
// is closed when input ends. The terminal should be in cbreak mode.
func (pt *Terminal) Keys() <-chan byte {
	keys := make(chan byte)
	go func() {
		defer close(keys)
		var b [1]byte
		for {
			n, err := pt.input.Read(b[:])
			if err != nil {
				return
			}
			if n == 1 {
				keys <- b[0]
			}
		}
	}()
	return keys
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...interface{}) {
	if pt.output == nil {
		return
	}
	s = fmt.Sprintf(s, a...)
	pt.output.WriteString(s)
}
