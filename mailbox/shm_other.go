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

//go:build !linux

package mailbox

import (
	"runtime"

	"github.com/jetsetilly/tsibridge/curated"
)

// Sentinal error patterns.
const (
	ErrAttach = "mailbox: cannot attach to %s: %v"
	ErrCreate = "mailbox: cannot create %s: %v"
	ErrRemove = "mailbox: cannot remove %s: %v"
)

const errUnsupported = "shared memory mailbox not supported on %s"

// Attach is not supported on this platform. The consumer will run without a
// producer.
func Attach(name string) (*Mailbox, error) {
	return nil, curated.Errorf(ErrAttach, name, curated.Errorf(errUnsupported, runtime.GOOS))
}

// Create is not supported on this platform.
func Create(name string) (*Mailbox, error) {
	return nil, curated.Errorf(ErrCreate, name, curated.Errorf(errUnsupported, runtime.GOOS))
}

// Remove is not supported on this platform.
func Remove(name string) error {
	return curated.Errorf(ErrRemove, name, curated.Errorf(errUnsupported, runtime.GOOS))
}
