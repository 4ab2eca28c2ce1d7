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

package mailbox

import "unsafe"

// DataSize is the size of the data buffer in the mailbox. It is the largest
// transfer a single command can service.
const DataSize = 4096

// DefaultName is the name of the shared memory segment used by the producer
// and consumer if no other name is specified.
const DefaultName = "vortex_shared_memory"

// Command is the value of the command field in the mailbox.
type Command uint32

// List of valid Command values. Any other value found in the mailbox is
// treated as None.
const (
	None Command = iota
	Read
	Write
)

func (cmd Command) String() string {
	switch cmd {
	case None:
		return "NONE"
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	}
	return "undefined"
}

// Status is the value of the status field in the mailbox.
type Status uint32

// List of valid Status values.
const (
	StatusOK Status = iota
	StatusFailed
)

// values of the lock word
const (
	unlocked uint32 = iota
	locked
	contended
)

// layout of the shared region. field order and sizes must match the table
// in the package documentation
type layout struct {
	lock     uint32
	cond     uint32
	command  uint32
	status   uint32
	address  uint64
	size     uint32
	reserved uint32
	data     [DataSize]byte
}

// Size is the number of bytes required by the mailbox region.
const Size = int(unsafe.Sizeof(layout{}))
