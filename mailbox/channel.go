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

import (
	"github.com/jetsetilly/tsibridge/logger"
)

// Memory is used by the Channel to service commands. The length of the slice
// is the number of bytes to transfer.
type Memory interface {
	Read(addr uint64, p []byte) error
	Write(addr uint64, p []byte) error
}

// Channel is the consumer side of the mailbox.
type Channel struct {
	mb  *Mailbox
	mem Memory

	// whether a mailbox was attached when the channel was created. never
	// changes after construction
	usingIPCDriver bool

	// the mailbox has been detached by Close()
	closed bool
}

// NewChannel creates a consumer for the mailbox. If mb is nil then the
// channel is inert: Poll() will never service a command.
//
// A producer may be waiting for the consumer to appear. For this reason the
// condition is signalled once during construction.
func NewChannel(mb *Mailbox, mem Memory) *Channel {
	ch := &Channel{
		mb:             mb,
		mem:            mem,
		usingIPCDriver: mb != nil,
	}

	if ch.usingIPCDriver {
		mb.Lock()
		mb.Signal()
		mb.Unlock()
	}

	return ch
}

// Open attaches to the named shared memory region and creates a Channel for
// it. Failure to attach is not an error. The failure is logged and the
// returned Channel is inert.
func Open(name string, mem Memory) *Channel {
	mb, err := Attach(name)
	if err != nil {
		logger.Logf(logger.Allow, "mailbox", "no ipc driver: %v", err)
		return NewChannel(nil, mem)
	}
	logger.Logf(logger.Allow, "mailbox", "attached to %s", name)
	return NewChannel(mb, mem)
}

// Available returns true if the channel is attached to a mailbox.
func (ch *Channel) Available() bool {
	return ch.usingIPCDriver
}

// Poll services at most one pending command. It never blocks. If the lock is
// held by the producer then the mailbox is left untouched and Poll() returns
// None. Returns the command that was serviced.
func (ch *Channel) Poll() Command {
	if !ch.usingIPCDriver || ch.closed {
		return None
	}

	if !ch.mb.TryLock() {
		return None
	}
	defer ch.mb.Unlock()

	cmd := ch.mb.Command()

	switch cmd {
	case Read:
		ch.mb.SetCommand(None)
		ch.service(cmd, ch.mem.Read)
		ch.mb.Signal()
	case Write:
		ch.mb.SetCommand(None)
		ch.service(cmd, ch.mem.Write)
		ch.mb.Signal()
	default:
		return None
	}

	return cmd
}

// service the command with the memory function. the status field is updated
// with the result
func (ch *Channel) service(cmd Command, f func(uint64, []byte) error) {
	addr := ch.mb.Address()
	size := ch.mb.Size()

	if size > DataSize {
		logger.Logf(logger.Allow, "mailbox", "%s %#x: size too large (%d)", cmd, addr, size)
		ch.mb.SetStatus(StatusFailed)
		return
	}

	err := f(addr, ch.mb.Data()[:size])
	if err != nil {
		logger.Logf(logger.Allow, "mailbox", "%s %#x: %v", cmd, addr, err)
		ch.mb.SetStatus(StatusFailed)
		return
	}

	ch.mb.SetStatus(StatusOK)
}

// Close detaches from the mailbox. The shared memory region is not removed.
// The channel is inert after Close().
func (ch *Channel) Close() error {
	if !ch.usingIPCDriver || ch.closed {
		return nil
	}
	ch.closed = true
	return ch.mb.Detach()
}
