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

// Package mailbox implements the shared memory command channel between an
// external producer process and the simulation. The producer posts a single
// READ or WRITE command into the mailbox and the simulation services it the
// next time it is idle.
//
// The mailbox is a fixed layout region. Offsets are in bytes and all fields
// are little-endian:
//
//	0   lock      uint32     futex word. 0 free, 1 held, 2 held with waiters
//	4   cond      uint32     futex sequence word. incremented on every Signal()
//	8   command   uint32     None, Read or Write
//	12  status    uint32     StatusOK or StatusFailed, set when serviced
//	16  address   uint64
//	24  size      uint32     number of bytes in data
//	28  reserved  uint32
//	32  data      [DataSize]byte
//
// The lock and condition are implemented on the lock and cond words with
// futexes on Linux, so they work across processes that map the same region.
// On other platforms waiting degrades to a yielding loop.
//
// There are two sides to the mailbox. The consumer side is the Channel type.
// It attaches to an existing region and never blocks when servicing a
// command: Poll() only ever tries the lock. A Channel that fails to attach is
// permanently inert, which is how the simulation behaves when no producer is
// present.
//
// The producer side is the Driver type. The producer owns the region: it
// creates it with Create() and removes it with Remove(). Driver requests
// block until the consumer has serviced the command or until a timeout.
package mailbox
