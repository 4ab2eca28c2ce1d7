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
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/jetsetilly/tsibridge/curated"
)

// Sentinal error patterns.
const (
	ErrRegionSize      = "mailbox: region too small (%d bytes, need %d)"
	ErrRegionAlignment = "mailbox: region is not 8 byte aligned"
)

// Mailbox gives access to a mailbox region. The region may be shared memory
// (see Attach() and Create()) or process memory (see NewLocal()).
//
// The field accessors must only be called while the lock is held.
type Mailbox struct {
	// the memory backing the mailbox. keeping the slice keeps the memory
	// alive in the case of a local mailbox
	region []byte
	l      *layout

	// called by Detach(). nil for local mailboxes
	unmap func() error
}

// NewRegion creates a Mailbox over an existing slice of bytes. The slice must
// be at least Size bytes and 8 byte aligned.
func NewRegion(region []byte) (*Mailbox, error) {
	if len(region) < Size {
		return nil, curated.Errorf(ErrRegionSize, len(region), Size)
	}
	if uintptr(unsafe.Pointer(&region[0]))%8 != 0 {
		return nil, curated.Errorf(ErrRegionAlignment)
	}
	return &Mailbox{
		region: region,
		l:      (*layout)(unsafe.Pointer(&region[0])),
	}, nil
}

// NewLocal creates a Mailbox in process memory. The region is zeroed.
func NewLocal() *Mailbox {
	// allocating as uint64 guarantees alignment
	words := make([]uint64, (Size+7)/8)
	region := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*8)
	mb, err := NewRegion(region)
	if err != nil {
		panic(err)
	}
	return mb
}

// Detach releases the mapping of a shared region. The region itself is not
// removed. The Mailbox must not be used after Detach().
func (mb *Mailbox) Detach() error {
	if mb.unmap == nil {
		return nil
	}
	err := mb.unmap()
	mb.unmap = nil
	mb.l = nil
	mb.region = nil
	return err
}

// TryLock attempts to acquire the lock without blocking. Returns true if the
// lock was acquired.
func (mb *Mailbox) TryLock() bool {
	return atomic.CompareAndSwapUint32(&mb.l.lock, unlocked, locked)
}

// Lock acquires the lock, blocking until it is available.
func (mb *Mailbox) Lock() {
	if atomic.CompareAndSwapUint32(&mb.l.lock, unlocked, locked) {
		return
	}
	for atomic.SwapUint32(&mb.l.lock, contended) != unlocked {
		futexWait(&mb.l.lock, contended, 0)
	}
}

// Unlock releases the lock.
func (mb *Mailbox) Unlock() {
	if atomic.SwapUint32(&mb.l.lock, unlocked) == contended {
		futexWake(&mb.l.lock, 1)
	}
}

// Signal wakes one waiter on the condition.
func (mb *Mailbox) Signal() {
	atomic.AddUint32(&mb.l.cond, 1)
	futexWake(&mb.l.cond, 1)
}

// Wait releases the lock and waits for the condition to be signalled or for
// the timeout to expire. The lock is held again when Wait() returns. Spurious
// wakeups are possible so callers should check their condition in a loop.
//
// A timeout of zero waits indefinitely.
func (mb *Mailbox) Wait(timeout time.Duration) {
	seq := atomic.LoadUint32(&mb.l.cond)
	mb.Unlock()
	futexWait(&mb.l.cond, seq, timeout)
	mb.Lock()
}

// Sequence returns the number of times the condition has been signalled
// since the region was created.
func (mb *Mailbox) Sequence() uint32 {
	return atomic.LoadUint32(&mb.l.cond)
}

// Command returns the raw command value. Values other than Read and Write
// should be treated as None.
func (mb *Mailbox) Command() Command {
	return Command(atomic.LoadUint32(&mb.l.command))
}

// SetCommand sets the command field.
func (mb *Mailbox) SetCommand(cmd Command) {
	atomic.StoreUint32(&mb.l.command, uint32(cmd))
}

// Status returns the status field.
func (mb *Mailbox) Status() Status {
	return Status(mb.l.status)
}

// SetStatus sets the status field.
func (mb *Mailbox) SetStatus(s Status) {
	mb.l.status = uint32(s)
}

// Address returns the address field.
func (mb *Mailbox) Address() uint64 {
	return mb.l.address
}

// SetAddress sets the address field.
func (mb *Mailbox) SetAddress(addr uint64) {
	mb.l.address = addr
}

// Size returns the size field. The value may be larger than DataSize if the
// producer is misbehaving.
func (mb *Mailbox) Size() uint32 {
	return mb.l.size
}

// SetSize sets the size field.
func (mb *Mailbox) SetSize(size uint32) {
	mb.l.size = size
}

// Data returns the full data buffer. Changes to the returned slice are
// changes to the mailbox.
func (mb *Mailbox) Data() []byte {
	return mb.l.data[:]
}
