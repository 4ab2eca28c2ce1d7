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
	"time"

	"github.com/jetsetilly/tsibridge/curated"
)

// Sentinal error patterns.
const (
	ErrTimeout      = "mailbox: %s %#x: timed out waiting for consumer"
	ErrBusy         = "mailbox: command already pending (%s)"
	ErrFailed       = "mailbox: %s %#x: consumer reported failure"
	ErrNoConsumer   = "mailbox: no consumer after %v"
	ErrDriverClosed = "mailbox: driver is closed"
)

// DefaultTimeout is the default value for Driver.Timeout.
const DefaultTimeout = 5 * time.Second

// Driver is the producer side of the mailbox. Only one Driver should be
// posting to a mailbox at any one time.
type Driver struct {
	mb *Mailbox

	// how long to wait for the consumer to service a single command
	Timeout time.Duration
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(mb *Mailbox) *Driver {
	return &Driver{
		mb:      mb,
		Timeout: DefaultTimeout,
	}
}

// WaitForConsumer blocks until a consumer has signalled the mailbox at least
// once. Consumers signal when they attach so this can be used to wait for
// the simulation to start.
func (drv *Driver) WaitForConsumer(timeout time.Duration) error {
	if drv.mb == nil {
		return curated.Errorf(ErrDriverClosed)
	}

	drv.mb.Lock()
	defer drv.mb.Unlock()

	deadline := time.Now().Add(timeout)
	for drv.mb.Sequence() == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return curated.Errorf(ErrNoConsumer, timeout)
		}
		drv.mb.Wait(remaining)
	}

	return nil
}

// Read size bytes starting at addr. Reads larger than DataSize are split
// into several commands.
func (drv *Driver) Read(addr uint64, size int) ([]byte, error) {
	data := make([]byte, size)
	for n := 0; n < size; n += DataSize {
		end := n + DataSize
		if end > size {
			end = size
		}
		err := drv.post(Read, addr+uint64(n), data[n:end])
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Write data starting at addr. Writes larger than DataSize are split into
// several commands.
func (drv *Driver) Write(addr uint64, data []byte) error {
	for n := 0; n < len(data); n += DataSize {
		end := n + DataSize
		if end > len(data) {
			end = len(data)
		}
		err := drv.post(Write, addr+uint64(n), data[n:end])
		if err != nil {
			return err
		}
	}
	return nil
}

// post a single command and wait for the consumer to clear it. p is the data
// to write or the buffer to read into and must be no larger than DataSize.
func (drv *Driver) post(cmd Command, addr uint64, p []byte) error {
	if drv.mb == nil {
		return curated.Errorf(ErrDriverClosed)
	}

	drv.mb.Lock()
	defer drv.mb.Unlock()

	if c := drv.mb.Command(); c == Read || c == Write {
		return curated.Errorf(ErrBusy, c)
	}

	drv.mb.SetAddress(addr)
	drv.mb.SetSize(uint32(len(p)))
	drv.mb.SetStatus(StatusOK)
	if cmd == Write {
		copy(drv.mb.Data(), p)
	}
	drv.mb.SetCommand(cmd)

	deadline := time.Now().Add(drv.Timeout)
	for drv.mb.Command() != None {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			// withdraw the command. we hold the lock so the consumer cannot
			// be part way through servicing it
			drv.mb.SetCommand(None)
			return curated.Errorf(ErrTimeout, cmd, addr)
		}
		drv.mb.Wait(remaining)
	}

	if drv.mb.Status() != StatusOK {
		return curated.Errorf(ErrFailed, cmd, addr)
	}

	if cmd == Read {
		copy(p, drv.mb.Data()[:len(p)])
	}

	return nil
}

// Close detaches the driver from the mailbox. The region is not removed,
// that is done with the Remove() function.
func (drv *Driver) Close() error {
	if drv.mb == nil {
		return nil
	}
	err := drv.mb.Detach()
	drv.mb = nil
	return err
}
