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

package bridge

import (
	"encoding/binary"

	"github.com/jetsetilly/tsibridge/curated"
	"github.com/jetsetilly/tsibridge/logger"
	"github.com/jetsetilly/tsibridge/mailbox"
	"github.com/jetsetilly/tsibridge/memif"
	"github.com/jetsetilly/tsibridge/plusargs"
)

// Sentinal error patterns.
const (
	ErrConfig    = "bridge: %v"
	ErrInitWrite = "bridge: init write (%v): %v"
	ErrBaseReset = "bridge: base reset: %v"
)

// Options for the New() function.
type Options struct {
	// whether the +loadmem argument is allowed
	CanHaveLoadmem bool

	// the name of the shared memory region to attach to. if empty the
	// mailbox.DefaultName is used
	ShmName string

	// if Mailbox is not nil then it is used instead of attaching to a shared
	// memory region. ShmName is ignored
	Mailbox *mailbox.Mailbox
}

// Bridge is the simulation side of the mailbox.
type Bridge struct {
	cfg  plusargs.Config
	host Host
	acc  *Accessor
	mem  *memif.Interface
	ch   *mailbox.Channel
}

// New parses the argument vector and creates a Bridge for the host. An error
// is returned if the arguments are malformed. In that case the simulation
// should not continue.
//
// Failure to attach to the mailbox is not an error. The bridge works normally
// but Idle() will never service a command.
func New(args []string, host Host, opts Options) (*Bridge, error) {
	cfg, err := plusargs.Parse(args, opts.CanHaveLoadmem)
	if err != nil {
		return nil, curated.Errorf(ErrConfig, err)
	}

	b := &Bridge{
		cfg:  cfg,
		host: host,
	}
	b.acc = NewAccessor(host, host, host)

	b.mem, err = memif.New(b.acc, host.ChunkAlign(), host.ChunkMaxSize())
	if err != nil {
		return nil, curated.Errorf(ErrConfig, err)
	}

	if opts.Mailbox != nil {
		b.ch = mailbox.NewChannel(opts.Mailbox, b.mem)
	} else {
		name := opts.ShmName
		if name == "" {
			name = mailbox.DefaultName
		}
		b.ch = mailbox.Open(name, b.mem)
	}

	logger.Logf(logger.Allow, "bridge", "%s ipc=%v", cfg, b.ch.Available())

	return b, nil
}

// Config returns the configuration parsed from the argument vector.
func (b *Bridge) Config() plusargs.Config {
	return b.cfg
}

// Memory returns the memory interface used to service mailbox commands. It
// can be used by the host to load programs.
func (b *Bridge) Memory() *memif.Interface {
	return b.mem
}

// UsingIPCDriver returns true if the bridge is attached to a mailbox.
func (b *Bridge) UsingIPCDriver() bool {
	return b.ch.Available()
}

// ReadChunk reads a single chunk through the path selected by the host's
// loadmem mode flag.
func (b *Bridge) ReadChunk(taddr uint64, dst []byte) error {
	return b.acc.ReadChunk(taddr, dst)
}

// WriteChunk writes a single chunk through the path selected by the host's
// loadmem mode flag.
func (b *Bridge) WriteChunk(taddr uint64, src []byte) error {
	return b.acc.WriteChunk(taddr, src)
}

// Reset applies the init writes in order and then, if configured, the
// host's base reset. Init writes always happen before the base reset.
func (b *Bridge) Reset() error {
	var v [4]byte

	for _, w := range b.cfg.InitWrites {
		binary.LittleEndian.PutUint32(v[:], w.Value)
		err := b.acc.WriteChunk(w.Address, v[:])
		if err != nil {
			return curated.Errorf(ErrInitWrite, w, err)
		}
	}

	if !b.cfg.ResetHart0Interrupt {
		return nil
	}

	err := b.host.Reset()
	if err != nil {
		return curated.Errorf(ErrBaseReset, err)
	}

	return nil
}

// Idle services at most one mailbox command and then yields to the host. It
// never blocks.
func (b *Bridge) Idle() mailbox.Command {
	cmd := b.ch.Poll()
	b.host.SwitchToTarget()
	return cmd
}

// Close detaches from the mailbox.
func (b *Bridge) Close() error {
	return b.ch.Close()
}
