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

// Package memif converts byte-addressed memory requests of any length into a
// sequence of chunk requests that a memory transport can service. A chunk is
// aligned to the transport's alignment and is no larger than the transport's
// maximum chunk size.
//
// Requests that start or end part way through an aligned chunk are serviced
// by reading the whole chunk. For writes the chunk is then modified and
// written back. Bytes outside of the requested region are therefore read
// and rewritten with their existing value.
package memif

import (
	"encoding/binary"

	"github.com/jetsetilly/tsibridge/curated"
)

// Sentinal error patterns.
const (
	ErrGeometry = "memif: invalid chunk geometry (align %d, max size %d)"
	ErrChunk    = "memif: %v"
)

// ChunkBus is implemented by a memory transport that can read and write
// aligned chunks. The length of the slice is the number of bytes in the
// chunk.
type ChunkBus interface {
	ReadChunk(taddr uint64, dst []byte) error
	WriteChunk(taddr uint64, src []byte) error
}

// Interface splits memory requests into chunk requests on a ChunkBus.
type Interface struct {
	bus     ChunkBus
	align   uint64
	maxSize uint64
}

// New is the preferred method of initialisation for the Interface type. The
// align value must be a power of two and maxSize must be a non-zero multiple
// of align.
func New(bus ChunkBus, align int, maxSize int) (*Interface, error) {
	if align <= 0 || align&(align-1) != 0 || maxSize <= 0 || maxSize%align != 0 {
		return nil, curated.Errorf(ErrGeometry, align, maxSize)
	}
	return &Interface{
		bus:     bus,
		align:   uint64(align),
		maxSize: uint64(maxSize),
	}, nil
}

// split returns the start of the aligned chunk containing addr, the offset of
// addr into that chunk and the number of bytes that can be transferred as
// whole chunks.
func (mi *Interface) split(addr uint64, n int) (base uint64, off uint64, whole uint64) {
	base = addr &^ (mi.align - 1)
	off = addr - base
	if off != 0 {
		return base, off, 0
	}
	whole = uint64(n) &^ (mi.align - 1)
	if whole > mi.maxSize {
		whole = mi.maxSize
	}
	return base, off, whole
}

// Read len(p) bytes from addr into p.
func (mi *Interface) Read(addr uint64, p []byte) error {
	var chunk []byte

	for len(p) > 0 {
		base, off, whole := mi.split(addr, len(p))

		if whole > 0 {
			err := mi.bus.ReadChunk(addr, p[:whole])
			if err != nil {
				return curated.Errorf(ErrChunk, err)
			}
			p = p[whole:]
			addr += whole
			continue
		}

		// partial chunk
		if chunk == nil {
			chunk = make([]byte, mi.align)
		}
		err := mi.bus.ReadChunk(base, chunk)
		if err != nil {
			return curated.Errorf(ErrChunk, err)
		}
		n := copy(p, chunk[off:])
		p = p[n:]
		addr += uint64(n)
	}

	return nil
}

// Write len(p) bytes from p to addr.
func (mi *Interface) Write(addr uint64, p []byte) error {
	var chunk []byte

	for len(p) > 0 {
		base, off, whole := mi.split(addr, len(p))

		if whole > 0 {
			err := mi.bus.WriteChunk(addr, p[:whole])
			if err != nil {
				return curated.Errorf(ErrChunk, err)
			}
			p = p[whole:]
			addr += whole
			continue
		}

		// partial chunk. read-modify-write
		if chunk == nil {
			chunk = make([]byte, mi.align)
		}
		err := mi.bus.ReadChunk(base, chunk)
		if err != nil {
			return curated.Errorf(ErrChunk, err)
		}
		n := copy(chunk[off:], p)
		err = mi.bus.WriteChunk(base, chunk)
		if err != nil {
			return curated.Errorf(ErrChunk, err)
		}
		p = p[n:]
		addr += uint64(n)
	}

	return nil
}

// Read32 reads a little-endian 32bit value from addr.
func (mi *Interface) Read32(addr uint64) (uint32, error) {
	var b [4]byte
	err := mi.Read(addr, b[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Write32 writes a little-endian 32bit value to addr.
func (mi *Interface) Write32(addr uint64, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return mi.Write(addr, b[:])
}
