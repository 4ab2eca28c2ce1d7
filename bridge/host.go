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

// Transport is the live memory transport provided by the host. Chunks are
// aligned and sized according to the host's Geometry.
type Transport interface {
	ReadChunk(taddr uint64, dst []byte) error
	WriteChunk(taddr uint64, src []byte) error
}

// Backdoor is the direct load path to simulated memory.
type Backdoor interface {
	LoadMemRead(taddr uint64, dst []byte) error
	LoadMemWrite(taddr uint64, src []byte) error
}

// Mode is the host's loadmem mode flag. IsLoadmem() is called for every
// chunk access.
type Mode interface {
	IsLoadmem() bool
}

// Resetter is the host's base reset. For a test chip this includes writing
// the software interrupt pending register of hart 0.
type Resetter interface {
	Reset() error
}

// Yielder is called at the end of every Idle() to hand control back to the
// simulation.
type Yielder interface {
	SwitchToTarget()
}

// Geometry describes the chunks accepted by the live transport.
type Geometry interface {
	ChunkAlign() int
	ChunkMaxSize() int
}

// Host is everything the bridge requires from the simulation host.
type Host interface {
	Transport
	Backdoor
	Mode
	Resetter
	Yielder
	Geometry
}
