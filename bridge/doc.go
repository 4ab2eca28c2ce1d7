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

// Package bridge connects a simulation host to an external producer through
// the mailbox package. It is the simulation side of the test chip's serial
// interface.
//
// The host supplies the memory transports and the base reset through the
// Host interface. There are two memory transports:
//
//	live transport: the normal path through the simulated serial interface.
//	valid at any time but slow.
//
//	backdoor: direct access to simulated memory with no interaction with the
//	running design. intended for loading programs before execution starts.
//
// The Accessor type selects between the two for every chunk, according to
// the host's loadmem mode flag at the time of the access.
//
// The Bridge type is created once, when the simulation starts. It parses the
// simulator arguments (see the plusargs package), attaches to the mailbox and
// provides:
//
//	Reset() to be called once before the simulation runs. Applies the
//	+init_write arguments and then, unless +no_hart0_msip was given, the
//	host's base reset.
//
//	Idle() to be called by the host whenever it has nothing else to do.
//	Services at most one mailbox command and then yields to the host.
package bridge
