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

// Accessor routes chunk requests to either the backdoor or the live
// transport. Both paths address the same bytes: [taddr, taddr+len).
//
// Callers should not assume that both paths have the same timing. The
// backdoor does not interact with instructions in flight while the live
// transport does.
type Accessor struct {
	live     Transport
	backdoor Backdoor
	mode     Mode
}

// NewAccessor is the preferred method of initialisation for the Accessor type.
func NewAccessor(live Transport, backdoor Backdoor, mode Mode) *Accessor {
	return &Accessor{
		live:     live,
		backdoor: backdoor,
		mode:     mode,
	}
}

// ReadChunk implements the memif.ChunkBus interface.
func (acc *Accessor) ReadChunk(taddr uint64, dst []byte) error {
	if acc.mode.IsLoadmem() {
		return acc.backdoor.LoadMemRead(taddr, dst)
	}
	return acc.live.ReadChunk(taddr, dst)
}

// WriteChunk implements the memif.ChunkBus interface.
func (acc *Accessor) WriteChunk(taddr uint64, src []byte) error {
	if acc.mode.IsLoadmem() {
		return acc.backdoor.LoadMemWrite(taddr, src)
	}
	return acc.live.WriteChunk(taddr, src)
}
