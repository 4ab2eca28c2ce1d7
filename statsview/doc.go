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

// Package statsview serves runtime statistics of the bridge process over
// HTTP. The server is only compiled in when the statsview build tag is
// present. Without the tag Available() returns false and Launch() does
// nothing.
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12680/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12680/debug/pprof/
//
// Statistics include goroutine count and heap use, which are useful when
// watching a long simulation that is servicing a busy mailbox.
package statsview

// Address of the statistics server.
const Address = "localhost:12680"
