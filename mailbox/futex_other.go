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

//go:build !linux

package mailbox

import (
	"runtime"
	"sync/atomic"
	"time"
)

// how long to sleep between checks of the futex word
const yieldPeriod = 50 * time.Microsecond

// futexWait without futexes. polls the word until it changes or until the
// timeout expires. a timeout of zero waits indefinitely.
func futexWait(addr *uint32, val uint32, timeout time.Duration) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for atomic.LoadUint32(addr) == val {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		runtime.Gosched()
		time.Sleep(yieldPeriod)
	}
}

// futexWake is not required because waiters are polling.
func futexWake(_ *uint32, _ int) {
}
