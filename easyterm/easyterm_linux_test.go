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

//go:build linux

package easyterm_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/tsibridge/easyterm"
	"github.com/jetsetilly/tsibridge/test"
	"github.com/pkg/term/termios"
)

func TestPseudoTerminal(t *testing.T) {
	ptm, pts, err := termios.Pty()
	if err != nil {
		t.Skipf("no pseudoterminal: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()

	test.DemandSuccess(t, easyterm.IsTerminal(pts))

	pt, err := easyterm.NewTerminal(pts, pts)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, pt.CBreakMode())
	test.ExpectSuccess(t, pt.Flush())

	// output goes to the slave and is read back from the master
	pt.Print("serviced=%d", 3)
	b := make([]byte, 64)
	n, err := ptm.Read(b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b[:n]), "serviced=3")

	// in cbreak mode a single key is delivered without a newline
	keys := pt.Keys()
	_, err = ptm.Write([]byte{'s'})
	test.DemandSuccess(t, err)

	select {
	case k := <-keys:
		test.ExpectEquality(t, k, byte('s'))
	case <-time.After(time.Second):
		t.Fatalf("no key press received")
	}

	test.ExpectSuccess(t, pt.CanonicalMode())

	// returning to canonical mode a second time does nothing
	test.ExpectSuccess(t, pt.CanonicalMode())
}
