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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/tsibridge/bridge"
	"github.com/jetsetilly/tsibridge/mailbox"
	"github.com/jetsetilly/tsibridge/target"
	"github.com/jetsetilly/tsibridge/test"
)

// TestDriveMode runs a bridge attached to a real shared memory segment and
// drives it through the DRIVE mode
func TestDriveMode(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skip("no /dev/shm")
	}

	name := fmt.Sprintf("tsibridge_drive_%d_%d", os.Getpid(), time.Now().UnixNano())

	pmb, err := mailbox.Create(name)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, pmb.Detach())

	tgt, err := target.NewTarget(0x10000)
	test.DemandSuccess(t, err)

	b, err := bridge.New([]string{"sim", "+no_hart0_msip"}, tgt, bridge.Options{ShmName: name})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.UsingIPCDriver())

	done := make(chan bool)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			b.Idle()
			time.Sleep(10 * time.Microsecond)
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
		_ = b.Close()
	}()

	tw := &test.CompareWriter{}
	code := dispatch(newSync(t), []string{"DRIVE", "-shm", name, "WRITE", "0x80000010", "0xdeadbeef01"}, tw)
	test.ExpectEquality(t, code, 0, tw.String())

	tw.Clear()
	code = dispatch(newSync(t), []string{"DRIVE", "-shm", name, "READ", "0x80000010", "5"}, tw)
	test.ExpectEquality(t, code, 0, tw.String())
	test.ExpectSuccess(t, strings.Contains(tw.String(), "de ad be ef 01"), tw.String())

	lua := filepath.Join(t.TempDir(), "check.lua")
	test.DemandSuccess(t, os.WriteFile(lua, []byte(`assert(read32(0x80000010) == 0xefbeadde)`), 0o600))

	tw.Clear()
	code = dispatch(newSync(t), []string{"DRIVE", "-shm", name, "-remove", "SCRIPT", lua}, tw)
	test.ExpectEquality(t, code, 0, tw.String())

	// segment was removed by the previous command
	_, err = mailbox.Attach(name)
	test.ExpectFailure(t, err)
}
