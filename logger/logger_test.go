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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/tsibridge/logger"
	"github.com/jetsetilly/tsibridge/test"
)

type permission bool

func (p permission) AllowLogging() bool {
	return bool(p)
}

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectEquality(t, tw.Compare(""), true)

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\n")

	// clear the test.CompareWriter buffer before continuing, makes
	// comparisons easier to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRepeatAndPermission(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "mailbox", "attach failed")
	logger.Log(logger.Allow, "mailbox", "attach failed")
	logger.Log(logger.Allow, "mailbox", "attach failed")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "mailbox: attach failed (repeat x3)\n")

	logger.Log(permission(false), "mailbox", "suppressed")
	logger.Log(logger.Deny, "mailbox", "suppressed")
	test.ExpectEquality(t, len(logger.Entries()), 1)

	logger.Logf(permission(true), "mailbox", "size %d", 4)
	test.ExpectEquality(t, len(logger.Entries()), 2)
	test.ExpectEquality(t, logger.Entries()[1].Detail, "size 4")
}

func TestEcho(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.SetEcho(tw)
	logger.Log(logger.Allow, "echo", "one")
	logger.SetEcho(nil)
	logger.Log(logger.Allow, "echo", "two")

	test.ExpectEquality(t, tw.String(), "echo: one\n")
}
