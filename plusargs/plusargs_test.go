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

package plusargs_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/tsibridge/curated"
	"github.com/jetsetilly/tsibridge/plusargs"
	"github.com/jetsetilly/tsibridge/test"
)

func TestDefaults(t *testing.T) {
	cfg, err := plusargs.Parse([]string{"sim"}, true)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, cfg.LoadmemEnabled)
	test.ExpectSuccess(t, cfg.ResetHart0Interrupt)
	test.ExpectEquality(t, len(cfg.InitWrites), 0)

	// an empty argument vector is not an error
	cfg, err = plusargs.Parse(nil, true)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, cfg.ResetHart0Interrupt)
}

func TestInitWriteOrder(t *testing.T) {
	args := []string{
		"sim",
		"+init_write=0x80000000:0xdeadbeef",
		"+permissive",
		"+init_write=0x2000000:0x1",
		"+init_write=0x80000000:0x12345678",
		"-c",
	}

	cfg, err := plusargs.Parse(args, false)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(cfg.InitWrites), 3)

	test.ExpectEquality(t, cfg.InitWrites[0], plusargs.InitWrite{Address: 0x80000000, Value: 0xdeadbeef})
	test.ExpectEquality(t, cfg.InitWrites[1], plusargs.InitWrite{Address: 0x2000000, Value: 0x1})
	test.ExpectEquality(t, cfg.InitWrites[2], plusargs.InitWrite{Address: 0x80000000, Value: 0x12345678})

	// argument vector must not be modified
	test.ExpectEquality(t, args[1], "+init_write=0x80000000:0xdeadbeef")
	test.ExpectEquality(t, len(args), 6)
}

func TestInitWriteProperty(t *testing.T) {
	args := []string{"sim"}
	expected := make([]plusargs.InitWrite, 0)
	for i := 0; i < 50; i++ {
		w := plusargs.InitWrite{
			Address: uint64(i*0x1357) << 20,
			Value:   uint32(i * 0x9e3779b1),
		}
		expected = append(expected, w)
		args = append(args, fmt.Sprintf("+init_write=0x%x:0x%x", w.Address, w.Value))
	}

	cfg, err := plusargs.Parse(args, true)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(cfg.InitWrites), len(expected))
	for i := range expected {
		test.ExpectEquality(t, cfg.InitWrites[i], expected[i], i)
	}
}

func TestValueTruncation(t *testing.T) {
	cfg, err := plusargs.Parse([]string{"sim", "+init_write=0x10:0x1ffffffff"}, true)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(cfg.InitWrites), 1)
	test.ExpectEquality(t, cfg.InitWrites[0].Value, uint32(0xffffffff))
}

func TestMalformedInitWrite(t *testing.T) {
	for _, arg := range []string{
		"+init_write=0x80000000",
		"+init_write=0x80000000:deadbeef",
		"+init_write=0x80000000=0xdeadbeef",
	} {
		_, err := plusargs.Parse([]string{"sim", arg}, true)
		test.ExpectFailure(t, err, arg)
		test.ExpectSuccess(t, curated.Is(err, plusargs.ErrInitWriteFormat), arg)
	}

	// separator present but the fields are not exactly one hex number each
	for _, arg := range []string{
		"+init_write=0xfoo:0x1",
		"+init_write=0x:0x5",
		"+init_write=0x10:0x",
		"+init_write=0x10:0x2:0x3",
		"+init_write=0x10:0x1ffffffffffffffff",
	} {
		_, err := plusargs.Parse([]string{"sim", arg}, true)
		test.ExpectFailure(t, err, arg)
		test.ExpectSuccess(t, curated.Is(err, plusargs.ErrInitWriteValue), arg)
	}

	// a malformed argument after well-formed arguments is still fatal
	_, err := plusargs.Parse([]string{"sim", "+init_write=0x0:0x1", "+init_write=0x4"}, true)
	test.ExpectFailure(t, err)

	// arguments that don't start with the strict prefix are ignored
	cfg, err := plusargs.Parse([]string{"sim", "+init_write=80000000:0x1"}, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(cfg.InitWrites), 0)
}

func TestLoadmem(t *testing.T) {
	cfg, err := plusargs.Parse([]string{"sim", "+loadmem=prog.elf"}, true)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, cfg.LoadmemEnabled)
	test.ExpectEquality(t, cfg.LoadmemFile, "prog.elf")

	// loadmem not permitted by host
	cfg, err = plusargs.Parse([]string{"sim", "+loadmem=prog.elf"}, false)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, cfg.LoadmemEnabled)
	test.ExpectEquality(t, cfg.LoadmemFile, "")
}

func TestNoHart0MSIP(t *testing.T) {
	cfg, err := plusargs.Parse([]string{"sim", "+no_hart0_msip"}, true)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, cfg.ResetHart0Interrupt)
}

func TestPrefixes(t *testing.T) {
	args := []string{
		"sim",
		plusargs.Loadmem + "prog.elf",
		plusargs.InitWritePrefix + "80000000:0x1",
		plusargs.NoHart0MSIP,
	}

	cfg, err := plusargs.Parse(args, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.LoadmemFile, "prog.elf")
	test.DemandEquality(t, len(cfg.InitWrites), 1)
	test.ExpectEquality(t, cfg.InitWrites[0].String(), "0x80000000:0x000001")
	test.ExpectFailure(t, cfg.ResetHart0Interrupt)
}
