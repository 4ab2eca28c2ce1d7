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

// Package plusargs extracts the bridge configuration from the simulator's
// argument vector. Simulator arguments are "plusargs", of the form +name or
// +name=value, and are mixed in with arguments meant for other parts of the
// simulation. Arguments that aren't recognised are ignored.
//
// The recognised arguments are:
//
//	+loadmem=<file>                   load the program through the backdoor
//	+init_write=0x<ADDR>:0x<VALUE>    write 32bit VALUE to ADDR on reset
//	+no_hart0_msip                    do not perform the base reset
package plusargs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/tsibridge/curated"
)

// Recognised argument prefixes.
const (
	Loadmem         = "+loadmem="
	InitWritePrefix = "+init_write=0x"
	NoHart0MSIP     = "+no_hart0_msip"

	// separator between address and value in an InitWrite argument
	initWriteSep = ":0x"
)

// Sentinal error patterns.
const (
	ErrInitWriteFormat = "plusargs: improperly formatted +init_write argument (%s)"
	ErrInitWriteValue  = "plusargs: +init_write argument (%s): %v"
)

// InitWrite is a single 32bit write to be made during reset.
type InitWrite struct {
	Address uint64
	Value   uint32
}

func (w InitWrite) String() string {
	return fmt.Sprintf("%#x:%#08x", w.Address, w.Value)
}

// Config is the result of parsing the argument vector. It should not be
// modified after Parse() returns.
type Config struct {
	// the +loadmem argument was found and the host allows loadmem
	LoadmemEnabled bool

	// the file named by the +loadmem argument. empty if LoadmemEnabled is
	// false
	LoadmemFile string

	// writes to be applied on reset, in argument order. addresses may repeat
	InitWrites []InitWrite

	// perform base reset after InitWrites have been applied. defaults to true
	ResetHart0Interrupt bool
}

func (cfg Config) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("loadmem=%v", cfg.LoadmemEnabled))
	if cfg.LoadmemEnabled {
		s.WriteString(fmt.Sprintf(" (%s)", cfg.LoadmemFile))
	}
	s.WriteString(fmt.Sprintf(" hart0 msip=%v", cfg.ResetHart0Interrupt))
	s.WriteString(fmt.Sprintf(" init writes=%d", len(cfg.InitWrites)))
	return s.String()
}

// Parse the argument vector. The first entry in args is the program name
// and is skipped. The args slice is not modified.
//
// The +loadmem argument is only honoured if canHaveLoadmem is true. Returns
// a curated error for any malformed +init_write argument. In that case the
// returned Config should not be used.
func Parse(args []string, canHaveLoadmem bool) (Config, error) {
	cfg := Config{
		InitWrites:          make([]InitWrite, 0),
		ResetHart0Interrupt: true,
	}

	if len(args) == 0 {
		return cfg, nil
	}

	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, Loadmem) {
			cfg.LoadmemEnabled = canHaveLoadmem
			if canHaveLoadmem {
				cfg.LoadmemFile = strings.TrimPrefix(arg, Loadmem)
			}
		}

		if strings.HasPrefix(arg, InitWritePrefix) {
			w, err := parseInitWrite(arg)
			if err != nil {
				return Config{}, err
			}
			cfg.InitWrites = append(cfg.InitWrites, w)
		}

		if strings.HasPrefix(arg, NoHart0MSIP) {
			cfg.ResetHart0Interrupt = false
		}
	}

	return cfg, nil
}

func parseInitWrite(arg string) (InitWrite, error) {
	// the separator can be anywhere after the prefix
	d := strings.Index(arg[len(InitWritePrefix):], initWriteSep)
	if d == -1 {
		return InitWrite{}, curated.Errorf(ErrInitWriteFormat, arg)
	}
	d += len(InitWritePrefix)

	addr, err := strconv.ParseUint(arg[len(InitWritePrefix):d], 16, 64)
	if err != nil {
		return InitWrite{}, curated.Errorf(ErrInitWriteValue, arg, err)
	}

	// values wider than 32 bits are truncated
	val, err := strconv.ParseUint(arg[d+len(initWriteSep):], 16, 64)
	if err != nil {
		return InitWrite{}, curated.Errorf(ErrInitWriteValue, arg, err)
	}

	return InitWrite{Address: addr, Value: uint32(val)}, nil
}
