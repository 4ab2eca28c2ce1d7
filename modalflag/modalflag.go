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

package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const modeSeparator = "/"

// ParseResult is returned by the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were added then
	// Mode() will say which one was selected
	ParseContinue ParseResult = iota

	// help was requested and has been printed to Output
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Modes parses arguments that may contain program modes.
type Modes struct {
	// where help messages are printed. defaults to os.Stdout
	Output io.Writer

	flags *flag.FlagSet

	args []string
	idx  int

	subModes []string

	// path of modes found so far. never reset
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.idx = 0
	md.NewMode()
}

// NewMode starts a new set of flags and sub-modes for the arguments that
// remain.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""

	// drop arguments already handled by the previous call to Parse()
	md.args = md.args[md.idx:]
	md.idx = 0
}

// AdditionalHelp is printed after the usage information when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubModes adds modes that can be selected by the next call to Parse().
// The first mode added is the default.
func (md *Modes) AddSubModes(modes ...string) {
	for _, m := range modes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// Parse the arguments.
func (md *Modes) Parse() (ParseResult, error) {
	out := md.Output
	if out == nil {
		out = os.Stdout
	}

	usage := &strings.Builder{}
	md.flags.SetOutput(usage)

	err := md.flags.Parse(md.args[md.idx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help(out, usage.String())
			return ParseHelp, nil
		}
		return ParseError, err
	}

	// the remaining arguments start after the flags
	md.idx = len(md.args) - md.flags.NArg()

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.idx++
			break
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

func (md *Modes) help(out io.Writer, usage string) {
	lines := strings.Split(usage, "\n")

	hasFlags := false
	md.flags.VisitAll(func(_ *flag.Flag) {
		hasFlags = true
	})

	if !hasFlags && len(md.subModes) == 0 {
		if md.Path() != "" {
			fmt.Fprintf(out, "No help available for %s\n", md.Path())
		} else {
			fmt.Fprintln(out, "No help available")
		}
		return
	}

	if md.Path() != "" {
		fmt.Fprintf(out, "%s for %s mode\n", lines[0], md.Path())
	} else {
		fmt.Fprintln(out, lines[0])
	}

	if hasFlags {
		fmt.Fprint(out, strings.Join(lines[1:], "\n"))
	}

	if len(md.subModes) > 0 {
		if hasFlags {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(out, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(out, "\n%s\n", md.additionalHelp)
	}
}

// RemainingArgs returns the arguments after the flags and any mode selector.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.idx:]
}

// GetArg returns the remaining argument at index i or the empty string.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool adds a boolean flag to the current mode.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration adds a duration flag to the current mode.
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt adds an integer flag to the current mode.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString adds a string flag to the current mode.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Visit calls fn for every flag that was set on the command line.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
