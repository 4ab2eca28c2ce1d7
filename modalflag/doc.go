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

// Package modalflag wraps the flag package with support for program modes.
// A mode is a command line word that selects a different set of flags and
// arguments, in the way that the go command has build, test and so on.
//
// Arguments are given with NewArgs() and then parsed with Parse(). Sub-modes
// that are valid at the current position are added with AddSubModes() before
// parsing. The first sub-mode added is the default:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DRIVE", "DUMP", "VERSION")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		shm := md.AddString("shm", mailbox.DefaultName, "shared memory name")
//		...
//	}
//
// Each call to NewMode() begins a fresh set of flags for the arguments that
// follow the most recent mode. Mode comparisons are case insensitive and
// modes are always reported in upper case. Path() returns all the modes
// found so far separated by a slash, for example "DRIVE/READ".
//
// Arguments that don't look like flags stop flag parsing. This means that
// plusargs (which begin with a '+') are returned by RemainingArgs() with
// any other non-flag arguments.
package modalflag
