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

// Package prefs holds runtime values that are owned by one part of the
// program and read by another, possibly in a different goroutine. Values are
// stored atomically and can have hooks that run before and after a change.
//
// The Bool type is used by the target package for the loadmem mode flag. The
// flag is read on every memory chunk so reading must be cheap and safe from
// any goroutine.
//
// Values can be set from a command line prefs string of the form:
//
//	"key::value; key::value"
//
// See ParseCommandLine().
package prefs
